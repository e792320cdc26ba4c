package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role - закрытое множество ролей пользователя
type Role string

const (
	RoleStudent Role = "student"
	RoleBroker  Role = "broker"
	RoleAdmin   Role = "admin"
)

// ParseRole разбирает роль из строки
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleBroker, RoleAdmin:
		return Role(s), nil
	}
	return "", NewValidationError("role", fmt.Sprintf("unknown role %q", s))
}

// Capability - действие, право на которое зависит от роли
type Capability string

const (
	CapCreateListing       Capability = "listing:create"
	CapManageAnyListing    Capability = "listing:manage_any"
	CapManageUniversities  Capability = "university:manage"
	CapManageNearbyPlaces  Capability = "nearby_place:manage"
	CapSearchNearOwnCampus Capability = "search:near_own_university"
	CapCreateEnquiry       Capability = "enquiry:create"
	CapWriteReview         Capability = "review:write"
	CapManageFavourites    Capability = "favourite:manage"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleStudent: {
		CapSearchNearOwnCampus: {},
		CapCreateEnquiry:       {},
		CapWriteReview:         {},
		CapManageFavourites:    {},
	},
	RoleBroker: {
		CapCreateListing:    {},
		CapCreateEnquiry:    {},
		CapWriteReview:      {},
		CapManageFavourites: {},
	},
	RoleAdmin: {
		CapCreateListing:      {},
		CapManageAnyListing:   {},
		CapManageUniversities: {},
		CapManageNearbyPlaces: {},
		CapCreateEnquiry:      {},
		CapWriteReview:        {},
		CapManageFavourites:   {},
	},
}

// Principal - аутентифицированный вызывающий
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// Can - единственное место, где роль превращается в права
func (p Principal) Can(c Capability) bool {
	caps, ok := roleCapabilities[p.Role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Require возвращает ErrForbiddenAction, если права нет
func (p Principal) Require(c Capability) error {
	if !p.Can(c) {
		return ErrForbiddenAction
	}
	return nil
}

// CanManageListing - владелец или администратор
func (p Principal) CanManageListing(l *Listing) bool {
	return l.OwnerID == p.UserID || p.Can(CapManageAnyListing)
}
