package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Классы ошибок. REST-слой выбирает HTTP-статус по ним через errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error - доменная ошибка с человекочитаемым сообщением и классом
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

var (
	ErrListingNotFound           = newError(ErrNotFound, "listing not found")
	ErrMediaNotFound             = newError(ErrNotFound, "media not found")
	ErrAmenityNotFound           = newError(ErrNotFound, "amenity not found")
	ErrAnchorNotFound            = newError(ErrNotFound, "University not found")
	ErrCampusNotFound            = newError(ErrNotFound, "campus not found")
	ErrNearbyPlaceNotFound       = newError(ErrNotFound, "nearby place not found")
	ErrEnquiryNotFound           = newError(ErrNotFound, "enquiry not found")
	ErrUserNotFound              = newError(ErrNotFound, "user not found")
	ErrFavouriteNotFound         = newError(ErrNotFound, "listing is not in favourites")
	ErrProfileOrUniversityNotSet = newError(ErrValidation, "Student profile or university not set")
	ErrNoMediaProvided           = newError(ErrValidation, "no media provided")

	ErrFavouriteExists     = newError(ErrConflict, "listing is already in favourites")
	ErrDuplicateReview     = newError(ErrConflict, "you have already reviewed this listing")
	ErrDuplicateEnquiry    = newError(ErrConflict, "an active enquiry for this listing already exists")
	ErrInvalidTransition   = newError(ErrConflict, "enquiry is closed and cannot change state")
	ErrEmailInUse          = newError(ErrConflict, "email already in use")
	ErrUsernameInUse       = newError(ErrConflict, "username already in use")
	ErrUniversityNameInUse = newError(ErrConflict, "university with this name already exists")
	ErrNearbyPlaceLinked   = newError(ErrConflict, "place is already linked to this listing")
	ErrForbiddenAction     = newError(ErrForbidden, "you do not have permission to perform this action")
	ErrNotListingOwner     = newError(ErrForbidden, "only the listing owner can perform this action")
	ErrNotEnquiryRequester = newError(ErrForbidden, "only the requester can cancel this enquiry")
	ErrNotEnquiryOwner     = newError(ErrForbidden, "only the listing owner can resolve this enquiry")
	ErrStudentOnly         = newError(ErrForbidden, "only students can search near their university")
	ErrInvalidCredentials  = newError(ErrUnauthorized, "invalid credentials")
	ErrTokenInvalid        = newError(ErrUnauthorized, "invalid or expired token")
)

// ValidationError описывает ошибки по полям запроса
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создает ошибку с одним полем
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add добавляет ошибку поля, первая ошибка по полю сохраняется
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// OrNil возвращает nil, если ошибок нет
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
