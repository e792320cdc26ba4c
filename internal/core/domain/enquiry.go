package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EnquiryStatus string

const (
	EnquiryPending    EnquiryStatus = "pending"
	EnquiryInProgress EnquiryStatus = "in_progress"
	EnquiryResolved   EnquiryStatus = "resolved"
	EnquiryCancelled  EnquiryStatus = "cancelled"
)

func ParseEnquiryStatus(s string) (EnquiryStatus, error) {
	switch st := EnquiryStatus(s); st {
	case EnquiryPending, EnquiryInProgress, EnquiryResolved, EnquiryCancelled:
		return st, nil
	}
	return "", NewValidationError("status", fmt.Sprintf("unknown enquiry status %q", s))
}

// Terminal - из resolved и cancelled переходов нет
func (s EnquiryStatus) Terminal() bool {
	return s == EnquiryResolved || s == EnquiryCancelled
}

const maxMessageLength = 5000

// Enquiry - переписка между студентом и владельцем листинга
type Enquiry struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ListingTitle string
	RequesterID  uuid.UUID
	OwnerID      uuid.UUID
	Status       EnquiryStatus
	IsActive     bool
	UnreadCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EnquiryMessage struct {
	ID        uuid.UUID
	EnquiryID uuid.UUID
	SenderID  uuid.UUID
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

// NewEnquiry открывает переписку в статусе pending вместе с первым сообщением
func NewEnquiry(listing *Listing, requesterID uuid.UUID, content string, now time.Time) (*Enquiry, *EnquiryMessage, error) {
	if listing.OwnerID == requesterID {
		return nil, nil, NewValidationError("listing_id", "you cannot enquire about your own listing")
	}
	e := &Enquiry{
		ID:           uuid.New(),
		ListingID:    listing.ID,
		ListingTitle: listing.Title,
		RequesterID:  requesterID,
		OwnerID:      listing.OwnerID,
		Status:       EnquiryPending,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	msg, err := newMessage(e.ID, requesterID, content, now)
	if err != nil {
		return nil, nil, err
	}
	return e, msg, nil
}

func newMessage(enquiryID, senderID uuid.UUID, content string, now time.Time) (*EnquiryMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "message content is required")
	}
	if len(content) > maxMessageLength {
		return nil, NewValidationError("content", fmt.Sprintf("message must be at most %d characters", maxMessageLength))
	}
	return &EnquiryMessage{
		ID:        uuid.New(),
		EnquiryID: enquiryID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: now,
	}, nil
}

func (e *Enquiry) IsParticipant(userID uuid.UUID) bool {
	return userID == e.RequesterID || userID == e.OwnerID
}

// EnsureVisible скрывает существование переписки от посторонних
func (e *Enquiry) EnsureVisible(userID uuid.UUID) error {
	if !e.IsParticipant(userID) {
		return ErrEnquiryNotFound
	}
	return nil
}

// Counterparty возвращает второго участника
func (e *Enquiry) Counterparty(userID uuid.UUID) uuid.UUID {
	if userID == e.RequesterID {
		return e.OwnerID
	}
	return e.RequesterID
}

// PostMessage добавляет сообщение, pending переходит в in_progress
func (e *Enquiry) PostMessage(senderID uuid.UUID, content string, now time.Time) (*EnquiryMessage, error) {
	if err := e.EnsureVisible(senderID); err != nil {
		return nil, err
	}
	if e.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	msg, err := newMessage(e.ID, senderID, content, now)
	if err != nil {
		return nil, err
	}
	if e.Status == EnquiryPending {
		e.Status = EnquiryInProgress
	}
	e.UpdatedAt = now
	return msg, nil
}

// Cancel доступен только автору запроса до терминального статуса
func (e *Enquiry) Cancel(by uuid.UUID, now time.Time) error {
	if err := e.EnsureVisible(by); err != nil {
		return err
	}
	if by != e.RequesterID {
		return ErrNotEnquiryRequester
	}
	if e.Status.Terminal() {
		return ErrInvalidTransition
	}
	e.Status = EnquiryCancelled
	e.IsActive = false
	e.UpdatedAt = now
	return nil
}

// Resolve доступен владельцу листинга, только из in_progress
func (e *Enquiry) Resolve(by uuid.UUID, now time.Time) error {
	if err := e.EnsureVisible(by); err != nil {
		return err
	}
	if by != e.OwnerID {
		return ErrNotEnquiryOwner
	}
	if e.Status != EnquiryInProgress {
		return ErrInvalidTransition
	}
	e.Status = EnquiryResolved
	e.IsActive = false
	e.UpdatedAt = now
	return nil
}

// EnquiryFilters - фильтры списка переписок участника
type EnquiryFilters struct {
	ParticipantID uuid.UUID
	Status        *EnquiryStatus
	ListingID     *uuid.UUID
	IsActive      *bool
}
