package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnquiry(t *testing.T) (*Enquiry, uuid.UUID, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	student := uuid.New()
	listing := &Listing{ID: uuid.New(), OwnerID: owner, Title: "Hostel"}

	e, msg, err := NewEnquiry(listing, student, "Is it still available?", time.Now())
	require.NoError(t, err)
	require.NotNil(t, msg)
	return e, student, owner
}

func TestNewEnquiryStartsPending(t *testing.T) {
	e, student, owner := newTestEnquiry(t)

	assert.Equal(t, EnquiryPending, e.Status)
	assert.True(t, e.IsActive)
	assert.Equal(t, student, e.RequesterID)
	assert.Equal(t, owner, e.OwnerID)
}

func TestNewEnquiryRejectsOwnerAndEmptyContent(t *testing.T) {
	owner := uuid.New()
	listing := &Listing{ID: uuid.New(), OwnerID: owner}

	_, _, err := NewEnquiry(listing, owner, "hello", time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = NewEnquiry(listing, uuid.New(), "   ", time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPostMessageAdvancesPending(t *testing.T) {
	e, _, owner := newTestEnquiry(t)
	later := e.UpdatedAt.Add(time.Minute)

	msg, err := e.PostMessage(owner, "Yes, come by on Monday", later)
	require.NoError(t, err)
	assert.Equal(t, owner, msg.SenderID)
	assert.Equal(t, EnquiryInProgress, e.Status)
	assert.Equal(t, later, e.UpdatedAt)
}

func TestPostMessageByStrangerIsNotFound(t *testing.T) {
	e, _, _ := newTestEnquiry(t)
	_, err := e.PostMessage(uuid.New(), "hi", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, EnquiryPending, e.Status)
}

func TestCancelIsIrreversible(t *testing.T) {
	e, student, owner := newTestEnquiry(t)

	assert.ErrorIs(t, e.Cancel(owner, time.Now()), ErrForbidden)
	assert.ErrorIs(t, e.Cancel(uuid.New(), time.Now()), ErrNotFound)

	require.NoError(t, e.Cancel(student, time.Now()))
	assert.Equal(t, EnquiryCancelled, e.Status)
	assert.False(t, e.IsActive)

	assert.ErrorIs(t, e.Cancel(student, time.Now()), ErrInvalidTransition)
	assert.Equal(t, EnquiryCancelled, e.Status)

	_, err := e.PostMessage(student, "hello again", time.Now())
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, e.Resolve(owner, time.Now()), ErrInvalidTransition)
}

func TestResolve(t *testing.T) {
	e, student, owner := newTestEnquiry(t)

	assert.ErrorIs(t, e.Resolve(owner, time.Now()), ErrInvalidTransition)

	_, err := e.PostMessage(owner, "Sure", time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, e.Resolve(student, time.Now()), ErrForbidden)
	require.NoError(t, e.Resolve(owner, time.Now()))
	assert.Equal(t, EnquiryResolved, e.Status)
	assert.False(t, e.IsActive)
	assert.ErrorIs(t, e.Cancel(student, time.Now()), ErrInvalidTransition)
}

func TestCounterparty(t *testing.T) {
	e, student, owner := newTestEnquiry(t)
	assert.Equal(t, owner, e.Counterparty(student))
	assert.Equal(t, student, e.Counterparty(owner))
}

func TestParseEnquiryStatus(t *testing.T) {
	s, err := ParseEnquiryStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, EnquiryInProgress, s)
	_, err = ParseEnquiryStatus("archived")
	assert.ErrorIs(t, err, ErrValidation)
}
