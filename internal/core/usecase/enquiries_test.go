package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enquiryFixture struct {
	listings  *fakeListingRepo
	enquiries *fakeEnquiryRepo
	notifier  *fakeNotifier
	owner     domain.Principal
	student   domain.Principal
	listing   *domain.Listing
}

func newEnquiryFixture() *enquiryFixture {
	f := &enquiryFixture{
		listings:  newFakeListingRepo(),
		enquiries: newFakeEnquiryRepo(),
		notifier:  &fakeNotifier{},
		owner:     domain.Principal{UserID: uuid.New(), Role: domain.RoleBroker},
		student:   domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent},
	}
	f.listing = f.listings.put(testListing(f.owner.UserID, pointEastKm(0), 80000))
	return f
}

func (f *enquiryFixture) open(t *testing.T) *domain.Enquiry {
	t.Helper()
	uc := NewCreateEnquiryUseCase(f.enquiries, f.listings, f.notifier)
	e, err := uc.Execute(context.Background(), f.student, f.listing.ID, "Is the room still free?")
	require.NoError(t, err)
	return e
}

func TestCreateEnquiry(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)

	assert.Equal(t, domain.EnquiryPending, e.Status)
	assert.True(t, e.IsActive)
	assert.Equal(t, f.owner.UserID, e.OwnerID)

	msgs, err := f.enquiries.ListMessages(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Is the room still free?", msgs[0].Content)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, port.EnquiryEventCreated, f.notifier.events[0].Type)
	assert.ElementsMatch(t, []uuid.UUID{f.owner.UserID, f.student.UserID}, f.notifier.events[0].Recipients)
}

func TestCreateEnquiry_DuplicateActive(t *testing.T) {
	f := newEnquiryFixture()
	f.open(t)

	uc := NewCreateEnquiryUseCase(f.enquiries, f.listings, f.notifier)
	_, err := uc.Execute(context.Background(), f.student, f.listing.ID, "again")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateEnquiry_AfterCancelAllowsNewOne(t *testing.T) {
	f := newEnquiryFixture()
	first := f.open(t)

	_, err := NewCancelEnquiryUseCase(f.enquiries, f.notifier).Execute(context.Background(), f.student, first.ID)
	require.NoError(t, err)

	second := f.open(t)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateEnquiry_Rejections(t *testing.T) {
	f := newEnquiryFixture()
	uc := NewCreateEnquiryUseCase(f.enquiries, f.listings, f.notifier)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.owner, f.listing.ID, "my own")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, f.student, f.listing.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, f.student, uuid.New(), "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.listing.IsAvailable = false
	_, err = uc.Execute(ctx, f.student, f.listing.ID, "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.notifier.events)
}

func TestPostMessage_OwnerReplyMovesToInProgress(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)
	ctx := context.Background()

	msg, err := NewPostMessageUseCase(f.enquiries, f.notifier).Execute(ctx, f.owner, e.ID, "Yes, come by tomorrow")
	require.NoError(t, err)
	assert.Equal(t, f.owner.UserID, msg.SenderID)

	stored, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryInProgress, stored.Status)

	msgs, err := f.enquiries.ListMessages(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].IsRead, "requester message is read after owner reply")
	assert.False(t, msgs[1].IsRead)

	last := f.notifier.events[len(f.notifier.events)-1]
	assert.Equal(t, port.EnquiryEventMessage, last.Type)
	require.NotNil(t, last.Message)
	assert.Equal(t, msg.ID, last.Message.ID)
}

func TestPostMessage_StrangerSeesNotFound(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)

	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	_, err := NewPostMessageUseCase(f.enquiries, f.notifier).Execute(context.Background(), stranger, e.ID, "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnquiryLifecycle(t *testing.T) {
	f := newEnquiryFixture()
	ctx := context.Background()
	cancel := NewCancelEnquiryUseCase(f.enquiries, f.notifier)
	resolve := NewResolveEnquiryUseCase(f.enquiries, f.notifier)
	post := NewPostMessageUseCase(f.enquiries, f.notifier)

	t.Run("resolve requires in_progress", func(t *testing.T) {
		e := f.open(t)
		_, err := resolve.Execute(ctx, f.owner, e.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, err = post.Execute(ctx, f.owner, e.ID, "reply")
		require.NoError(t, err)

		_, err = resolve.Execute(ctx, f.student, e.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		resolved, err := resolve.Execute(ctx, f.owner, e.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EnquiryResolved, resolved.Status)
		assert.False(t, resolved.IsActive)

		_, err = post.Execute(ctx, f.student, e.ID, "one more thing")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		_, err = cancel.Execute(ctx, f.student, e.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("only requester cancels", func(t *testing.T) {
		e := f.open(t)
		_, err := cancel.Execute(ctx, f.owner, e.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		cancelled, err := cancel.Execute(ctx, f.student, e.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EnquiryCancelled, cancelled.Status)

		last := f.notifier.events[len(f.notifier.events)-1]
		assert.Equal(t, port.EnquiryEventStatus, last.Type)
		assert.Equal(t, domain.EnquiryCancelled, last.Enquiry.Status)
	})
}

func TestListEnquiriesAndMessages(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)
	ctx := context.Background()

	got, err := NewListEnquiriesUseCase(f.enquiries).Execute(ctx, f.owner, domain.EnquiryFilters{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)

	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	got, err = NewListEnquiriesUseCase(f.enquiries).Execute(ctx, stranger, domain.EnquiryFilters{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NewGetEnquiryUseCase(f.enquiries).Execute(ctx, stranger, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewListMessagesUseCase(f.enquiries).Execute(ctx, stranger, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// студент не может отметить прочитанными собственные сообщения
	n, err := NewMarkMessagesReadUseCase(f.enquiries).Execute(ctx, f.student, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = NewMarkMessagesReadUseCase(f.enquiries).Execute(ctx, f.owner, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostMessage_ConcurrentCancelWins(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)
	ctx := context.Background()
	eventsBefore := len(f.notifier.events)

	// студент отменяет переписку между чтением и записью ответа владельца
	f.enquiries.afterFind = func(stored *domain.Enquiry) {
		stored.Status = domain.EnquiryCancelled
		stored.IsActive = false
	}

	_, err := NewPostMessageUseCase(f.enquiries, f.notifier).Execute(ctx, f.owner, e.ID, "Yes, come by tomorrow")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	f.enquiries.afterFind = nil
	stored, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryCancelled, stored.Status)
	assert.False(t, stored.IsActive)

	msgs, err := f.enquiries.ListMessages(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Len(t, f.notifier.events, eventsBefore)
}

func TestResolveEnquiry_ConcurrentCancelWins(t *testing.T) {
	f := newEnquiryFixture()
	e := f.open(t)
	ctx := context.Background()

	_, err := NewPostMessageUseCase(f.enquiries, f.notifier).Execute(ctx, f.owner, e.ID, "reply")
	require.NoError(t, err)

	f.enquiries.afterFind = func(stored *domain.Enquiry) {
		stored.Status = domain.EnquiryCancelled
		stored.IsActive = false
	}
	_, err = NewResolveEnquiryUseCase(f.enquiries, f.notifier).Execute(ctx, f.owner, e.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	f.enquiries.afterFind = nil
	stored, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryCancelled, stored.Status)
}
