package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavourites(t *testing.T) {
	listings := newFakeListingRepo()
	favourites := &fakeFavouriteRepo{}
	owner := uuid.New()
	a := listings.put(testListing(owner, pointEastKm(1), 80000))
	b := listings.put(testListing(owner, pointEastKm(2), 90000))

	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	add := NewAddFavouriteUseCase(favourites, listings)
	ctx := context.Background()

	require.NoError(t, add.Execute(ctx, student, a.ID))
	require.NoError(t, add.Execute(ctx, student, b.ID))

	err := add.Execute(ctx, student, a.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = add.Execute(ctx, student, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := NewListFavouritesUseCase(favourites, listings).Execute(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, []uuid.UUID{got[0].Listing.ID, got[1].Listing.ID})

	remove := NewRemoveFavouriteUseCase(favourites)
	require.NoError(t, remove.Execute(ctx, student, a.ID))
	assert.ErrorIs(t, remove.Execute(ctx, student, a.ID), domain.ErrNotFound)
}

func TestTopFavourites(t *testing.T) {
	listings := newFakeListingRepo()
	favourites := &fakeFavouriteRepo{}
	owner := uuid.New()
	ctx := context.Background()

	views := make([]*domain.Listing, 4)
	for i := range views {
		views[i] = listings.put(testListing(owner, pointEastKm(float64(i)), 80000))
	}
	// listing 2 избран тремя пользователями, 0 двумя, 1 и 3 одним
	for i, n := range []int{2, 1, 3, 1} {
		for j := 0; j < n; j++ {
			require.NoError(t, favourites.Add(ctx, &domain.Favourite{UserID: uuid.New(), ListingID: views[i].ID}))
		}
	}

	got, err := NewTopFavouritesUseCase(favourites, listings).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, got, domain.TopFavouritesLimit)
	assert.Equal(t, views[2].ID, got[0].Listing.ID)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, views[0].ID, got[1].Listing.ID)
	assert.Equal(t, 1, got[2].Count)
}

func TestTopFavourites_Empty(t *testing.T) {
	got, err := NewTopFavouritesUseCase(&fakeFavouriteRepo{}, newFakeListingRepo()).Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReviews(t *testing.T) {
	listings := newFakeListingRepo()
	reviews := &fakeReviewRepo{}
	listing := listings.put(testListing(uuid.New(), pointEastKm(1), 80000))
	ctx := context.Background()
	create := NewCreateReviewUseCase(reviews, listings)
	list := NewListListingReviewsUseCase(reviews, listings)

	_, summary, err := list.Execute(ctx, listing.ID)
	require.NoError(t, err)
	assert.Nil(t, summary.Average)
	assert.Zero(t, summary.Count)

	first := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	second := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	third := domain.Principal{UserID: uuid.New(), Role: domain.RoleBroker}
	for p, rating := range map[domain.Principal]int{first: 5, second: 4, third: 4} {
		_, err := create.Execute(ctx, p, listing.ID, rating, "")
		require.NoError(t, err)
	}

	_, err = create.Execute(ctx, first, listing.ID, 3, "changed my mind")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = create.Execute(ctx, first, listing.ID, 6, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = create.Execute(ctx, first, uuid.New(), 4, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, summary, err := list.Execute(ctx, listing.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	require.NotNil(t, summary.Average)
	assert.Equal(t, 4.3, *summary.Average)
	assert.Equal(t, 3, summary.Count)

	mine, err := NewListMyReviewsUseCase(reviews).Execute(ctx, second)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 4, mine[0].Rating)
}
