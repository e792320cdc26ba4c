package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrangeMediaFirstImageBecomesPrimary(t *testing.T) {
	listingID := uuid.New()
	incoming := []MediaInput{
		{MediaType: MediaVideo, URL: "https://cdn.example.com/tour.mp4"},
		{MediaType: MediaImage, URL: "https://cdn.example.com/front.jpg"},
		{MediaType: MediaImage, URL: "https://cdn.example.com/kitchen.jpg"},
	}

	media := ArrangeMedia(listingID, nil, incoming, time.Now())
	require.Len(t, media, 3)

	assert.Equal(t, "https://cdn.example.com/front.jpg", media[0].URL)
	assert.True(t, media[0].IsPrimary)
	assert.Equal(t, 0, media[0].DisplayOrder)

	assert.Equal(t, "https://cdn.example.com/kitchen.jpg", media[1].URL)
	assert.False(t, media[1].IsPrimary)
	assert.Equal(t, 1, media[1].DisplayOrder)

	assert.Equal(t, MediaVideo, media[2].MediaType)
	assert.False(t, media[2].IsPrimary)
	assert.Equal(t, 2, media[2].DisplayOrder)

	for _, m := range media {
		assert.Equal(t, listingID, m.ListingID)
	}
}

func TestArrangeMediaContinuesAfterExisting(t *testing.T) {
	listingID := uuid.New()
	existing := []Media{
		{ID: uuid.New(), MediaType: MediaImage, IsPrimary: true, DisplayOrder: 0},
		{ID: uuid.New(), MediaType: MediaVideo, DisplayOrder: 4},
	}
	media := ArrangeMedia(listingID, existing, []MediaInput{
		{MediaType: MediaImage, URL: "https://cdn.example.com/a.jpg"},
	}, time.Now())

	require.Len(t, media, 1)
	assert.Equal(t, 5, media[0].DisplayOrder)
	assert.False(t, media[0].IsPrimary)
}

func TestElectPrimary(t *testing.T) {
	first := uuid.New()
	remaining := []Media{
		{ID: uuid.New(), MediaType: MediaVideo, DisplayOrder: 0},
		{ID: uuid.New(), MediaType: MediaImage, DisplayOrder: 3},
		{ID: first, MediaType: MediaImage, DisplayOrder: 1},
	}
	id, ok := ElectPrimary(remaining)
	require.True(t, ok)
	assert.Equal(t, first, id)

	remaining[2].IsPrimary = true
	_, ok = ElectPrimary(remaining)
	assert.False(t, ok)

	_, ok = ElectPrimary([]Media{{ID: uuid.New(), MediaType: MediaVideo}})
	assert.False(t, ok)
}

func TestMediaInputValidate(t *testing.T) {
	assert.NoError(t, MediaInput{MediaType: MediaImage, URL: "https://cdn.example.com/a.jpg"}.Validate())
	assert.ErrorIs(t, MediaInput{MediaType: "audio", URL: "https://cdn.example.com/a.mp3"}.Validate(), ErrValidation)
	assert.ErrorIs(t, MediaInput{MediaType: MediaImage, URL: "a.jpg"}.Validate(), ErrValidation)
}
