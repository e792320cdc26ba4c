package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewRatingBounds(t *testing.T) {
	for _, rating := range []int{0, 6, -3} {
		_, err := NewReview(uuid.New(), uuid.New(), rating, "", time.Now())
		assert.ErrorIs(t, err, ErrValidation, "rating=%d", rating)
	}
	r, err := NewReview(uuid.New(), uuid.New(), 5, "  great place ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "great place", r.Comment)
}

func TestSummarizeRatings(t *testing.T) {
	s := SummarizeRatings([]int{3, 4, 5})
	require.NotNil(t, s.Average)
	assert.Equal(t, 4.0, *s.Average)
	assert.Equal(t, 3, s.Count)

	empty := SummarizeRatings(nil)
	assert.Nil(t, empty.Average)
	assert.Zero(t, empty.Count)

	s = SummarizeRatings([]int{4, 4, 3})
	require.NotNil(t, s.Average)
	assert.Equal(t, 3.7, *s.Average)
}

func TestNewRatingSummaryWithoutReviews(t *testing.T) {
	assert.Nil(t, NewRatingSummary(0, 0).Average)
}
