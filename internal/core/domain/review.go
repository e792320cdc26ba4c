package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ReviewerID   uuid.UUID
	ReviewerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

func NewReview(listingID, reviewerID uuid.UUID, rating int, comment string, now time.Time) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, NewValidationError("rating", "rating must be between 1 and 5")
	}
	return &Review{
		ID:         uuid.New(),
		ListingID:  listingID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  now,
	}, nil
}

// RatingSummary - средняя оценка и число отзывов, Average nil при отсутствии отзывов
type RatingSummary struct {
	Average *float64
	Count   int
}

// NewRatingSummary строит сводку из агрегата базы
func NewRatingSummary(avg float64, count int) RatingSummary {
	if count <= 0 {
		return RatingSummary{}
	}
	rounded := RoundRating(avg)
	return RatingSummary{Average: &rounded, Count: count}
}

// SummarizeRatings считает сводку по списку оценок
func SummarizeRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return NewRatingSummary(float64(sum)/float64(len(ratings)), len(ratings))
}

// RoundRating округляет до одного знака после запятой
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
