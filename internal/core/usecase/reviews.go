package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CreateReviewUseCase struct {
	reviewRepo  port.ReviewRepositoryPort
	listingRepo port.ListingRepositoryPort
}

func NewCreateReviewUseCase(reviewRepo port.ReviewRepositoryPort, listingRepo port.ListingRepositoryPort) *CreateReviewUseCase {
	return &CreateReviewUseCase{reviewRepo: reviewRepo, listingRepo: listingRepo}
}

func (uc *CreateReviewUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateReview",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := principal.Require(domain.CapWriteReview); err != nil {
		return nil, err
	}

	review, err := domain.NewReview(listingID, principal.UserID, rating, comment, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Review validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if _, err := uc.listingRepo.FindByID(ctx, listingID); err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	// уникальность (listing, reviewer) гарантирует база
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"review_id": review.ID.String()})
	return review, nil
}

type ListListingReviewsUseCase struct {
	reviewRepo  port.ReviewRepositoryPort
	listingRepo port.ListingRepositoryPort
}

func NewListListingReviewsUseCase(reviewRepo port.ReviewRepositoryPort, listingRepo port.ListingRepositoryPort) *ListListingReviewsUseCase {
	return &ListListingReviewsUseCase{reviewRepo: reviewRepo, listingRepo: listingRepo}
}

// Execute возвращает отзывы и сводку, посчитанную по ним же
func (uc *ListListingReviewsUseCase) Execute(ctx context.Context, listingID uuid.UUID) ([]domain.Review, domain.RatingSummary, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ListListingReviews",
		"listing_id": listingID.String(),
	})

	if _, err := uc.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, domain.RatingSummary{}, err
	}

	reviews, err := uc.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, domain.RatingSummary{}, err
	}

	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}
	return reviews, domain.SummarizeRatings(ratings), nil
}

type ListMyReviewsUseCase struct {
	reviewRepo port.ReviewRepositoryPort
}

func NewListMyReviewsUseCase(reviewRepo port.ReviewRepositoryPort) *ListMyReviewsUseCase {
	return &ListMyReviewsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListMyReviewsUseCase) Execute(ctx context.Context, principal domain.Principal) ([]domain.Review, error) {
	reviews, err := uc.reviewRepo.ListByReviewer(ctx, principal.UserID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{
			"use_case": "ListMyReviews",
			"user_id":  principal.UserID.String(),
		})
		return nil, err
	}
	return reviews, nil
}
