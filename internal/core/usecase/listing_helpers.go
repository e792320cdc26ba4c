package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// ensureAmenities отклоняет запрос целиком, если хотя бы одного id нет в справочнике
func ensureAmenities(ctx context.Context, repo port.AmenityRepositoryPort, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load amenities: %w", err)
	}
	return domain.UnknownAmenitiesError(domain.MissingIDs(ids, found))
}

func validateMediaInputs(inputs []domain.MediaInput) error {
	verr := &domain.ValidationError{}
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			for field, msg := range err.(*domain.ValidationError).Fields {
				verr.Add(fmt.Sprintf("media[%d].%s", i, field), msg)
			}
		}
	}
	return verr.OrNil()
}

// loadManagedListing находит листинг и проверяет, что вызывающий может им управлять
func loadManagedListing(ctx context.Context, repo port.ListingRepositoryPort, principal domain.Principal, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !principal.CanManageListing(listing) {
		return nil, domain.ErrNotListingOwner
	}
	return listing, nil
}

// attachMedia сохраняет каждое вложение отдельно: ошибка одного не откатывает остальные
func attachMedia(ctx context.Context, repo port.MediaRepositoryPort, listingID uuid.UUID, existing []domain.Media, inputs []domain.MediaInput, logger port.LoggerPort) ([]domain.Media, []domain.MediaFailure) {
	if len(inputs) == 0 {
		return nil, nil
	}

	// порядок индексов совпадает с ArrangeMedia: сначала картинки, потом видео
	requestIndex := make([]int, 0, len(inputs))
	for i, in := range inputs {
		if in.MediaType != domain.MediaVideo {
			requestIndex = append(requestIndex, i)
		}
	}
	for i, in := range inputs {
		if in.MediaType == domain.MediaVideo {
			requestIndex = append(requestIndex, i)
		}
	}

	arranged := domain.ArrangeMedia(listingID, existing, inputs, time.Now().UTC())
	attached := make([]domain.Media, 0, len(arranged))
	var failures []domain.MediaFailure
	for i := range arranged {
		m := arranged[i]
		if err := repo.Add(ctx, &m); err != nil {
			logger.Warn("Failed to attach media", port.Fields{"url": m.URL, "error": err.Error()})
			failures = append(failures, domain.MediaFailure{
				Index:  requestIndex[i],
				URL:    m.URL,
				Reason: "failed to store media",
			})
			continue
		}
		attached = append(attached, m)
	}
	return attached, failures
}
