package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type AddFavouriteUseCase struct {
	favouriteRepo port.FavouriteRepositoryPort
	listingRepo   port.ListingRepositoryPort
}

func NewAddFavouriteUseCase(favouriteRepo port.FavouriteRepositoryPort, listingRepo port.ListingRepositoryPort) *AddFavouriteUseCase {
	return &AddFavouriteUseCase{favouriteRepo: favouriteRepo, listingRepo: listingRepo}
}

// Execute не идемпотентен: повторное добавление возвращает конфликт
func (uc *AddFavouriteUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AddFavourite",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := principal.Require(domain.CapManageFavourites); err != nil {
		return err
	}
	if _, err := uc.listingRepo.FindByID(ctx, listingID); err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return err
	}

	err := uc.favouriteRepo.Add(ctx, &domain.Favourite{
		UserID:    principal.UserID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type RemoveFavouriteUseCase struct {
	favouriteRepo port.FavouriteRepositoryPort
}

func NewRemoveFavouriteUseCase(favouriteRepo port.FavouriteRepositoryPort) *RemoveFavouriteUseCase {
	return &RemoveFavouriteUseCase{favouriteRepo: favouriteRepo}
}

func (uc *RemoveFavouriteUseCase) Execute(ctx context.Context, principal domain.Principal, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RemoveFavourite",
		"user_id":    principal.UserID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.favouriteRepo.Remove(ctx, principal.UserID, listingID); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type ListFavouritesUseCase struct {
	favouriteRepo port.FavouriteRepositoryPort
	listingRepo   port.ListingRepositoryPort
}

func NewListFavouritesUseCase(favouriteRepo port.FavouriteRepositoryPort, listingRepo port.ListingRepositoryPort) *ListFavouritesUseCase {
	return &ListFavouritesUseCase{favouriteRepo: favouriteRepo, listingRepo: listingRepo}
}

func (uc *ListFavouritesUseCase) Execute(ctx context.Context, principal domain.Principal) ([]domain.FavouriteView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListFavourites",
		"user_id":  principal.UserID.String(),
	})

	favourites, err := uc.favouriteRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if len(favourites) == 0 {
		return []domain.FavouriteView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(favourites))
	addedAt := make(map[uuid.UUID]time.Time, len(favourites))
	for _, f := range favourites {
		ids = append(ids, f.ListingID)
		addedAt[f.ListingID] = f.CreatedAt
	}

	listings, err := uc.listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		ucLogger.Error("Failed to load favourite listings", err, nil)
		return nil, err
	}

	out := make([]domain.FavouriteView, 0, len(listings))
	for _, l := range listings {
		out = append(out, domain.FavouriteView{Listing: l, CreatedAt: addedAt[l.ID]})
	}
	return out, nil
}

type TopFavouritesUseCase struct {
	favouriteRepo port.FavouriteRepositoryPort
	listingRepo   port.ListingRepositoryPort
}

func NewTopFavouritesUseCase(favouriteRepo port.FavouriteRepositoryPort, listingRepo port.ListingRepositoryPort) *TopFavouritesUseCase {
	return &TopFavouritesUseCase{favouriteRepo: favouriteRepo, listingRepo: listingRepo}
}

// Execute возвращает три самых популярных в избранном листинга, при равенстве по id
func (uc *TopFavouritesUseCase) Execute(ctx context.Context) ([]domain.TopFavourite, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "TopFavourites"})

	counts, err := uc.favouriteRepo.TopFavourited(ctx, domain.TopFavouritesLimit)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if len(counts) == 0 {
		return []domain.TopFavourite{}, nil
	}

	ids := make([]uuid.UUID, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.ListingID)
	}
	listings, err := uc.listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		ucLogger.Error("Failed to load top listings", err, nil)
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.ListingView, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	out := make([]domain.TopFavourite, 0, len(counts))
	for _, c := range counts {
		if l, ok := byID[c.ListingID]; ok {
			out = append(out, domain.TopFavourite{Listing: l, Count: c.Count})
		}
	}
	return out, nil
}
