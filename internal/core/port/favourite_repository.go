package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type FavouriteRepositoryPort interface {
	// Add возвращает domain.ErrFavouriteExists на нарушении уникальности
	Add(ctx context.Context, favourite *domain.Favourite) error
	// Remove возвращает domain.ErrFavouriteNotFound, если удалять нечего
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favourite, error)
	TopFavourited(ctx context.Context, limit int) ([]domain.FavouriteCount, error)
}
