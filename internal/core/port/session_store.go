package port

import (
	"context"

	"github.com/google/uuid"
)

// RecentlyViewedStorePort хранит недавно просмотренные листинги по ключу вызывающего
type RecentlyViewedStorePort interface {
	Push(ctx context.Context, key string, listingID uuid.UUID) error
	List(ctx context.Context, key string) ([]uuid.UUID, error)
}
