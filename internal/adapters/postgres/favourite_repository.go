package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type FavouriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavouriteRepository(pool *pgxpool.Pool) (*FavouriteRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FavouriteRepository{pool: pool}, nil
}

func (r *FavouriteRepository) Add(ctx context.Context, f *domain.Favourite) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "FavouriteRepository",
		"method":     "Add",
		"user_id":    f.UserID.String(),
		"listing_id": f.ListingID.String(),
	})

	_, err := r.pool.Exec(ctx,
		`INSERT INTO favourites (user_id, listing_id, created_at) VALUES ($1, $2, $3)`,
		f.UserID, f.ListingID, f.CreatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			repoLogger.Warn("Favourite rejected by constraint", port.Fields{"error": mapped.Error()})
			return mapped
		}
		repoLogger.Error("Failed to add favourite", err, nil)
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

func (r *FavouriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favourites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavouriteNotFound
	}
	return nil
}

// ListByUser - новые первыми
func (r *FavouriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favourite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, listing_id, created_at FROM favourites
		WHERE user_id = $1
		ORDER BY created_at DESC, listing_id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	defer rows.Close()

	favourites := make([]domain.Favourite, 0)
	for rows.Next() {
		var f domain.Favourite
		if err := rows.Scan(&f.UserID, &f.ListingID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favourites = append(favourites, f)
	}
	return favourites, rows.Err()
}

// TopFavourited считает только доступные листинги
func (r *FavouriteRepository) TopFavourited(ctx context.Context, limit int) ([]domain.FavouriteCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.listing_id, COUNT(*) AS favourite_count
		FROM favourites f JOIN listings l ON l.id = f.listing_id
		WHERE l.is_available = true
		GROUP BY f.listing_id
		ORDER BY favourite_count DESC, f.listing_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top favourites: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.FavouriteCount, 0, limit)
	for rows.Next() {
		var c domain.FavouriteCount
		if err := rows.Scan(&c.ListingID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan favourite count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
