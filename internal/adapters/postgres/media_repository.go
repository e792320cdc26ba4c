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

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) (*MediaRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &MediaRepository{pool: pool}, nil
}

func listMedia(ctx context.Context, q querier, where string, args ...any) ([]domain.Media, error) {
	query := `
		SELECT id, listing_id, media_type, url, content_hash, is_primary, display_order, created_at
		FROM listing_media ` + where + `
		ORDER BY display_order ASC, id ASC`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load media: %w", err)
	}
	defer rows.Close()

	media := make([]domain.Media, 0)
	for rows.Next() {
		var m domain.Media
		if err := rows.Scan(&m.ID, &m.ListingID, &m.MediaType, &m.URL, &m.ContentHash, &m.IsPrimary, &m.DisplayOrder, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

func (r *MediaRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Media, error) {
	return listMedia(ctx, r.pool, `WHERE listing_id = $1`, listingID)
}

func (r *MediaRepository) Add(ctx context.Context, m *domain.Media) error {
	query := `
		INSERT INTO listing_media (id, listing_id, media_type, url, content_hash, is_primary, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, m.ID, m.ListingID, string(m.MediaType), m.URL, m.ContentHash, m.IsPrimary, m.DisplayOrder, m.CreatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"component":  "MediaRepository",
			"method":     "Add",
			"listing_id": m.ListingID.String(),
		}).Error("Failed to insert media", err, nil)
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert media: %w", err)
	}
	return nil
}

func (r *MediaRepository) Remove(ctx context.Context, listingID, mediaID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listing_media WHERE id = $1 AND listing_id = $2`, mediaID, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) RemoveAll(ctx context.Context, listingID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM listing_media WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("failed to delete listing media: %w", err)
	}
	return nil
}

// SetPrimary переключает флаг одной командой, у листинга остается ровно одна основная картинка
func (r *MediaRepository) SetPrimary(ctx context.Context, listingID, mediaID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE listing_media SET is_primary = (id = $2)
		WHERE listing_id = $1
		  AND EXISTS (SELECT 1 FROM listing_media WHERE id = $2 AND listing_id = $1 AND media_type = 'image')`,
		listingID, mediaID)
	if err != nil {
		return fmt.Errorf("failed to set primary media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}
