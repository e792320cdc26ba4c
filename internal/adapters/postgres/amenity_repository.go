package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type AmenityRepository struct {
	pool *pgxpool.Pool
}

func NewAmenityRepository(pool *pgxpool.Pool) (*AmenityRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &AmenityRepository{pool: pool}, nil
}

func scanAmenities(rows pgx.Rows) ([]domain.Amenity, error) {
	defer rows.Close()
	amenities := make([]domain.Amenity, 0)
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan amenity: %w", err)
		}
		amenities = append(amenities, a)
	}
	return amenities, rows.Err()
}

func (r *AmenityRepository) List(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, icon, created_at FROM amenities ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	return scanAmenities(rows)
}

func (r *AmenityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Amenity, error) {
	if len(ids) == 0 {
		return []domain.Amenity{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, icon, created_at FROM amenities WHERE id = ANY($1::uuid[]) ORDER BY name ASC, id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find amenities: %w", err)
	}
	return scanAmenities(rows)
}

// GetOrCreate сравнивает имена без учета регистра; при существующей записи
// amenity заполняется сохраненными данными
func (r *AmenityRepository) GetOrCreate(ctx context.Context, a *domain.Amenity) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO amenities (id, name, description, icon, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((lower(name))) DO NOTHING`,
		a.ID, a.Name, a.Description, a.Icon, a.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert amenity: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	err = r.pool.QueryRow(ctx,
		`SELECT id, name, description, icon, created_at FROM amenities WHERE lower(name) = lower($1)`, a.Name,
	).Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to load existing amenity: %w", err)
	}
	return false, nil
}

func (r *AmenityRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM amenities`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete amenities: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AmenityRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM amenities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count amenities: %w", err)
	}
	return n, nil
}
