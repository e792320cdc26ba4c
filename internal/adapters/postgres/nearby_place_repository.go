package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

const nearbyPlaceColumns = `p.id, p.name, p.place_type, ST_AsBinary(p.location::geometry), p.address, p.created_at`

type NearbyPlaceRepository struct {
	pool *pgxpool.Pool
}

func NewNearbyPlaceRepository(pool *pgxpool.Pool) (*NearbyPlaceRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &NearbyPlaceRepository{pool: pool}, nil
}

func scanNearbyPlace(row rowScanner, extra ...any) (*domain.NearbyPlace, error) {
	var (
		p        domain.NearbyPlace
		location []byte
	)
	dest := append([]any{&p.ID, &p.Name, &p.PlaceType, &location, &p.Address, &p.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	point, err := decodePoint(location)
	if err != nil {
		return nil, err
	}
	p.Location = point
	return &p, nil
}

func (r *NearbyPlaceRepository) Create(ctx context.Context, p *domain.NearbyPlace) error {
	location, err := encodePoint(p.Location)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO nearby_places (id, name, place_type, location, address, created_at)
		VALUES ($1, $2, $3, ST_GeomFromWKB($4, 4326)::geography, $5, $6)`,
		p.ID, p.Name, string(p.PlaceType), location, p.Address, p.CreatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"component": "NearbyPlaceRepository",
			"method":    "Create",
		}).Error("Failed to insert nearby place", err, nil)
		return fmt.Errorf("failed to insert nearby place: %w", err)
	}
	return nil
}

func (r *NearbyPlaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.NearbyPlace, error) {
	p, err := scanNearbyPlace(r.pool.QueryRow(ctx, `SELECT `+nearbyPlaceColumns+` FROM nearby_places p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNearbyPlaceNotFound
		}
		return nil, fmt.Errorf("failed to find nearby place: %w", err)
	}
	return p, nil
}

func (r *NearbyPlaceRepository) List(ctx context.Context, placeType *domain.PlaceType) ([]domain.NearbyPlace, error) {
	query := `SELECT ` + nearbyPlaceColumns + ` FROM nearby_places p`
	args := []any{}
	if placeType != nil {
		query += ` WHERE p.place_type = $1`
		args = append(args, string(*placeType))
	}
	query += ` ORDER BY p.name ASC, p.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nearby places: %w", err)
	}
	defer rows.Close()

	places := make([]domain.NearbyPlace, 0)
	for rows.Next() {
		p, err := scanNearbyPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearby place: %w", err)
		}
		places = append(places, *p)
	}
	return places, rows.Err()
}

func (r *NearbyPlaceRepository) Link(ctx context.Context, link domain.ListingNearbyPlace) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO listing_nearby_places (listing_id, place_id, distance_km, walking_minutes)
		VALUES ($1, $2, $3, $4)`,
		link.ListingID, link.Place.ID, link.DistanceKm, link.WalkingMinutes)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to link nearby place: %w", err)
	}
	return nil
}

func (r *NearbyPlaceRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.ListingNearbyPlace, error) {
	return listNearbyPlaces(ctx, r.pool, listingID)
}

// listNearbyPlaces - места рядом с листингом, ближайшие первыми
func listNearbyPlaces(ctx context.Context, q querier, listingID uuid.UUID) ([]domain.ListingNearbyPlace, error) {
	rows, err := q.Query(ctx, `
		SELECT `+nearbyPlaceColumns+`, lp.distance_km::float8, lp.walking_minutes
		FROM listing_nearby_places lp JOIN nearby_places p ON p.id = lp.place_id
		WHERE lp.listing_id = $1
		ORDER BY lp.distance_km ASC, p.id ASC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load nearby places: %w", err)
	}
	defer rows.Close()

	links := make([]domain.ListingNearbyPlace, 0)
	for rows.Next() {
		link := domain.ListingNearbyPlace{ListingID: listingID}
		p, err := scanNearbyPlace(rows, &link.DistanceKm, &link.WalkingMinutes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearby place: %w", err)
		}
		link.Place = *p
		links = append(links, link)
	}
	return links, rows.Err()
}
