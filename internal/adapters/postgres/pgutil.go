package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// querier - общая часть *pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintErrors сопоставляет уникальные ограничения схемы доменным ошибкам
var constraintErrors = map[string]error{
	"users_username_key":           domain.ErrUsernameInUse,
	"users_email_key":              domain.ErrEmailInUse,
	"universities_name_key":        domain.ErrUniversityNameInUse,
	"favourites_user_listing_key":  domain.ErrFavouriteExists,
	"reviews_listing_reviewer_key": domain.ErrDuplicateReview,
	"enquiries_active_key":         domain.ErrDuplicateEnquiry,
	"listing_nearby_places_pkey":   domain.ErrNearbyPlaceLinked,
}

// mapConstraintError превращает нарушение ограничения в доменную ошибку.
// Возвращает nil, если err не является известным нарушением.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: referenced row does not exist (%s)", domain.ErrNotFound, pgErr.ConstraintName)
	}
	return nil
}

// encodePoint кодирует точку в WKB для ST_GeomFromWKB($n, 4326)
func encodePoint(p domain.Point) ([]byte, error) {
	g := geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat})
	b, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return nil, fmt.Errorf("failed to encode point: %w", err)
	}
	return b, nil
}

// decodePoint разбирает результат ST_AsBinary
func decodePoint(b []byte) (domain.Point, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return domain.Point{}, fmt.Errorf("failed to decode point: %w", err)
	}
	pt, ok := g.(*geom.Point)
	if !ok {
		return domain.Point{}, fmt.Errorf("unexpected geometry type %T", g)
	}
	return domain.Point{Lon: pt.X(), Lat: pt.Y()}, nil
}
