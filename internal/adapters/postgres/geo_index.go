package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// GeoIndex отвечает на запросы "в радиусе" через ST_DWithin по GIST-индексу listings.location
type GeoIndex struct {
	pool *pgxpool.Pool
}

func NewGeoIndex(pool *pgxpool.Pool) (*GeoIndex, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &GeoIndex{pool: pool}, nil
}

func (g *GeoIndex) WithinRadius(ctx context.Context, anchor domain.Point, radiusKm float64, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GeoIndex",
		"method":    "WithinRadius",
		"radius_km": radiusKm,
	})

	anchorWKB, err := encodePoint(anchor)
	if err != nil {
		return nil, err
	}

	q := buildRadiusQuery(anchorWKB, radiusKm, filters, page)

	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int
	if err := tx.QueryRow(ctx, q.count, q.countArgs...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings in radius", err, nil)
		return nil, fmt.Errorf("failed to count listings in radius: %w", err)
	}

	result := domain.EmptyListingPage(page)
	result.TotalCount = totalCount
	if totalCount == 0 || page.Offset() >= totalCount {
		return result, nil
	}

	rows, err := tx.Query(ctx, q.data, q.dataArgs...)
	if err != nil {
		repoLogger.Error("Failed to query listings in radius", err, port.Fields{"query": q.data})
		return nil, fmt.Errorf("failed to query listings in radius: %w", err)
	}
	defer rows.Close()

	views := make([]domain.ListingView, 0, page.Limit())
	for rows.Next() {
		var distance float64
		l, err := scanListing(rows, &distance)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		views = append(views, domain.ListingView{Listing: *l, DistanceKm: &distance})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}
	rows.Close()

	if err := hydrateListings(ctx, tx, views); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Listings = views
	repoLogger.Debug("Radius search finished", port.Fields{"total_count": totalCount, "count": len(views)})
	return result, nil
}

// radiusQuery - запросы подсчета и страницы для поиска в радиусе
type radiusQuery struct {
	count     string
	countArgs []any
	data      string
	dataArgs  []any
}

// buildRadiusQuery: радиус переводится в метры для geography, сортировка от ближнего к дальнему
func buildRadiusQuery(anchorWKB []byte, radiusKm float64, filters domain.ListingFilters, page domain.Pagination) radiusQuery {
	qb := applyListingFilters(filters)
	anchorArg := qb.arg(anchorWKB)
	anchorExpr := fmt.Sprintf("ST_GeomFromWKB(%s, 4326)::geography", anchorArg)
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("ST_DWithin(l.location, %s, %s)", anchorExpr, qb.arg(radiusKm*1000)))
	whereClause, args := qb.build()
	countArgs := append([]any(nil), args...)

	limitArg := qb.arg(page.Limit())
	offsetArg := qb.arg(page.Offset())
	data := fmt.Sprintf(`
		SELECT %s, ST_Distance(l.location, %s) / 1000.0 AS distance_km
		FROM listings l %s
		ORDER BY distance_km ASC, l.id ASC
		LIMIT %s OFFSET %s`, listingColumns, anchorExpr, whereClause, limitArg, offsetArg)

	return radiusQuery{
		count:     "SELECT COUNT(*) FROM listings l " + whereClause,
		countArgs: countArgs,
		data:      data,
		dataArgs:  qb.args,
	}
}
