package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

const listingColumns = `
	l.id, l.owner_id, l.title, l.name, l.description, l.property_type, l.price::float8,
	l.bedrooms, l.toilets, l.address, ST_AsBinary(l.location::geometry), l.geohash, l.size,
	l.available_from, l.lease_duration, l.is_furnished, l.is_special_needs, l.is_available,
	l.is_fenced, l.windows_type, l.electricity_type, l.water_supply, l.view_count, l.last_viewed,
	l.safety_score::float8, l.transportation_score::float8, l.amenities_score::float8,
	l.overall_score::float8, l.created_at, l.updated_at`

// ListingRepository - реализация ListingRepositoryPort и GeoIndexPort для PostgreSQL/PostGIS
type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) (*ListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingRepository{pool: pool}, nil
}

func (r *ListingRepository) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	f := port.Fields{"component": "ListingRepository", "method": method}
	for k, v := range fields {
		f[k] = v
	}
	return contextkeys.LoggerFromContext(ctx).WithFields(f)
}

// scanListing читает колонки listingColumns и дополнительные поля в конце строки
func scanListing(row rowScanner, extra ...any) (*domain.Listing, error) {
	var (
		l        domain.Listing
		location []byte
	)
	dest := []any{
		&l.ID, &l.OwnerID, &l.Title, &l.Name, &l.Description, &l.PropertyType, &l.Price,
		&l.Bedrooms, &l.Toilets, &l.Address, &location, &l.Geohash, &l.Size,
		&l.AvailableFrom, &l.LeaseDurationMonths, &l.IsFurnished, &l.IsSpecialNeeds, &l.IsAvailable,
		&l.IsFenced, &l.WindowsType, &l.ElectricityType, &l.WaterSupply, &l.ViewCount, &l.LastViewed,
		&l.Scores.Safety, &l.Scores.Transportation, &l.Scores.Amenities,
		&l.Scores.Overall, &l.CreatedAt, &l.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	point, err := decodePoint(location)
	if err != nil {
		return nil, err
	}
	l.Location = point
	return &l, nil
}

func collectListingViews(rows pgx.Rows) ([]domain.ListingView, error) {
	defer rows.Close()
	views := make([]domain.ListingView, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		views = append(views, domain.ListingView{Listing: *l})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}
	return views, nil
}

// Create сохраняет листинг и связи с удобствами в одной транзакции
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing, amenityIDs []uuid.UUID) error {
	repoLogger := r.logger(ctx, "Create", port.Fields{"listing_id": l.ID.String()})

	location, err := encodePoint(l.Location)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO listings (
			id, owner_id, title, name, description, property_type, price, bedrooms, toilets,
			address, location, geohash, size, available_from, lease_duration, is_furnished,
			is_special_needs, is_available, is_fenced, windows_type, electricity_type, water_supply,
			safety_score, transportation_score, amenities_score, overall_score, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, ST_GeomFromWKB($11, 4326)::geography, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, $27, $28
		)`
	_, err = tx.Exec(ctx, query,
		l.ID, l.OwnerID, l.Title, l.Name, l.Description, string(l.PropertyType), l.Price, l.Bedrooms, l.Toilets,
		l.Address, location, l.Geohash, l.Size, l.AvailableFrom, l.LeaseDurationMonths, l.IsFurnished,
		l.IsSpecialNeeds, l.IsAvailable, l.IsFenced, string(l.WindowsType), string(l.ElectricityType), l.WaterSupply,
		l.Scores.Safety, l.Scores.Transportation, l.Scores.Amenities, l.Scores.Overall, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert listing", err, nil)
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	if err := replaceAmenities(ctx, tx, l.ID, amenityIDs, false); err != nil {
		repoLogger.Error("Failed to link amenities", err, nil)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Listing created", port.Fields{"amenities": len(amenityIDs)})
	return nil
}

func replaceAmenities(ctx context.Context, q querier, listingID uuid.UUID, amenityIDs []uuid.UUID, clear bool) error {
	if clear {
		if _, err := q.Exec(ctx, `DELETE FROM listing_amenities WHERE listing_id = $1`, listingID); err != nil {
			return fmt.Errorf("failed to clear amenities: %w", err)
		}
	}
	if len(amenityIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx,
		`INSERT INTO listing_amenities (listing_id, amenity_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`,
		listingID, amenityIDs,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to link amenities: %w", err)
	}
	return nil
}

// Update перезаписывает поля листинга; amenityIDs == nil оставляет удобства как есть
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing, amenityIDs *[]uuid.UUID) error {
	repoLogger := r.logger(ctx, "Update", port.Fields{"listing_id": l.ID.String()})

	location, err := encodePoint(l.Location)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE listings SET
			title = $2, name = $3, description = $4, property_type = $5, price = $6, bedrooms = $7,
			toilets = $8, address = $9, location = ST_GeomFromWKB($10, 4326)::geography, geohash = $11,
			size = $12, available_from = $13, lease_duration = $14, is_furnished = $15,
			is_special_needs = $16, is_available = $17, is_fenced = $18, windows_type = $19,
			electricity_type = $20, water_supply = $21, safety_score = $22, transportation_score = $23,
			amenities_score = $24, overall_score = $25, updated_at = $26
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		l.ID, l.Title, l.Name, l.Description, string(l.PropertyType), l.Price, l.Bedrooms,
		l.Toilets, l.Address, location, l.Geohash,
		l.Size, l.AvailableFrom, l.LeaseDurationMonths, l.IsFurnished,
		l.IsSpecialNeeds, l.IsAvailable, l.IsFenced, string(l.WindowsType),
		string(l.ElectricityType), l.WaterSupply, l.Scores.Safety, l.Scores.Transportation,
		l.Scores.Amenities, l.Scores.Overall, l.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update listing", err, nil)
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}

	if amenityIDs != nil {
		if err := replaceAmenities(ctx, tx, l.ID, *amenityIDs, true); err != nil {
			repoLogger.Error("Failed to replace amenities", err, nil)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = $1`
	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		r.logger(ctx, "FindByID", port.Fields{"listing_id": id.String()}).Error("Failed to find listing", err, nil)
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return l, nil
}

// GetView - карточка листинга со всеми связанными данными
func (r *ListingRepository) GetView(ctx context.Context, id uuid.UUID) (*domain.ListingView, error) {
	l, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views := []domain.ListingView{{Listing: *l}}
	if err := hydrateListings(ctx, r.pool, views); err != nil {
		r.logger(ctx, "GetView", port.Fields{"listing_id": id.String()}).Error("Failed to load listing relations", err, nil)
		return nil, err
	}
	places, err := listNearbyPlaces(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	views[0].NearbyPlaces = places
	return &views[0], nil
}

// Find ищет по фильтрам каталога: сначала COUNT, затем страница, в одной транзакции
func (r *ListingRepository) Find(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	repoLogger := r.logger(ctx, "Find", port.Fields{"limit": page.Limit(), "offset": page.Offset()})

	qb := applyListingFilters(filters)
	whereClause, args := qb.build()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := "SELECT COUNT(*) FROM listings l " + whereClause
	var totalCount int
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	result := domain.EmptyListingPage(page)
	result.TotalCount = totalCount
	if totalCount == 0 || page.Offset() >= totalCount {
		return result, nil
	}

	limitArg := qb.arg(page.Limit())
	offsetArg := qb.arg(page.Offset())
	dataQuery := fmt.Sprintf("SELECT %s FROM listings l %s %s LIMIT %s OFFSET %s",
		listingColumns, whereClause, orderClause(filters.Ordering), limitArg, offsetArg)

	rows, err := tx.Query(ctx, dataQuery, qb.args...)
	if err != nil {
		repoLogger.Error("Failed to query listings", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	views, err := collectListingViews(rows)
	if err != nil {
		return nil, err
	}
	if err := hydrateListings(ctx, tx, views); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Listings = views
	repoLogger.Debug("Listings page loaded", port.Fields{"total_count": totalCount, "count": len(views)})
	return result, nil
}

// FindByIDs сохраняет порядок ids и пропускает снятые с публикации листинги
func (r *ListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ListingView, error) {
	if len(ids) == 0 {
		return []domain.ListingView{}, nil
	}
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = ANY($1::uuid[]) AND l.is_available = true`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger(ctx, "FindByIDs", port.Fields{"count": len(ids)}).Error("Failed to query listings", err, nil)
		return nil, fmt.Errorf("failed to find listings by ids: %w", err)
	}
	found, err := collectListingViews(rows)
	if err != nil {
		return nil, err
	}
	if err := hydrateListings(ctx, r.pool, found); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.ListingView, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	ordered := make([]domain.ListingView, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (r *ListingRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE listings SET is_available = $2, updated_at = now() WHERE id = $1`, id, available)
	if err != nil {
		r.logger(ctx, "SetAvailability", port.Fields{"listing_id": id.String()}).Error("Failed to update availability", err, nil)
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// RecordView атомарно увеличивает счетчик просмотров
func (r *ListingRepository) RecordView(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE listings SET view_count = view_count + 1, last_viewed = $2 WHERE id = $1 AND is_available = true`, id, at)
	if err != nil {
		r.logger(ctx, "RecordView", port.Fields{"listing_id": id.String()}).Error("Failed to record view", err, nil)
		return fmt.Errorf("failed to record view: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) queryCategory(ctx context.Context, method, query string, args ...any) ([]domain.ListingView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger(ctx, method, nil).Error("Failed to query category", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query %s: %w", method, err)
	}
	views, err := collectListingViews(rows)
	if err != nil {
		return nil, err
	}
	if err := hydrateListings(ctx, r.pool, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *ListingRepository) FindCheapest(ctx context.Context, priceMin, priceMax float64, limit int) ([]domain.ListingView, error) {
	return r.queryCategory(ctx, "FindCheapest", `
		SELECT `+listingColumns+` FROM listings l
		WHERE l.is_available = true AND l.price BETWEEN $1 AND $2
		ORDER BY l.price ASC, l.id ASC
		LIMIT $3`, priceMin, priceMax, limit)
}

// FindTopRated - только листинги хотя бы с одним отзывом
func (r *ListingRepository) FindTopRated(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return r.queryCategory(ctx, "FindTopRated", `
		SELECT `+listingColumns+` FROM listings l
		JOIN (
			SELECT listing_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
			FROM reviews GROUP BY listing_id
		) rv ON rv.listing_id = l.id
		WHERE l.is_available = true
		ORDER BY rv.avg_rating DESC, rv.review_count DESC, l.id ASC
		LIMIT $1`, limit)
}

func (r *ListingRepository) FindSpecialNeeds(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return r.queryCategory(ctx, "FindSpecialNeeds", `
		SELECT `+listingColumns+` FROM listings l
		WHERE l.is_available = true AND l.is_special_needs = true
		ORDER BY l.created_at DESC, l.id ASC
		LIMIT $1`, limit)
}

func (r *ListingRepository) FindMostViewed(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return r.queryCategory(ctx, "FindMostViewed", `
		SELECT `+listingColumns+` FROM listings l
		WHERE l.is_available = true
		ORDER BY l.view_count DESC, l.id ASC
		LIMIT $1`, limit)
}

// hydrateListings подгружает удобства, медиа и рейтинг тремя запросами на всю страницу
func hydrateListings(ctx context.Context, q querier, views []domain.ListingView) error {
	if len(views) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i := range views {
		ids = append(ids, views[i].ID)
		index[views[i].ID] = i
		views[i].Amenities = []domain.Amenity{}
		views[i].Media = []domain.Media{}
		views[i].NearbyPlaces = []domain.ListingNearbyPlace{}
	}

	rows, err := q.Query(ctx, `
		SELECT la.listing_id, a.id, a.name, a.description, a.icon, a.created_at
		FROM listing_amenities la JOIN amenities a ON a.id = la.amenity_id
		WHERE la.listing_id = ANY($1::uuid[])
		ORDER BY a.name ASC, a.id ASC`, ids)
	if err != nil {
		return fmt.Errorf("failed to load listing amenities: %w", err)
	}
	for rows.Next() {
		var listingID uuid.UUID
		var a domain.Amenity
		if err := rows.Scan(&listingID, &a.ID, &a.Name, &a.Description, &a.Icon, &a.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan amenity: %w", err)
		}
		i := index[listingID]
		views[i].Amenities = append(views[i].Amenities, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error during amenities iteration: %w", err)
	}

	media, err := listMedia(ctx, q, `WHERE listing_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	for _, m := range media {
		i := index[m.ListingID]
		views[i].Media = append(views[i].Media, m)
	}

	rows, err = q.Query(ctx, `
		SELECT listing_id, AVG(rating)::float8, COUNT(*)
		FROM reviews WHERE listing_id = ANY($1::uuid[])
		GROUP BY listing_id`, ids)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var listingID uuid.UUID
		var avg float64
		var count int
		if err := rows.Scan(&listingID, &avg, &count); err != nil {
			return fmt.Errorf("failed to scan rating: %w", err)
		}
		views[index[listingID]].Rating = domain.NewRatingSummary(avg, count)
	}
	return rows.Err()
}
