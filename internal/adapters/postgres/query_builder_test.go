package postgres_adapter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestApplyListingFilters_Empty(t *testing.T) {
	where, args := applyListingFilters(domain.ListingFilters{}).build()

	assert.Equal(t, "WHERE l.is_available = true", where)
	assert.Empty(t, args)
}

func TestApplyListingFilters_PlaceholdersFollowArgs(t *testing.T) {
	owner := uuid.New()
	filters := domain.ListingFilters{
		PriceMin:      ptr(50000.0),
		PriceMax:      ptr(90000.0),
		PropertyTypes: []domain.PropertyType{domain.PropertyHostel, domain.PropertyApartment},
		Bedrooms:      domain.IntRange{Min: ptr(2)},
		IsFurnished:   ptr(true),
		OwnerID:       &owner,
	}

	where, args := applyListingFilters(filters).build()

	assert.Equal(t,
		"WHERE l.is_available = true AND l.price >= $1 AND l.price <= $2 AND l.property_type = ANY($3)"+
			" AND l.bedrooms >= $4 AND l.is_furnished = $5 AND l.owner_id = $6",
		where)
	require.Len(t, args, 6)
	assert.Equal(t, 50000.0, args[0])
	assert.Equal(t, []string{"hostel", "apartment"}, args[2])
	assert.Equal(t, 2, args[3])
	assert.Equal(t, owner, args[5])
}

func TestApplyListingFilters_SearchReusesPlaceholder(t *testing.T) {
	where, args := applyListingFilters(domain.ListingFilters{Search: "  50%_off "}).build()

	assert.Contains(t, where, "(l.title ILIKE $1 OR l.description ILIKE $1 OR l.address ILIKE $1)")
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
}

func TestApplyListingFilters_GeohashPrefix(t *testing.T) {
	where, args := applyListingFilters(domain.ListingFilters{GeohashPrefix: "KZF0"}).build()

	assert.Contains(t, where, "l.geohash LIKE $1")
	assert.Equal(t, []interface{}{"kzf0%"}, args)
}

func TestApplyListingFilters_AmenitiesRequireAll(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	where, args := applyListingFilters(domain.ListingFilters{AmenityIDs: []uuid.UUID{a, b, a}}).build()

	assert.Contains(t, where, "la.amenity_id = ANY($1::uuid[])")
	assert.Contains(t, where, "HAVING COUNT(DISTINCT la.amenity_id) = $2")
	require.Len(t, args, 2)
	assert.Equal(t, []uuid.UUID{a, b}, args[0])
	assert.Equal(t, 2, args[1])
}

func TestQueryBuilder_ArgContinuesNumbering(t *testing.T) {
	qb := applyListingFilters(domain.ListingFilters{WaterSupply: ptr(false)})

	assert.Equal(t, "$2", qb.arg(10))
	assert.Equal(t, "$3", qb.arg(0))
	assert.Len(t, qb.args, 3)
}

func TestOrderClause(t *testing.T) {
	cases := map[domain.Ordering]string{
		domain.OrderPriceAsc:      "ORDER BY l.price ASC, l.id ASC",
		domain.OrderPriceDesc:     "ORDER BY l.price DESC, l.id ASC",
		domain.OrderCreatedAtAsc:  "ORDER BY l.created_at ASC, l.id ASC",
		domain.OrderCreatedAtDesc: "ORDER BY l.created_at DESC, l.id ASC",
		"":                        "ORDER BY l.created_at DESC, l.id ASC",
	}
	for ordering, want := range cases {
		assert.Equal(t, want, orderClause(ordering), "ordering %q", ordering)
	}
}

func TestBuildRadiusQuery_DistanceConditionAndOrdering(t *testing.T) {
	anchor := []byte{0x01, 0x01}
	q := buildRadiusQuery(anchor, 2.5, domain.ListingFilters{PriceMax: ptr(90000.0)}, domain.NewPagination(2, 10))

	assert.Equal(t,
		"SELECT COUNT(*) FROM listings l WHERE l.is_available = true AND l.price <= $1"+
			" AND ST_DWithin(l.location, ST_GeomFromWKB($2, 4326)::geography, $3)",
		q.count)
	require.Len(t, q.countArgs, 3)
	assert.Equal(t, 90000.0, q.countArgs[0])
	assert.Equal(t, anchor, q.countArgs[1])
	assert.Equal(t, 2500.0, q.countArgs[2], "radius is passed in meters")

	assert.Contains(t, q.data, "ST_DWithin(l.location, ST_GeomFromWKB($2, 4326)::geography, $3)")
	assert.Contains(t, q.data, "ST_Distance(l.location, ST_GeomFromWKB($2, 4326)::geography) / 1000.0 AS distance_km")
	assert.Contains(t, q.data, "ORDER BY distance_km ASC, l.id ASC")
	assert.Contains(t, q.data, "LIMIT $4 OFFSET $5")
	require.Len(t, q.dataArgs, 5)
	assert.Equal(t, 10, q.dataArgs[3])
	assert.Equal(t, 10, q.dataArgs[4])
}
