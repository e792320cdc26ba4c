package postgres_adapter

import (
	"fmt"
	"strings"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: []string{"l.is_available = true"},
		args:       make([]interface{}, 0),
	}
}

// arg регистрирует аргумент и возвращает его плейсхолдер
func (qb *queryBuilder) arg(v interface{}) string {
	qb.args = append(qb.args, v)
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.argId++
	return placeholder
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.arg(arg)))
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= %s", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= %s", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntRange(fieldName string, r domain.IntRange) {
	if r.Exact != nil {
		qb.addCondition("%s = %s", fieldName, *r.Exact)
	}
	if r.Min != nil {
		qb.addCondition("%s >= %s", fieldName, *r.Min)
	}
	if r.Max != nil {
		qb.addCondition("%s <= %s", fieldName, *r.Max)
	}
}

func (qb *queryBuilder) AddBoolFilter(fieldName string, v *bool) {
	if v != nil {
		qb.addCondition("%s = %s", fieldName, *v)
	}
}

func (qb *queryBuilder) build() (string, []interface{}) {
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyListingFilters разбирает фильтры каталога в условия по алиасу l
func applyListingFilters(filters domain.ListingFilters) *queryBuilder {
	qb := newQueryBuilder()

	qb.AddFloatFilter("l.price", filters.PriceMin, filters.PriceMax)

	if len(filters.PropertyTypes) > 0 {
		types := make([]string, 0, len(filters.PropertyTypes))
		for _, t := range filters.PropertyTypes {
			types = append(types, string(t))
		}
		qb.addCondition("%s = ANY(%s)", "l.property_type", types)
	}
	if len(filters.ElectricityTypes) > 0 {
		types := make([]string, 0, len(filters.ElectricityTypes))
		for _, t := range filters.ElectricityTypes {
			types = append(types, string(t))
		}
		qb.addCondition("%s = ANY(%s)", "l.electricity_type", types)
	}

	qb.AddIntRange("l.bedrooms", filters.Bedrooms)
	qb.AddIntRange("l.toilets", filters.Toilets)

	qb.AddBoolFilter("l.is_furnished", filters.IsFurnished)
	qb.AddBoolFilter("l.is_special_needs", filters.IsSpecialNeeds)
	qb.AddBoolFilter("l.is_fenced", filters.IsFenced)
	qb.AddBoolFilter("l.water_supply", filters.WaterSupply)

	if filters.OwnerID != nil {
		qb.addCondition("%s = %s", "l.owner_id", *filters.OwnerID)
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		p := qb.arg("%" + escapeLike(search) + "%")
		qb.conditions = append(qb.conditions,
			fmt.Sprintf("(l.title ILIKE %[1]s OR l.description ILIKE %[1]s OR l.address ILIKE %[1]s)", p))
	}

	if filters.GeohashPrefix != "" {
		qb.addCondition("%s LIKE %s", "l.geohash", strings.ToLower(filters.GeohashPrefix)+"%")
	}

	// листинг должен иметь все запрошенные удобства
	if ids := domain.DedupeIDs(filters.AmenityIDs); len(ids) > 0 {
		idsArg := qb.arg(ids)
		countArg := qb.arg(len(ids))
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"l.id IN (SELECT la.listing_id FROM listing_amenities la WHERE la.amenity_id = ANY(%s::uuid[]) GROUP BY la.listing_id HAVING COUNT(DISTINCT la.amenity_id) = %s)",
			idsArg, countArg,
		))
	}

	return qb
}

// orderClause - сортировка каталога, id как вторичный ключ
func orderClause(o domain.Ordering) string {
	switch o {
	case domain.OrderPriceAsc:
		return "ORDER BY l.price ASC, l.id ASC"
	case domain.OrderPriceDesc:
		return "ORDER BY l.price DESC, l.id ASC"
	case domain.OrderCreatedAtAsc:
		return "ORDER BY l.created_at ASC, l.id ASC"
	default:
		return "ORDER BY l.created_at DESC, l.id ASC"
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
