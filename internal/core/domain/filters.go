package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Ordering - сортировка списка листингов, вторичный ключ всегда id
type Ordering string

const (
	OrderPriceAsc      Ordering = "price"
	OrderPriceDesc     Ordering = "-price"
	OrderCreatedAtAsc  Ordering = "created_at"
	OrderCreatedAtDesc Ordering = "-created_at"
)

// ParseOrdering разбирает параметр ordering, пустая строка дает -created_at
func ParseOrdering(s string) (Ordering, error) {
	switch o := Ordering(strings.TrimSpace(s)); o {
	case "":
		return OrderCreatedAtDesc, nil
	case OrderPriceAsc, OrderPriceDesc, OrderCreatedAtAsc, OrderCreatedAtDesc:
		return o, nil
	}
	return "", NewValidationError("ordering", fmt.Sprintf("unsupported ordering %q", s))
}

// Pagination - номер страницы с единицы и размер страницы
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination подставляет значения по умолчанию и ограничивает размер страницы.
// Проверка клиентских значений - на стороне транспорта, сюда они приходят уже валидными.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Limit() int  { return p.PageSize }
func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }

// IntRange - точное значение или границы
type IntRange struct {
	Exact *int
	Min   *int
	Max   *int
}

func (r IntRange) validate(verr *ValidationError, field string) {
	for _, v := range []*int{r.Exact, r.Min, r.Max} {
		if v != nil && *v < 0 {
			verr.Add(field, field+" cannot be negative")
			return
		}
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		verr.Add(field, fmt.Sprintf("%s_min cannot be greater than %s_max", field, field))
	}
}

// ListingFilters - стандартные фильтры поиска листингов
type ListingFilters struct {
	PriceMin         *float64
	PriceMax         *float64
	PropertyTypes    []PropertyType
	AmenityIDs       []uuid.UUID
	ElectricityTypes []ElectricityType
	Bedrooms         IntRange
	Toilets          IntRange
	IsFurnished      *bool
	IsSpecialNeeds   *bool
	IsFenced         *bool
	WaterSupply      *bool
	Search           string
	GeohashPrefix    string
	OwnerID          *uuid.UUID
	Ordering         Ordering

	// поиск рядом с университетом, заполняется только в общем списке
	UniversityID *uuid.UUID
	RadiusKm     float64
}

// Validate проверяет диапазоны и допустимые значения фильтров
func (f ListingFilters) Validate() error {
	verr := &ValidationError{}

	for field, v := range map[string]*float64{"price_min": f.PriceMin, "price_max": f.PriceMax} {
		if v != nil && (math.IsNaN(*v) || *v < 0) {
			verr.Add(field, "price cannot be negative")
		}
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		verr.Add("price_min", "price_min cannot be greater than price_max")
	}
	for _, t := range f.PropertyTypes {
		if !t.Valid() {
			verr.Add("property_type", fmt.Sprintf("unknown property type %q", t))
		}
	}
	for _, e := range f.ElectricityTypes {
		if !e.Valid() {
			verr.Add("electricity_type", fmt.Sprintf("unknown electricity type %q", e))
		}
	}
	f.Bedrooms.validate(verr, "bedrooms")
	f.Toilets.validate(verr, "toilets")
	if f.GeohashPrefix != "" && !ValidGeohashPrefix(f.GeohashPrefix) {
		verr.Add("geohash", "geohash must be a base32 geohash prefix of up to 9 characters")
	}
	if f.UniversityID != nil {
		if err := ValidateRadius(f.RadiusKm); err != nil {
			verr.Add("distance", err.(*ValidationError).Fields["distance"])
		}
	}

	return verr.OrNil()
}

// ListingPage - страница результатов поиска
type ListingPage struct {
	Listings     []ListingView
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}

// EmptyListingPage - пустая страница для запроса, который ничего не нашел
func EmptyListingPage(p Pagination) *ListingPage {
	return &ListingPage{
		Listings:     []ListingView{},
		CurrentPage:  p.Page,
		ItemsPerPage: p.PageSize,
	}
}

func (p *ListingPage) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		return 0
	}
	return (p.TotalCount + p.ItemsPerPage - 1) / p.ItemsPerPage
}
