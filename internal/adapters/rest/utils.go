package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

const maxBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// decodeBody проверяет тело по JSON Schema и только потом декодирует его в dst
func decodeBody(r *http.Request, schemaKey string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return domain.NewValidationError("body", "failed to read request body")
	}
	if len(body) > maxBodyBytes {
		return domain.NewValidationError("body", "request body is too large")
	}
	if err := contracts.ValidateRequest(schemaKey, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// queryParser собирает ошибки разбора query-параметров в одну ValidationError
type queryParser struct {
	query url.Values
	verr  *domain.ValidationError
}

func newQueryParser(query url.Values) *queryParser {
	return &queryParser{query: query, verr: &domain.ValidationError{}}
}

func (p *queryParser) err() error { return p.verr.OrNil() }

func (p *queryParser) String(key string) string {
	return strings.TrimSpace(p.query.Get(key))
}

// StringSlice принимает и повторяющиеся параметры, и список через запятую
func (p *queryParser) StringSlice(key string) []string {
	var out []string
	for _, raw := range p.query[key] {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func (p *queryParser) Float(key string) *float64 {
	raw := p.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.verr.Add(key, "must be a number")
		return nil
	}
	return &v
}

func (p *queryParser) Int(key string) *int {
	raw := p.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.verr.Add(key, "must be an integer")
		return nil
	}
	return &v
}

func (p *queryParser) Bool(key string) *bool {
	raw := p.String(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.verr.Add(key, "must be true or false")
		return nil
	}
	return &v
}

func (p *queryParser) UUID(key string) *uuid.UUID {
	raw := p.String(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.verr.Add(key, "must be a valid UUID")
		return nil
	}
	return &id
}

func (p *queryParser) UUIDSlice(key string) []uuid.UUID {
	var out []uuid.UUID
	for i, raw := range p.StringSlice(key) {
		id, err := uuid.Parse(raw)
		if err != nil {
			p.verr.Add(key, fmt.Sprintf("item %d must be a valid UUID", i))
			continue
		}
		out = append(out, id)
	}
	return out
}

// Radius возвращает радиус из параметра distance или значение по умолчанию.
// Значение по умолчанию действует только при отсутствии параметра, явный distance=0 - ошибка.
func (p *queryParser) Radius(defaultKm float64) float64 {
	v := p.Float("distance")
	if v == nil {
		return defaultKm
	}
	if err := domain.ValidateRadius(*v); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			p.verr.Add("distance", verr.Fields["distance"])
		}
	}
	return *v
}

// Point читает lon/lat, оба параметра обязательны вместе
func (p *queryParser) Point() *domain.Point {
	lon, lat := p.Float("lon"), p.Float("lat")
	switch {
	case lon == nil && lat == nil:
		return nil
	case lon == nil:
		p.verr.Add("lon", "lon is required together with lat")
		return nil
	case lat == nil:
		p.verr.Add("lat", "lat is required together with lon")
		return nil
	}
	return &domain.Point{Lon: *lon, Lat: *lat}
}

// Pagination не исправляет значения клиента молча: выход за границы - ошибка поля
func (p *queryParser) Pagination() domain.Pagination {
	page, pageSize := 1, domain.DefaultPageSize
	if v := p.Int("page"); v != nil {
		if *v < 1 {
			p.verr.Add("page", "page must be at least 1")
		}
		page = *v
	}
	if v := p.Int("page_size"); v != nil {
		if *v < 1 || *v > domain.MaxPageSize {
			p.verr.Add("page_size", fmt.Sprintf("page_size must be between 1 and %d", domain.MaxPageSize))
		}
		pageSize = *v
	}
	return domain.NewPagination(page, pageSize)
}

func (p *queryParser) ListingFilters() domain.ListingFilters {
	ordering, err := domain.ParseOrdering(p.String("ordering"))
	if err != nil {
		p.verr.Add("ordering", err.(*domain.ValidationError).Fields["ordering"])
	}

	filters := domain.ListingFilters{
		PriceMin:       p.Float("price_min"),
		PriceMax:       p.Float("price_max"),
		AmenityIDs:     p.UUIDSlice("amenities"),
		Bedrooms:       domain.IntRange{Exact: p.Int("bedrooms"), Min: p.Int("bedrooms_min"), Max: p.Int("bedrooms_max")},
		Toilets:        domain.IntRange{Exact: p.Int("toilets"), Min: p.Int("toilets_min"), Max: p.Int("toilets_max")},
		IsFurnished:    p.Bool("is_furnished"),
		IsSpecialNeeds: p.Bool("is_special_needs"),
		IsFenced:       p.Bool("is_fenced"),
		WaterSupply:    p.Bool("water_supply"),
		Search:         p.String("search"),
		GeohashPrefix:  strings.ToLower(p.String("geohash")),
		OwnerID:        p.UUID("owner"),
		Ordering:       ordering,
	}
	for _, t := range p.StringSlice("property_type") {
		filters.PropertyTypes = append(filters.PropertyTypes, domain.PropertyType(t))
	}
	for _, t := range p.StringSlice("electricity_type") {
		filters.ElectricityTypes = append(filters.ElectricityTypes, domain.ElectricityType(t))
	}
	return filters
}
