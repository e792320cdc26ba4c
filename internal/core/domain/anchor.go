package domain

import (
	"github.com/google/uuid"
)

// AnchorQuery - опорная точка поиска: университет, кампус или координаты
type AnchorQuery struct {
	UniversityID *uuid.UUID
	CampusID     *uuid.UUID
	Point        *Point
	RadiusKm     float64
}

// Validate требует ровно один источник точки и положительный радиус
func (q AnchorQuery) Validate() error {
	verr := &ValidationError{}

	sources := 0
	if q.UniversityID != nil {
		sources++
	}
	if q.CampusID != nil {
		sources++
	}
	if q.Point != nil {
		sources++
		addPointErrors(verr, *q.Point)
	}
	switch {
	case sources == 0:
		verr.Add("university_id", "one of university_id, campus_id or lon/lat is required")
	case sources > 1:
		verr.Add("university_id", "only one of university_id, campus_id or lon/lat may be set")
	}
	if err := ValidateRadius(q.RadiusKm); err != nil {
		verr.Add("distance", err.(*ValidationError).Fields["distance"])
	}

	return verr.OrNil()
}
