package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Amenity - удобство, которое можно привязать к листингу
type Amenity struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
}

func NewAmenity(name, description, icon string, now time.Time) (*Amenity, error) {
	a := &Amenity{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Icon:        icon,
		CreatedAt:   now,
	}
	if a.Name == "" {
		return nil, NewValidationError("name", "amenity name is required")
	}
	return a, nil
}

// MissingIDs возвращает запрошенные id, которых нет среди найденных
func MissingIDs(requested []uuid.UUID, found []Amenity) []uuid.UUID {
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, a := range found {
		known[a.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// UnknownAmenitiesError описывает неизвестные id одной ошибкой валидации
func UnknownAmenitiesError(missing []uuid.UUID) error {
	if len(missing) == 0 {
		return nil
	}
	ids := make([]string, 0, len(missing))
	for _, id := range missing {
		ids = append(ids, id.String())
	}
	return NewValidationError("amenity_ids", "unknown amenity ids: "+strings.Join(ids, ", "))
}
