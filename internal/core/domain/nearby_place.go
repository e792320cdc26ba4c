package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PlaceType string

const (
	PlaceUniversity PlaceType = "university"
	PlaceTransport  PlaceType = "transport"
	PlaceGrocery    PlaceType = "grocery"
	PlaceRestaurant PlaceType = "restaurant"
	PlaceCafe       PlaceType = "cafe"
	PlaceGym        PlaceType = "gym"
	PlaceLibrary    PlaceType = "library"
	PlacePark       PlaceType = "park"
	PlaceHospital   PlaceType = "hospital"
	PlacePharmacy   PlaceType = "pharmacy"
)

func (t PlaceType) Valid() bool {
	switch t {
	case PlaceUniversity, PlaceTransport, PlaceGrocery, PlaceRestaurant, PlaceCafe,
		PlaceGym, PlaceLibrary, PlacePark, PlaceHospital, PlacePharmacy:
		return true
	}
	return false
}

// NearbyPlace - точка интереса рядом с жильем
type NearbyPlace struct {
	ID        uuid.UUID
	Name      string
	PlaceType PlaceType
	Location  Point
	Address   string
	CreatedAt time.Time
}

type NearbyPlaceInput struct {
	Name      string
	PlaceType PlaceType
	Location  Point
	Address   string
}

func NewNearbyPlace(in NearbyPlaceInput, now time.Time) (*NearbyPlace, error) {
	p := &NearbyPlace{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		PlaceType: in.PlaceType,
		Location:  in.Location,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
	}

	verr := &ValidationError{}
	if p.Name == "" {
		verr.Add("name", "name is required")
	}
	if !p.PlaceType.Valid() {
		verr.Add("place_type", fmt.Sprintf("unknown place type %q", p.PlaceType))
	}
	if p.Address == "" {
		verr.Add("address", "address is required")
	}
	addPointErrors(verr, p.Location)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// ListingNearbyPlace - связь листинга с местом, расстояние в км с двумя знаками
type ListingNearbyPlace struct {
	ListingID      uuid.UUID
	Place          NearbyPlace
	DistanceKm     float64
	WalkingMinutes int
}

// LinkNearbyPlace считает расстояние и время пешком между листингом и местом
func LinkNearbyPlace(listing *Listing, place NearbyPlace) ListingNearbyPlace {
	km := listing.Location.DistanceKm(place.Location)
	return ListingNearbyPlace{
		ListingID:      listing.ID,
		Place:          place,
		DistanceKm:     math.Round(km*100) / 100,
		WalkingMinutes: WalkingMinutes(km),
	}
}
