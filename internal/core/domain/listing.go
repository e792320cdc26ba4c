package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType - тип жилья
type PropertyType string

const (
	PropertyHouse         PropertyType = "house"
	PropertyApartment     PropertyType = "apartment"
	PropertyHostel        PropertyType = "hostel"
	PropertySharedRoom    PropertyType = "shared_room"
	PropertySingleRoom    PropertyType = "single_room"
	PropertyMasterBedroom PropertyType = "master_bedroom"
	PropertySelfContained PropertyType = "self_contained"
	PropertyCondo         PropertyType = "condo"
)

// PropertyTypes - все типы в порядке отображения
var PropertyTypes = []PropertyType{
	PropertyHouse,
	PropertyApartment,
	PropertyHostel,
	PropertySharedRoom,
	PropertySingleRoom,
	PropertyMasterBedroom,
	PropertySelfContained,
	PropertyCondo,
}

func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

type WindowsType string

const (
	WindowsAluminum WindowsType = "aluminum"
	WindowsNyavu    WindowsType = "nyavu"
)

func (w WindowsType) Valid() bool {
	return w == WindowsAluminum || w == WindowsNyavu
}

type ElectricityType string

const (
	ElectricitySubmetered ElectricityType = "submetered"
	ElectricityShared     ElectricityType = "shared"
	ElectricityIndividual ElectricityType = "individual"
	ElectricityNone       ElectricityType = "none"
)

func (e ElectricityType) Valid() bool {
	switch e {
	case ElectricitySubmetered, ElectricityShared, ElectricityIndividual, ElectricityNone:
		return true
	}
	return false
}

const (
	MinLeaseMonths = 1
	MaxLeaseMonths = 120
	maxScore       = 10.0
	maxTitleLength = 255
)

// Scores заполняются внешним процессом оценки, 0-10 с одним знаком
type Scores struct {
	Safety         *float64 `json:"safety_score"`
	Transportation *float64 `json:"transportation_score"`
	Amenities      *float64 `json:"amenities_score"`
	Overall        *float64 `json:"overall_score"`
}

// Listing - сдаваемый объект
type Listing struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	Title               string
	Name                string
	Description         string
	PropertyType        PropertyType
	Price               float64
	Bedrooms            int
	Toilets             int
	Address             string
	Location            Point
	Geohash             string
	Size                string
	AvailableFrom       *time.Time
	LeaseDurationMonths *int
	IsFurnished         bool
	IsSpecialNeeds      bool
	IsAvailable         bool
	IsFenced            bool
	WindowsType         WindowsType
	ElectricityType     ElectricityType
	WaterSupply         bool
	ViewCount           int64
	LastViewed          *time.Time
	Scores              Scores
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ListingInput - данные для создания листинга
type ListingInput struct {
	Title               string
	Name                string
	Description         string
	PropertyType        PropertyType
	Price               float64
	Bedrooms            int
	Toilets             int
	Address             string
	Location            Point
	Size                string
	AvailableFrom       *time.Time
	LeaseDurationMonths *int
	IsFurnished         bool
	IsSpecialNeeds      bool
	IsFenced            bool
	WindowsType         WindowsType
	ElectricityType     ElectricityType
	WaterSupply         bool
	Scores              Scores
	AmenityIDs          []uuid.UUID
	Media               []MediaInput
}

// NewListing создает доступный листинг владельца и проверяет инварианты
func NewListing(ownerID uuid.UUID, in ListingInput, now time.Time) (*Listing, error) {
	l := &Listing{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		Title:               strings.TrimSpace(in.Title),
		Name:                strings.TrimSpace(in.Name),
		Description:         in.Description,
		PropertyType:        in.PropertyType,
		Price:               roundMoney(in.Price),
		Bedrooms:            in.Bedrooms,
		Toilets:             in.Toilets,
		Address:             strings.TrimSpace(in.Address),
		Location:            in.Location,
		Size:                in.Size,
		AvailableFrom:       in.AvailableFrom,
		LeaseDurationMonths: in.LeaseDurationMonths,
		IsFurnished:         in.IsFurnished,
		IsSpecialNeeds:      in.IsSpecialNeeds,
		IsAvailable:         true,
		IsFenced:            in.IsFenced,
		WindowsType:         in.WindowsType,
		ElectricityType:     in.ElectricityType,
		WaterSupply:         in.WaterSupply,
		Scores:              in.Scores,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if l.Name == "" {
		l.Name = l.Title
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.Geohash = l.Location.Geohash()
	return l, nil
}

// Validate проверяет все инварианты листинга и собирает ошибки по полям
func (l *Listing) Validate() error {
	verr := &ValidationError{}

	if l.Title == "" {
		verr.Add("title", "title is required")
	} else if len(l.Title) > maxTitleLength {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if l.Address == "" {
		verr.Add("address", "address is required")
	}
	if !l.PropertyType.Valid() {
		verr.Add("property_type", fmt.Sprintf("unknown property type %q", l.PropertyType))
	}
	if math.IsNaN(l.Price) || l.Price <= 0 {
		verr.Add("price", "price must be greater than zero")
	}
	if l.Bedrooms < 0 {
		verr.Add("bedrooms", "bedrooms cannot be negative")
	}
	if l.Toilets < 0 {
		verr.Add("toilets", "toilets cannot be negative")
	}
	if l.LeaseDurationMonths != nil {
		if m := *l.LeaseDurationMonths; m < MinLeaseMonths || m > MaxLeaseMonths {
			verr.Add("lease_duration", fmt.Sprintf("lease duration must be between %d and %d months", MinLeaseMonths, MaxLeaseMonths))
		}
	}
	if l.WindowsType != "" && !l.WindowsType.Valid() {
		verr.Add("windows_type", fmt.Sprintf("unknown windows type %q", l.WindowsType))
	}
	if l.ElectricityType != "" && !l.ElectricityType.Valid() {
		verr.Add("electricity_type", fmt.Sprintf("unknown electricity type %q", l.ElectricityType))
	}
	validateScore(verr, "safety_score", l.Scores.Safety)
	validateScore(verr, "transportation_score", l.Scores.Transportation)
	validateScore(verr, "amenities_score", l.Scores.Amenities)
	validateScore(verr, "overall_score", l.Scores.Overall)

	addPointErrors(verr, l.Location)

	return verr.OrNil()
}

func validateScore(verr *ValidationError, field string, score *float64) {
	if score == nil {
		return
	}
	if math.IsNaN(*score) || *score < 0 || *score > maxScore {
		verr.Add(field, "score must be between 0 and 10")
	}
}

// ListingPatch - частичное обновление, nil означает "не менять"
type ListingPatch struct {
	Title               *string
	Name                *string
	Description         *string
	PropertyType        *PropertyType
	Price               *float64
	Bedrooms            *int
	Toilets             *int
	Address             *string
	Location            *Point
	Size                *string
	AvailableFrom       *time.Time
	LeaseDurationMonths *int
	IsFurnished         *bool
	IsSpecialNeeds      *bool
	IsAvailable         *bool
	IsFenced            *bool
	WindowsType         *WindowsType
	ElectricityType     *ElectricityType
	WaterSupply         *bool
	Scores              *Scores

	// nil - не трогать амениты, пустой срез - удалить все
	AmenityIDs   *[]uuid.UUID
	Media        []MediaInput
	ReplaceMedia bool
}

// Apply применяет изменения к копии листинга и возвращает ее после проверки
func (p ListingPatch) Apply(current *Listing, now time.Time) (*Listing, error) {
	l := *current

	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.Name != nil {
		l.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.Price != nil {
		l.Price = roundMoney(*p.Price)
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Toilets != nil {
		l.Toilets = *p.Toilets
	}
	if p.Address != nil {
		l.Address = strings.TrimSpace(*p.Address)
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Size != nil {
		l.Size = *p.Size
	}
	if p.AvailableFrom != nil {
		l.AvailableFrom = p.AvailableFrom
	}
	if p.LeaseDurationMonths != nil {
		l.LeaseDurationMonths = p.LeaseDurationMonths
	}
	if p.IsFurnished != nil {
		l.IsFurnished = *p.IsFurnished
	}
	if p.IsSpecialNeeds != nil {
		l.IsSpecialNeeds = *p.IsSpecialNeeds
	}
	if p.IsAvailable != nil {
		l.IsAvailable = *p.IsAvailable
	}
	if p.IsFenced != nil {
		l.IsFenced = *p.IsFenced
	}
	if p.WindowsType != nil {
		l.WindowsType = *p.WindowsType
	}
	if p.ElectricityType != nil {
		l.ElectricityType = *p.ElectricityType
	}
	if p.WaterSupply != nil {
		l.WaterSupply = *p.WaterSupply
	}
	if p.Scores != nil {
		l.Scores = *p.Scores
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.Geohash = l.Location.Geohash()
	l.UpdatedAt = now
	return &l, nil
}

// DedupeIDs убирает повторы, сохраняя порядок
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ListingView - листинг вместе со связанными данными для ответа
type ListingView struct {
	Listing
	Amenities    []Amenity
	Media        []Media
	NearbyPlaces []ListingNearbyPlace
	Rating       RatingSummary
	// заполняется только в поиске по радиусу
	DistanceKm *float64
}

// SavedListing - результат создания или изменения: листинг уже сохранен, даже если часть медиа не прикрепилась
type SavedListing struct {
	Listing     *ListingView
	MediaErrors []MediaFailure
}
