package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// University - якорь для поиска по близости
type University struct {
	ID        uuid.UUID
	Name      string
	Address   string
	Website   string
	LogoURL   string
	Location  Point
	Campuses  []Campus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Campus принадлежит ровно одному университету
type Campus struct {
	ID           uuid.UUID
	UniversityID uuid.UUID
	Name         string
	Address      string
	Location     Point
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UniversityInput - поля для создания и замены университета
type UniversityInput struct {
	Name     string
	Address  string
	Website  string
	LogoURL  string
	Location Point
}

func NewUniversity(in UniversityInput, now time.Time) (*University, error) {
	u := &University{
		ID:        uuid.New(),
		CreatedAt: now,
	}
	if err := u.apply(in, now); err != nil {
		return nil, err
	}
	return u, nil
}

// Update заменяет редактируемые поля
func (u *University) Update(in UniversityInput, now time.Time) error {
	return u.apply(in, now)
}

func (u *University) apply(in UniversityInput, now time.Time) error {
	verr := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "name is required")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		verr.Add("address", "address is required")
	}
	website := strings.TrimSpace(in.Website)
	if website != "" {
		if parsed, err := url.Parse(website); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			verr.Add("website", "website must be an absolute url")
		}
	}
	addPointErrors(verr, in.Location)
	if err := verr.OrNil(); err != nil {
		return err
	}

	u.Name = name
	u.Address = address
	u.Website = website
	u.LogoURL = strings.TrimSpace(in.LogoURL)
	u.Location = in.Location
	u.UpdatedAt = now
	return nil
}

// CampusInput - поля кампуса
type CampusInput struct {
	Name     string
	Address  string
	Location Point
}

func NewCampus(universityID uuid.UUID, in CampusInput, now time.Time) (*Campus, error) {
	c := &Campus{
		ID:           uuid.New(),
		UniversityID: universityID,
		CreatedAt:    now,
	}
	if err := c.Update(in, now); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campus) Update(in CampusInput, now time.Time) error {
	verr := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "name is required")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		verr.Add("address", "address is required")
	}
	addPointErrors(verr, in.Location)
	if err := verr.OrNil(); err != nil {
		return err
	}
	c.Name = name
	c.Address = address
	c.Location = in.Location
	c.UpdatedAt = now
	return nil
}

func addPointErrors(verr *ValidationError, p Point) {
	if err := p.Validate(); err != nil {
		for field, msg := range err.(*ValidationError).Fields {
			verr.Add(field, msg)
		}
	}
}

// UniversityPage - страница справочника университетов
type UniversityPage struct {
	Universities []University
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}
