package catalog

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/domain/shared/money"
)

var (
	ErrPropertyNotFound = errors.New("catalog: property not found")
	ErrFacilityNotFound = errors.New("catalog: facility not found")
	ErrTitleRequired    = errors.New("catalog: title is required")
	ErrNightlyRate      = errors.New("catalog: nightly rate must be non-negative")
)

type PropertyID string
type FacilityID string

// Facility is a bookable add-on from the catalog: fixed id, name and price.
type Facility struct {
	ID    FacilityID
	Name  string
	Price money.Money
}

// Property is what a traveler books: read-only to the reservation flow.
type Property struct {
	ID          PropertyID
	Title       string
	Description string
	City        string
	Country     string
	NightlyRate money.Money
	GuestsLimit int
	Facilities  []Facility
}

func (p *Property) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if p.NightlyRate.IsNegative() {
		return ErrNightlyRate
	}
	return nil
}

// Facility looks a facility up on the property's own catalog.
func (p *Property) Facility(id FacilityID) (Facility, bool) {
	for _, f := range p.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return Facility{}, false
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, property *Property) error
	ListFacilities(ctx context.Context) ([]Facility, error)
}
