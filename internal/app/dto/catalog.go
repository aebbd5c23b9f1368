package dto

import (
	domaincatalog "staybook/internal/domain/catalog"
)

type Facility struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price MoneyDTO `json:"price"`
}

type PropertyOverview struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	NightlyRate MoneyDTO   `json:"nightly_rate"`
	GuestsLimit int        `json:"guests_limit,omitempty"`
	Facilities  []Facility `json:"facilities"`
}

func MapFacility(f domaincatalog.Facility) Facility {
	return Facility{ID: string(f.ID), Name: f.Name, Price: MapMoney(f.Price)}
}

func MapProperty(p *domaincatalog.Property) PropertyOverview {
	out := PropertyOverview{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		Country:     p.Country,
		NightlyRate: MapMoney(p.NightlyRate),
		GuestsLimit: p.GuestsLimit,
		Facilities:  make([]Facility, 0, len(p.Facilities)),
	}
	for _, f := range p.Facilities {
		out.Facilities = append(out.Facilities, MapFacility(f))
	}
	return out
}

type FacilityCollection struct {
	Items []Facility `json:"items"`
}
