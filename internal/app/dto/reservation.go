package dto

import (
	"time"

	domainpricing "staybook/internal/domain/pricing"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(m money.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount, Currency: m.Currency}
}

type LineItemDTO struct {
	Kind        string     `json:"kind"`
	Ref         string     `json:"ref"`
	FacilityID  string     `json:"facility_id,omitempty"`
	Name        string     `json:"name"`
	Price       MoneyDTO   `json:"price"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type QuoteDTO struct {
	Nights      int      `json:"nights"`
	StayCost    MoneyDTO `json:"stay_cost"`
	AddOns      MoneyDTO `json:"add_ons"`
	Subtotal    MoneyDTO `json:"subtotal"`
	CleaningFee MoneyDTO `json:"cleaning_fee"`
	ServiceFee  MoneyDTO `json:"service_fee"`
	TaxAmount   MoneyDTO `json:"tax_amount"`
	Total       MoneyDTO `json:"total"`
}

type ReservationDraft struct {
	SessionID     string        `json:"session_id"`
	PropertyID    string        `json:"property_id"`
	PropertyTitle string        `json:"property_title"`
	NightlyRate   MoneyDTO      `json:"nightly_rate"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	Travelers     int           `json:"travelers"`
	Items         []LineItemDTO `json:"items"`
	Quote         *QuoteDTO     `json:"quote,omitempty"`
	Step          string        `json:"step"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func MapDraft(d *domainreservation.Draft) ReservationDraft {
	out := ReservationDraft{
		SessionID:     d.ID,
		PropertyID:    string(d.PropertyID),
		PropertyTitle: d.PropertyTitle,
		NightlyRate:   MapMoney(d.NightlyRate),
		CheckIn:       d.Range.CheckIn,
		CheckOut:      d.Range.CheckOut,
		Travelers:     d.Travelers,
		Items:         make([]LineItemDTO, 0, len(d.Items)),
		Step:          string(d.Step),
		UpdatedAt:     d.UpdatedAt,
	}
	for _, item := range d.Items {
		out.Items = append(out.Items, MapLineItem(item))
	}
	if d.Quote != nil {
		q := MapQuote(*d.Quote)
		out.Quote = &q
	}
	return out
}

func MapLineItem(item domainpricing.LineItem) LineItemDTO {
	return LineItemDTO{
		Kind:        string(item.Kind),
		Ref:         item.Ref,
		FacilityID:  item.FacilityID,
		Name:        item.Name,
		Price:       MapMoney(item.Price),
		ScheduledAt: item.ScheduledAt,
	}
}

func MapQuote(q domainpricing.Quote) QuoteDTO {
	return QuoteDTO{
		Nights:      q.Nights,
		StayCost:    MapMoney(q.StayCost),
		AddOns:      MapMoney(q.AddOns),
		Subtotal:    MapMoney(q.Subtotal),
		CleaningFee: MapMoney(q.Fees.Cleaning),
		ServiceFee:  MapMoney(q.Fees.Service),
		TaxAmount:   MapMoney(q.Fees.TaxAmount),
		Total:       MapMoney(q.Total),
	}
}
