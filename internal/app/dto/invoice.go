package dto

import (
	"time"

	domainpricing "staybook/internal/domain/pricing"
	domainservicereq "staybook/internal/domain/servicereq"
)

type InvoiceTotals struct {
	Subtotal        MoneyDTO `json:"subtotal"`
	TotalWithoutTax MoneyDTO `json:"total_without_tax"`
	Tax             MoneyDTO `json:"tax"`
	Total           MoneyDTO `json:"total"`
}

func MapInvoiceTotals(t domainpricing.InvoiceTotals) InvoiceTotals {
	return InvoiceTotals{
		Subtotal:        MapMoney(t.Subtotal),
		TotalWithoutTax: MapMoney(t.TotalWithoutTax),
		Tax:             MapMoney(t.Tax),
		Total:           MapMoney(t.Total),
	}
}

type ServiceRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	BookingID   string     `json:"booking_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Amount      MoneyDTO   `json:"amount"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func MapServiceRequest(r *domainservicereq.ServiceRequest) ServiceRequest {
	return ServiceRequest{
		ID:          string(r.ID),
		UserID:      r.UserID,
		BookingID:   r.BookingID,
		Name:        r.Name,
		Description: r.Description,
		Amount:      MapMoney(r.Amount),
		ScheduledAt: r.ScheduledAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ServiceRequestCollection struct {
	Items []ServiceRequest `json:"items"`
}
