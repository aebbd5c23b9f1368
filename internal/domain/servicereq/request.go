package servicereq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staybook/internal/domain/shared/money"
)

var (
	ErrNotFound       = errors.New("servicereq: not found")
	ErrNameRequired   = errors.New("servicereq: name is required")
	ErrNegativeAmount = errors.New("servicereq: amount must be non-negative")
)

type RequestID string

// ServiceRequest is a persisted ad-hoc add-on a traveler asked for against a
// booking: free-form name, price and an optional scheduled time.
type ServiceRequest struct {
	ID          RequestID
	UserID      string
	BookingID   string
	Name        string
	Description string
	Amount      money.Money
	ScheduledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateParams struct {
	ID          RequestID
	UserID      string
	BookingID   string
	Name        string
	Description string
	Amount      money.Money
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

func New(params CreateParams) (*ServiceRequest, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %q at %s", ErrNegativeAmount, params.Name, params.Amount)
	}
	now := params.CreatedAt.UTC()
	return &ServiceRequest{
		ID:          params.ID,
		UserID:      params.UserID,
		BookingID:   params.BookingID,
		Name:        params.Name,
		Description: params.Description,
		Amount:      params.Amount,
		ScheduledAt: params.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the mutable fields, keeping the same validation as New.
func (r *ServiceRequest) Update(name, description string, amount money.Money, scheduledAt *time.Time, now time.Time) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %q at %s", ErrNegativeAmount, name, amount)
	}
	r.Name = name
	r.Description = description
	r.Amount = amount
	r.ScheduledAt = scheduledAt
	r.UpdatedAt = now.UTC()
	return nil
}

type Repository interface {
	ByID(ctx context.Context, id RequestID) (*ServiceRequest, error)
	Save(ctx context.Context, req *ServiceRequest) error
	Delete(ctx context.Context, id RequestID) error
	ListByBooking(ctx context.Context, bookingID string) ([]*ServiceRequest, error)
}
