package order

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/catalog"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
)

var (
	ErrOrderNotFound = errors.New("order: not found")
	ErrEmptyQuote    = errors.New("order: quote required")
)

type OrderID string

// Order is the durable record a confirmed reservation turns into. The draft
// is ephemeral session state; this is what submitOrder persists and what the
// confirmation id refers to.
type Order struct {
	ID            OrderID
	SessionID     string
	PropertyID    catalog.PropertyID
	PropertyTitle string
	Range         daterange.DateRange
	Travelers     int
	Items         []pricing.LineItem
	Quote         pricing.Quote
	PaymentRef    string
	CreatedAt     time.Time
	Version       int64
}

type CreateParams struct {
	ID            OrderID
	SessionID     string
	PropertyID    catalog.PropertyID
	PropertyTitle string
	Range         daterange.DateRange
	Travelers     int
	Items         []pricing.LineItem
	Quote         pricing.Quote
	PaymentRef    string
	CreatedAt     time.Time
}

func New(params CreateParams) (*Order, error) {
	if params.ID == "" {
		return nil, errors.New("order: id required")
	}
	if params.Quote.Total.Currency == "" {
		return nil, ErrEmptyQuote
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	return &Order{
		ID:            params.ID,
		SessionID:     params.SessionID,
		PropertyID:    params.PropertyID,
		PropertyTitle: params.PropertyTitle,
		Range:         params.Range,
		Travelers:     params.Travelers,
		Items:         append([]pricing.LineItem(nil), params.Items...),
		Quote:         params.Quote,
		PaymentRef:    params.PaymentRef,
		CreatedAt:     params.CreatedAt.UTC(),
	}, nil
}

type Repository interface {
	ByID(ctx context.Context, id OrderID) (*Order, error)
	Save(ctx context.Context, o *Order) error
	ListBySession(ctx context.Context, sessionID string) ([]*Order, error)
}
