package policies

import (
	"context"

	"staybook/internal/domain/shared/money"
)

// PaymentsPort is the payment collaborator used at finalize. PlaceHold
// authorizes the amount without charging; Capture charges a previously
// placed hold; Release voids it when the submission is abandoned.
type PaymentsPort interface {
	PlaceHold(ctx context.Context, orderID string, amount money.Money) (string, error)
	Capture(ctx context.Context, holdID string) error
	Release(ctx context.Context, holdID string) error
}
