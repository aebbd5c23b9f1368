// Package stripe implements the payments port on Stripe payment intents.
// A hold is a manual-capture intent: authorized at finalize start, then
// captured on success or cancelled if the submission is abandoned.
package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"staybook/internal/app/policies"
	"staybook/internal/domain/shared/money"
)

type Payments struct{}

// New configures the global Stripe key and returns the adapter.
func New(apiKey string) *Payments {
	stripe.Key = apiKey
	return &Payments{}
}

func (p *Payments) PlaceHold(ctx context.Context, orderID string, amount money.Money) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount.Amount),
		Currency:      stripe.String(strings.ToLower(amount.Currency)),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID)
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: place hold for order %s: %w", orderID, err)
	}
	return intent.ID, nil
}

func (p *Payments) Capture(ctx context.Context, holdID string) error {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	if _, err := paymentintent.Capture(holdID, params); err != nil {
		return fmt.Errorf("stripe: capture %s: %w", holdID, err)
	}
	return nil
}

func (p *Payments) Release(ctx context.Context, holdID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(holdID, params); err != nil {
		return fmt.Errorf("stripe: release %s: %w", holdID, err)
	}
	return nil
}

var _ policies.PaymentsPort = (*Payments)(nil)
