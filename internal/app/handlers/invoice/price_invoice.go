package invoice

import (
	"context"
	"fmt"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/money"
)

const priceInvoiceKey = "invoice.price"

type LineInput struct {
	Description    string
	Quantity       int
	UnitPriceCents int64
}

// PriceInvoiceQuery computes admin invoice totals. DiscountMode is required:
// "amount" subtracts a flat value, "percent" applies a 0–100 rate. The query
// refuses to guess between the two.
type PriceInvoiceQuery struct {
	Lines           []LineInput
	Currency        string
	DiscountMode    string
	DiscountCents   int64
	DiscountPercent float64
	TaxRatePercent  float64
}

func (q PriceInvoiceQuery) Key() string { return priceInvoiceKey }

type PriceInvoiceHandler struct{}

func (h *PriceInvoiceHandler) Handle(ctx context.Context, q PriceInvoiceQuery) (dto.InvoiceTotals, error) {
	currency := q.Currency
	if currency == "" {
		return dto.InvoiceTotals{}, fmt.Errorf("%w: currency required", domainpricing.ErrInvalidInput)
	}

	lines := make([]domainpricing.InvoiceLine, 0, len(q.Lines))
	for _, in := range q.Lines {
		price, err := money.New(in.UnitPriceCents, currency)
		if err != nil {
			return dto.InvoiceTotals{}, fmt.Errorf("%w: %v", domainpricing.ErrInvalidInput, err)
		}
		lines = append(lines, domainpricing.InvoiceLine{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   price,
		})
	}

	var discount domainpricing.Discount
	var err error
	switch domainpricing.DiscountMode(q.DiscountMode) {
	case domainpricing.DiscountAmount:
		amount, merr := money.New(q.DiscountCents, currency)
		if merr != nil {
			return dto.InvoiceTotals{}, fmt.Errorf("%w: %v", domainpricing.ErrInvalidInput, merr)
		}
		discount, err = domainpricing.NewAmountDiscount(amount)
	case domainpricing.DiscountPercent:
		discount, err = domainpricing.NewPercentDiscount(q.DiscountPercent)
	case "":
		discount = domainpricing.NoDiscount(currency)
	default:
		return dto.InvoiceTotals{}, fmt.Errorf("%w: discount mode %q", domainpricing.ErrInvalidInput, q.DiscountMode)
	}
	if err != nil {
		return dto.InvoiceTotals{}, err
	}

	totals, err := domainpricing.PriceInvoice(lines, discount, q.TaxRatePercent)
	if err != nil {
		return dto.InvoiceTotals{}, err
	}
	return dto.MapInvoiceTotals(totals), nil
}

var _ queries.Handler[PriceInvoiceQuery, dto.InvoiceTotals] = (*PriceInvoiceHandler)(nil)
