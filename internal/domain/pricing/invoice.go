package pricing

import (
	"fmt"

	"staybook/internal/domain/shared/money"
)

// DiscountMode states how a discount value is meant to be applied. The
// source systems this replaces validated discounts as percentages but
// subtracted them as flat amounts; here the caller has to pick a mode and
// the zero value is rejected.
type DiscountMode string

const (
	DiscountAmount  DiscountMode = "amount"
	DiscountPercent DiscountMode = "percent"
)

type Discount struct {
	Mode    DiscountMode `json:"mode"`
	Amount  money.Money  `json:"amount,omitempty"`
	Percent float64      `json:"percent,omitempty"`
}

// NewAmountDiscount builds a flat-subtraction discount.
func NewAmountDiscount(amount money.Money) (Discount, error) {
	if amount.IsNegative() {
		return Discount{}, fmt.Errorf("%w: discount amount %s", ErrInvalidInput, amount)
	}
	return Discount{Mode: DiscountAmount, Amount: amount}, nil
}

// NewPercentDiscount builds a percentage discount in [0, 100].
func NewPercentDiscount(percent float64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, fmt.Errorf("%w: discount percent %v", ErrInvalidInput, percent)
	}
	return Discount{Mode: DiscountPercent, Percent: percent}, nil
}

// NoDiscount is the explicit absence of a discount.
func NoDiscount(currency string) Discount {
	return Discount{Mode: DiscountAmount, Amount: money.Money{Amount: 0, Currency: currency}}
}

func (d Discount) applyTo(subtotal money.Money) (money.Money, error) {
	switch d.Mode {
	case DiscountAmount:
		if d.Amount.IsNegative() {
			return money.Money{}, fmt.Errorf("%w: discount amount %s", ErrInvalidInput, d.Amount)
		}
		if d.Amount.IsZero() && d.Amount.Currency == "" {
			return subtotal, nil
		}
		return subtotal.Sub(d.Amount)
	case DiscountPercent:
		cut, err := subtotal.ApplyPercent(d.Percent)
		if err != nil {
			return money.Money{}, fmt.Errorf("%w: discount percent %v", ErrInvalidInput, d.Percent)
		}
		return subtotal.Sub(cut)
	default:
		return money.Money{}, fmt.Errorf("%w: discount mode %q", ErrInvalidInput, d.Mode)
	}
}

// InvoiceLine is one billable row of an admin invoice or order.
type InvoiceLine struct {
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price"`
}

type InvoiceTotals struct {
	Subtotal        money.Money `json:"subtotal"`
	TotalWithoutTax money.Money `json:"total_without_tax"`
	Tax             money.Money `json:"tax"`
	Total           money.Money `json:"total"`
}

// PriceInvoice computes admin invoice totals:
//
//	subtotal        = Σ quantity_i * unitPrice_i
//	totalWithoutTax = subtotal - discount
//	tax             = totalWithoutTax * taxRatePercent / 100  (rounded half-up)
//	total           = totalWithoutTax + tax
//
// Unlike the traveler flow, the tax here is a rate, and the discount mode is
// whatever the caller declared.
func PriceInvoice(lines []InvoiceLine, discount Discount, taxRatePercent float64) (InvoiceTotals, error) {
	if len(lines) == 0 {
		return InvoiceTotals{}, fmt.Errorf("%w: invoice has no lines", ErrInvalidInput)
	}
	if taxRatePercent < 0 || taxRatePercent > 100 {
		return InvoiceTotals{}, fmt.Errorf("%w: tax rate %v", ErrInvalidInput, taxRatePercent)
	}

	var subtotal money.Money
	for i, line := range lines {
		if line.Quantity < 1 {
			return InvoiceTotals{}, fmt.Errorf("%w: line %d quantity %d", ErrInvalidInput, i, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return InvoiceTotals{}, fmt.Errorf("%w: line %d unit price %s", ErrInvalidInput, i, line.UnitPrice)
		}
		lineTotal := line.UnitPrice.Multiply(int64(line.Quantity))
		if subtotal.Currency == "" {
			subtotal = money.Money{Amount: 0, Currency: lineTotal.Currency}
		}
		sum, err := subtotal.Add(lineTotal)
		if err != nil {
			return InvoiceTotals{}, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, i, err)
		}
		subtotal = sum
	}

	base, err := discount.applyTo(subtotal)
	if err != nil {
		return InvoiceTotals{}, err
	}
	if base.IsNegative() {
		return InvoiceTotals{}, fmt.Errorf("%w: discount exceeds subtotal (%s > %s)", ErrInvalidInput, discount.Amount, subtotal)
	}

	tax, err := base.ApplyPercent(taxRatePercent)
	if err != nil {
		return InvoiceTotals{}, fmt.Errorf("%w: tax rate %v", ErrInvalidInput, taxRatePercent)
	}
	total, err := base.Add(tax)
	if err != nil {
		return InvoiceTotals{}, err
	}

	return InvoiceTotals{
		Subtotal:        subtotal,
		TotalWithoutTax: base,
		Tax:             tax,
		Total:           total,
	}, nil
}
