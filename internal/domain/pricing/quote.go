package pricing

import (
	"errors"
	"fmt"

	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

var ErrInvalidInput = errors.New("pricing: invalid input")

// FixedFees are the flat amounts added on top of the stay in the traveler
// flow. These are amounts, not rates.
type FixedFees struct {
	Cleaning  money.Money `json:"cleaning" bson:"cleaning"`
	Service   money.Money `json:"service" bson:"service"`
	TaxAmount money.Money `json:"tax_amount" bson:"tax_amount"`
}

func (f FixedFees) validate() error {
	for _, fee := range []struct {
		name   string
		amount money.Money
	}{
		{"cleaning fee", f.Cleaning},
		{"service fee", f.Service},
		{"tax amount", f.TaxAmount},
	} {
		if fee.amount.IsNegative() {
			return fmt.Errorf("%w: %s %s", ErrInvalidInput, fee.name, fee.amount)
		}
	}
	return nil
}

// Quote is a fully priced reservation. All components are kept so clients
// can render the breakdown; Total is the binding figure.
type Quote struct {
	Nights   int         `json:"nights" bson:"nights"`
	StayCost money.Money `json:"stay_cost" bson:"stay_cost"`
	AddOns   money.Money `json:"add_ons" bson:"add_ons"`
	Subtotal money.Money `json:"subtotal" bson:"subtotal"`
	Fees     FixedFees   `json:"fees" bson:"fees"`
	Total    money.Money `json:"total" bson:"total"`
}

// QuoteReservation prices a stay through the fixed pipeline:
//
//	stayCost = nightly * nights * travelers
//	addOns   = PriceLineItems(items)
//	subtotal = stayCost + addOns
//	total    = subtotal + cleaning + service + taxAmount
//
// The traveler count multiplies the whole stay cost, not per-night. The
// function is pure: identical inputs yield identical quotes, and invalid
// inputs are refused rather than clamped.
func QuoteReservation(nightly money.Money, dr daterange.DateRange, travelers int, items []LineItem, fees FixedFees) (Quote, error) {
	if travelers < 1 {
		return Quote{}, fmt.Errorf("%w: travelers %d", ErrInvalidInput, travelers)
	}
	if nightly.IsNegative() {
		return Quote{}, fmt.Errorf("%w: nightly rate %s", ErrInvalidInput, nightly)
	}
	if nightly.Currency == "" {
		return Quote{}, fmt.Errorf("%w: nightly rate currency unset", ErrInvalidInput)
	}
	nights, err := dr.Nights()
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if nights < 1 {
		return Quote{}, fmt.Errorf("%w: nights %d", ErrInvalidInput, nights)
	}
	if err := fees.validate(); err != nil {
		return Quote{}, err
	}

	stayCost := nightly.Multiply(int64(nights)).Multiply(int64(travelers))

	addOns, err := PriceLineItems(items)
	if err != nil {
		return Quote{}, err
	}
	if addOns.Currency == "" {
		addOns = money.Money{Amount: 0, Currency: nightly.Currency}
	}

	subtotal, err := stayCost.Add(addOns)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: add-ons priced in %s against stay in %s",
			ErrInvalidInput, addOns.Currency, stayCost.Currency)
	}

	total := subtotal
	for _, fee := range []money.Money{fees.Cleaning, fees.Service, fees.TaxAmount} {
		if fee.Currency == "" && fee.Amount == 0 {
			continue
		}
		sum, err := total.Add(fee)
		if err != nil {
			return Quote{}, fmt.Errorf("%w: fee currency %s against total in %s",
				ErrInvalidInput, fee.Currency, total.Currency)
		}
		total = sum
	}

	return Quote{
		Nights:   nights,
		StayCost: stayCost,
		AddOns:   addOns,
		Subtotal: subtotal,
		Fees:     fees,
		Total:    total,
	}, nil
}
