package pricing_test

import (
	"errors"
	"testing"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/money"
)

func TestPriceInvoiceFlatDiscount(t *testing.T) {
	// 2 x $0.50, $0.10 off, 20% tax.
	lines := []pricing.InvoiceLine{
		{Description: "Late checkout", Quantity: 2, UnitPrice: money.Must(50, "USD")},
	}
	discount, err := pricing.NewAmountDiscount(money.Must(10, "USD"))
	if err != nil {
		t.Fatalf("NewAmountDiscount: %v", err)
	}

	totals, err := pricing.PriceInvoice(lines, discount, 20)
	if err != nil {
		t.Fatalf("PriceInvoice: %v", err)
	}
	if totals.Subtotal.Amount != 100 {
		t.Fatalf("expected subtotal 100, got %d", totals.Subtotal.Amount)
	}
	if totals.TotalWithoutTax.Amount != 90 {
		t.Fatalf("expected base 90, got %d", totals.TotalWithoutTax.Amount)
	}
	if totals.Tax.Amount != 18 {
		t.Fatalf("expected tax 18, got %d", totals.Tax.Amount)
	}
	if totals.Total.Amount != 108 {
		t.Fatalf("expected total 108, got %d", totals.Total.Amount)
	}
}

func TestPriceInvoicePercentDiscount(t *testing.T) {
	lines := []pricing.InvoiceLine{
		{Description: "Cleaning", Quantity: 1, UnitPrice: money.Must(10000, "USD")},
	}
	discount, err := pricing.NewPercentDiscount(25)
	if err != nil {
		t.Fatalf("NewPercentDiscount: %v", err)
	}

	totals, err := pricing.PriceInvoice(lines, discount, 10)
	if err != nil {
		t.Fatalf("PriceInvoice: %v", err)
	}
	if totals.TotalWithoutTax.Amount != 7500 {
		t.Fatalf("expected base 7500, got %d", totals.TotalWithoutTax.Amount)
	}
	if totals.Tax.Amount != 750 {
		t.Fatalf("expected tax 750, got %d", totals.Tax.Amount)
	}
	if totals.Total.Amount != 8250 {
		t.Fatalf("expected total 8250, got %d", totals.Total.Amount)
	}
}

func TestPriceInvoiceNoDiscount(t *testing.T) {
	lines := []pricing.InvoiceLine{
		{Description: "Night", Quantity: 3, UnitPrice: money.Must(10000, "USD")},
	}
	totals, err := pricing.PriceInvoice(lines, pricing.NoDiscount("USD"), 0)
	if err != nil {
		t.Fatalf("PriceInvoice: %v", err)
	}
	if totals.Total.Amount != 30000 {
		t.Fatalf("expected total 30000, got %d", totals.Total.Amount)
	}
}

func TestPriceInvoiceRejections(t *testing.T) {
	line := pricing.InvoiceLine{Description: "Night", Quantity: 1, UnitPrice: money.Must(10000, "USD")}

	t.Run("no lines", func(t *testing.T) {
		_, err := pricing.PriceInvoice(nil, pricing.NoDiscount("USD"), 0)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		bad := pricing.InvoiceLine{Description: "Night", Quantity: 0, UnitPrice: money.Must(10000, "USD")}
		_, err := pricing.PriceInvoice([]pricing.InvoiceLine{bad}, pricing.NoDiscount("USD"), 0)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing discount mode", func(t *testing.T) {
		_, err := pricing.PriceInvoice([]pricing.InvoiceLine{line}, pricing.Discount{}, 0)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("discount exceeds subtotal", func(t *testing.T) {
		discount, _ := pricing.NewAmountDiscount(money.Must(20000, "USD"))
		_, err := pricing.PriceInvoice([]pricing.InvoiceLine{line}, discount, 0)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("tax rate above 100", func(t *testing.T) {
		_, err := pricing.PriceInvoice([]pricing.InvoiceLine{line}, pricing.NoDiscount("USD"), 120)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("percent discount above 100", func(t *testing.T) {
		if _, err := pricing.NewPercentDiscount(120); !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
