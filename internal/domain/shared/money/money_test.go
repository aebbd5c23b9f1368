package money_test

import (
	"errors"
	"testing"

	"staybook/internal/domain/shared/money"
)

func TestAddCurrencyMismatch(t *testing.T) {
	usd := money.Must(100, "USD")
	eur := money.Must(100, "EUR")
	if _, err := usd.Add(eur); !errors.Is(err, money.ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestNewRejectsEmptyCurrency(t *testing.T) {
	if _, err := money.New(100, ""); !errors.Is(err, money.ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestMultiply(t *testing.T) {
	m := money.Must(10000, "USD").Multiply(3).Multiply(2)
	if m.Amount != 60000 {
		t.Fatalf("expected 60000, got %d", m.Amount)
	}
	if m.Currency != "USD" {
		t.Fatalf("currency changed: %s", m.Currency)
	}
}

func TestApplyPercent(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		rate   float64
		want   int64
	}{
		{"exact", 9000, 20, 1800},
		{"rounds half up", 1050, 5, 53}, // 52.5 cents
		{"zero rate", 9000, 0, 0},
		{"full rate", 9000, 100, 9000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := money.Must(tc.amount, "USD").ApplyPercent(tc.rate)
			if err != nil {
				t.Fatalf("ApplyPercent: %v", err)
			}
			if got.Amount != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got.Amount)
			}
		})
	}
}

func TestApplyPercentRejectsNegativeRate(t *testing.T) {
	if _, err := money.Must(9000, "USD").ApplyPercent(-1); !errors.Is(err, money.ErrNegativeRate) {
		t.Fatalf("expected ErrNegativeRate, got %v", err)
	}
}

func TestSubBelowZero(t *testing.T) {
	got, err := money.Must(100, "USD").Sub(money.Must(250, "USD"))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got.Amount != -150 {
		t.Fatalf("expected -150, got %d", got.Amount)
	}
	if !got.IsNegative() {
		t.Fatalf("expected negative result")
	}
}
