package pricing_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

func stay(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestQuoteReservationBaseStay(t *testing.T) {
	// $100/night, 3 nights, 2 travelers, no add-ons, no fees.
	nightly := money.Must(10000, "USD")
	quote, err := pricing.QuoteReservation(nightly, stay(t, day(10), day(13)), 2, nil, pricing.FixedFees{})
	if err != nil {
		t.Fatalf("QuoteReservation: %v", err)
	}
	if quote.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", quote.Nights)
	}
	if quote.StayCost.Amount != 60000 {
		t.Fatalf("expected stay cost 60000, got %d", quote.StayCost.Amount)
	}
	if quote.Total.Amount != 60000 {
		t.Fatalf("expected total 60000, got %d", quote.Total.Amount)
	}
}

func TestQuoteReservationWithAddOnsAndFees(t *testing.T) {
	nightly := money.Must(10000, "USD")
	spa, err := pricing.NewCatalogItem("spa", "Spa access", money.Must(2500, "USD"))
	if err != nil {
		t.Fatalf("NewCatalogItem: %v", err)
	}
	transfer, err := pricing.NewCustomItem("Airport transfer", money.Must(1500, "USD"), nil)
	if err != nil {
		t.Fatalf("NewCustomItem: %v", err)
	}
	fees := pricing.FixedFees{
		Cleaning:  money.Must(800, "USD"),
		Service:   money.Must(1300, "USD"),
		TaxAmount: money.Must(1100, "USD"),
	}

	quote, err := pricing.QuoteReservation(nightly, stay(t, day(10), day(13)), 2, []pricing.LineItem{spa, transfer}, fees)
	if err != nil {
		t.Fatalf("QuoteReservation: %v", err)
	}
	if quote.AddOns.Amount != 4000 {
		t.Fatalf("expected add-ons 4000, got %d", quote.AddOns.Amount)
	}
	if quote.Subtotal.Amount != 64000 {
		t.Fatalf("expected subtotal 64000, got %d", quote.Subtotal.Amount)
	}
	if quote.Total.Amount != 67200 {
		t.Fatalf("expected total 67200, got %d", quote.Total.Amount)
	}
}

func TestQuoteReservationDeterministic(t *testing.T) {
	nightly := money.Must(12300, "USD")
	item, _ := pricing.NewCatalogItem("gym", "Gym", money.Must(900, "USD"))
	fees := pricing.FixedFees{Cleaning: money.Must(800, "USD")}

	first, err := pricing.QuoteReservation(nightly, stay(t, day(1), day(5)), 3, []pricing.LineItem{item}, fees)
	if err != nil {
		t.Fatalf("QuoteReservation: %v", err)
	}
	second, err := pricing.QuoteReservation(nightly, stay(t, day(1), day(5)), 3, []pricing.LineItem{item}, fees)
	if err != nil {
		t.Fatalf("QuoteReservation: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different quotes:\n%+v\n%+v", first, second)
	}
}

func TestQuoteReservationInvalidInputs(t *testing.T) {
	nightly := money.Must(10000, "USD")

	t.Run("zero travelers", func(t *testing.T) {
		_, err := pricing.QuoteReservation(nightly, stay(t, day(10), day(13)), 0, nil, pricing.FixedFees{})
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		dr := daterange.DateRange{CheckIn: day(13), CheckOut: day(10)}
		_, err := pricing.QuoteReservation(nightly, dr, 2, nil, pricing.FixedFees{})
		if !errors.Is(err, daterange.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("zero-night stay", func(t *testing.T) {
		// Same calendar day with distinct times: must refuse, not price at $0.
		dr := daterange.DateRange{
			CheckIn:  time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC),
		}
		_, err := pricing.QuoteReservation(nightly, dr, 2, nil, pricing.FixedFees{})
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative fee", func(t *testing.T) {
		fees := pricing.FixedFees{Cleaning: money.Money{Amount: -100, Currency: "USD"}}
		_, err := pricing.QuoteReservation(nightly, stay(t, day(10), day(13)), 2, nil, fees)
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("mixed currencies", func(t *testing.T) {
		item, _ := pricing.NewCatalogItem("spa", "Spa", money.Must(1000, "EUR"))
		_, err := pricing.QuoteReservation(nightly, stay(t, day(10), day(13)), 2, []pricing.LineItem{item}, pricing.FixedFees{})
		if !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestPriceLineItemsDeduplicatesCatalogItems(t *testing.T) {
	spa, _ := pricing.NewCatalogItem("spa", "Spa", money.Must(2500, "USD"))
	total, err := pricing.PriceLineItems([]pricing.LineItem{spa, spa, spa})
	if err != nil {
		t.Fatalf("PriceLineItems: %v", err)
	}
	if total.Amount != 2500 {
		t.Fatalf("expected 2500 after dedup, got %d", total.Amount)
	}
}

func TestPriceLineItemsKeepsDistinctCustomItems(t *testing.T) {
	first, _ := pricing.NewCustomItem("Massage", money.Must(3000, "USD"), nil)
	second, _ := pricing.NewCustomItem("Massage", money.Must(3000, "USD"), nil)
	total, err := pricing.PriceLineItems([]pricing.LineItem{first, second})
	if err != nil {
		t.Fatalf("PriceLineItems: %v", err)
	}
	if total.Amount != 6000 {
		t.Fatalf("expected 6000 for two custom items, got %d", total.Amount)
	}
}
