package daterange_test

import (
	"errors"
	"testing"
	"time"

	"staybook/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	dr, err := daterange.New(day(2026, time.March, 10), day(2026, time.March, 13))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nights, err := dr.Nights()
	if err != nil {
		t.Fatalf("Nights: %v", err)
	}
	if nights != 3 {
		t.Fatalf("expected 3 nights, got %d", nights)
	}
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := daterange.New(day(2026, time.March, 13), day(2026, time.March, 10))
	if !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewRejectsZeroNightStay(t *testing.T) {
	_, err := daterange.New(day(2026, time.March, 10), day(2026, time.March, 10))
	if !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for equal dates, got %v", err)
	}
}

func TestNewRejectsSameDayTimestamps(t *testing.T) {
	checkIn := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)
	_, err := daterange.New(checkIn, checkOut)
	if !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for a sub-day interval, got %v", err)
	}
}

func TestNightsOnUnvalidatedRange(t *testing.T) {
	dr := daterange.DateRange{CheckIn: day(2026, time.March, 13), CheckOut: day(2026, time.March, 10)}
	if _, err := dr.Nights(); !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	a, _ := daterange.New(day(2026, time.March, 10), day(2026, time.March, 15))
	b, _ := daterange.New(day(2026, time.March, 14), day(2026, time.March, 20))
	c, _ := daterange.New(day(2026, time.March, 15), day(2026, time.March, 20))

	if !a.Overlaps(b) {
		t.Fatalf("expected %v to overlap %v", a, b)
	}
	// Half-open intervals: checkout day is free for the next check-in.
	if a.Overlaps(c) {
		t.Fatalf("back-to-back stays must not overlap")
	}
}

func TestContainsDate(t *testing.T) {
	dr, _ := daterange.New(day(2026, time.March, 10), day(2026, time.March, 13))
	if !dr.ContainsDate(day(2026, time.March, 10)) {
		t.Fatalf("check-in day must be contained")
	}
	if dr.ContainsDate(day(2026, time.March, 13)) {
		t.Fatalf("checkout day must not be contained")
	}
}
