package daterange

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("daterange: checkout must be after checkin")

// DateRange represents a half-open stay interval [checkIn, checkOut).
type DateRange struct {
	CheckIn  time.Time `json:"check_in" bson:"check_in"`
	CheckOut time.Time `json:"check_out" bson:"check_out"`
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return fmt.Errorf("%w: check-in %s, check-out %s",
			ErrInvalidRange, dr.CheckIn.Format("2006-01-02"), dr.CheckOut.Format("2006-01-02"))
	}
	// Timestamps less than a day apart (a same-day "stay") would price to
	// zero nights, so they are rejected here rather than clamped.
	if dr.CheckOut.Sub(dr.CheckIn) < 24*time.Hour {
		return fmt.Errorf("%w: stay must cover at least one night", ErrInvalidRange)
	}
	return nil
}

// Nights returns the whole-day count between checkout and checkin.
// A valid range always yields at least one night; callers that skipped
// Validate get the error here instead of a zero or negative count.
func (dr DateRange) Nights() (int, error) {
	if err := dr.Validate(); err != nil {
		return 0, err
	}
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24), nil
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}
