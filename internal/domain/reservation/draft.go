package reservation

import (
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain/catalog"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/shared/money"
)

var (
	ErrInvalidTravelers = errors.New("reservation: travelers count must be at least 1")
	ErrItemNotFound     = errors.New("reservation: line item not found")
	ErrNotPriced        = errors.New("reservation: draft has no computed total")
)

// Draft is the accumulating state of one in-progress booking attempt. It is
// owned by a single browsing session and lives in the draft store between
// steps; every mutation goes back through the store.
type Draft struct {
	// ID is the owning session's identifier; it doubles as the store key.
	ID            string
	PropertyID    catalog.PropertyID
	PropertyTitle string
	NightlyRate   money.Money
	Range         daterange.DateRange
	Travelers     int
	Items         []pricing.LineItem
	Fees          pricing.FixedFees
	Quote         *pricing.Quote
	Step          Step
	CreatedAt     time.Time
	UpdatedAt     time.Time
	events.EventRecorder
}

type CreateParams struct {
	SessionID string
	Property  *catalog.Property
	Range     daterange.DateRange
	Travelers int
	Fees      pricing.FixedFees
	CreatedAt time.Time
}

// NewDraft opens a draft at the browsing step with an empty selection and no
// computed total.
func NewDraft(params CreateParams) (*Draft, error) {
	if params.SessionID == "" {
		return nil, errors.New("reservation: session id required")
	}
	if params.Property == nil {
		return nil, catalog.ErrPropertyNotFound
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Travelers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTravelers, params.Travelers)
	}
	if params.Property.GuestsLimit > 0 && params.Travelers > params.Property.GuestsLimit {
		return nil, fmt.Errorf("%w: %d exceeds property limit %d",
			ErrInvalidTravelers, params.Travelers, params.Property.GuestsLimit)
	}
	now := params.CreatedAt.UTC()
	d := &Draft{
		ID:            params.SessionID,
		PropertyID:    params.Property.ID,
		PropertyTitle: params.Property.Title,
		NightlyRate:   params.Property.NightlyRate,
		Range:         params.Range,
		Travelers:     params.Travelers,
		Items:         nil,
		Fees:          params.Fees,
		Step:          StepBrowsing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	d.Record(DraftStarted{SessionID: d.ID, PropertyID: d.PropertyID, Range: d.Range, Travelers: d.Travelers, At: now})
	return d, nil
}

// AddItem merges a line item into the selection. Catalog items are
// deduplicated by facility id, so selecting the same facility twice leaves
// one entry; custom items always append. Any previously computed quote is
// invalidated.
func (d *Draft) AddItem(item pricing.LineItem, now time.Time) error {
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: %q priced at %s", pricing.ErrInvalidLineItem, item.Name, item.Price)
	}
	if item.Kind == pricing.KindCatalog {
		for _, existing := range d.Items {
			if existing.Kind == pricing.KindCatalog && existing.FacilityID == item.FacilityID {
				return nil
			}
		}
	}
	d.Items = append(d.Items, item)
	d.invalidateQuote(now)
	return nil
}

// RemoveItem drops a line item by ref: facility ref for catalog items, the
// synthetic ref for custom ones.
func (d *Draft) RemoveItem(ref string, now time.Time) error {
	for i, item := range d.Items {
		if item.Ref == ref {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.invalidateQuote(now)
			return nil
		}
	}
	return fmt.Errorf("%w: ref %q", ErrItemNotFound, ref)
}

// Price recomputes the quote from the draft's current state. Pure with
// respect to the pricing inputs: pricing an unchanged draft twice yields the
// same quote.
func (d *Draft) Price() (pricing.Quote, error) {
	return pricing.QuoteReservation(d.NightlyRate, d.Range, d.Travelers, d.Items, d.Fees)
}

// Advance stores the computed quote and moves the step forward one stage.
// Advancing a confirmed draft is a no-op so a re-displayed confirmation
// cannot mutate it.
func (d *Draft) Advance(quote pricing.Quote, now time.Time) {
	if d.Step.Terminal() {
		return
	}
	q := quote
	d.Quote = &q
	from := d.Step
	d.Step = d.Step.Next()
	d.UpdatedAt = now.UTC()
	if d.Step == StepConfirmed && from != StepConfirmed {
		d.Record(ReservationConfirmed{SessionID: d.ID, PropertyID: d.PropertyID, Range: d.Range, Total: q.Total, At: d.UpdatedAt})
	}
}

// Total returns the finalized amount or ErrNotPriced when no quote has been
// computed yet.
func (d *Draft) Total() (money.Money, error) {
	if d.Quote == nil {
		return money.Money{}, ErrNotPriced
	}
	return d.Quote.Total, nil
}

func (d *Draft) invalidateQuote(now time.Time) {
	d.Quote = nil
	d.UpdatedAt = now.UTC()
}
