package reservation

import (
	"time"

	"staybook/internal/domain/catalog"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

type DraftStarted struct {
	SessionID  string
	PropertyID catalog.PropertyID
	Range      daterange.DateRange
	Travelers  int
	At         time.Time
}

func (e DraftStarted) EventName() string     { return "reservation.draft_started" }
func (e DraftStarted) AggregateID() string   { return e.SessionID }
func (e DraftStarted) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	SessionID  string
	PropertyID catalog.PropertyID
	Range      daterange.DateRange
	Total      money.Money
	At         time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return e.SessionID }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }
