package reservation

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/outbox"
	"staybook/internal/app/uow"
	domaincatalog "staybook/internal/domain/catalog"
	domainpricing "staybook/internal/domain/pricing"
	domainreservation "staybook/internal/domain/reservation"
	domainrange "staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

const startDraftKey = "reservation.start_draft"

// FeeSchedule holds the platform's flat fees in minor units. The currency is
// taken from the property's nightly rate when the draft is opened.
type FeeSchedule struct {
	CleaningCents int64
	ServiceCents  int64
	TaxCents      int64
}

func (s FeeSchedule) fees(currency string) domainpricing.FixedFees {
	return domainpricing.FixedFees{
		Cleaning:  money.Money{Amount: s.CleaningCents, Currency: currency},
		Service:   money.Money{Amount: s.ServiceCents, Currency: currency},
		TaxAmount: money.Money{Amount: s.TaxCents, Currency: currency},
	}
}

type StartDraftCommand struct {
	SessionID  string
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Travelers  int
}

func (c StartDraftCommand) Key() string { return startDraftKey }

func (c StartDraftCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: session id empty", commands.ErrInvalidCommand)
	}
	if c.PropertyID == "" {
		return fmt.Errorf("%w: property id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type StartDraftHandler struct {
	UoWFactory uow.UoWFactory
	Drafts     domainreservation.DraftStore
	Fees       FeeSchedule
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *StartDraftHandler) Handle(ctx context.Context, cmd StartDraftCommand) (dto.ReservationDraft, error) {
	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return dto.ReservationDraft{}, err
	}

	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.ReservationDraft{}, uow.ErrUnitOfWorkMissing
		}
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.ReservationDraft{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	property, err := unit.Catalog().ByID(ctx, domaincatalog.PropertyID(cmd.PropertyID))
	if err != nil {
		return dto.ReservationDraft{}, err
	}

	draft, err := domainreservation.NewDraft(domainreservation.CreateParams{
		SessionID: cmd.SessionID,
		Property:  property,
		Range:     dr,
		Travelers: cmd.Travelers,
		Fees:      h.Fees.fees(property.NightlyRate.Currency),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return dto.ReservationDraft{}, err
	}

	if err := h.Drafts.Save(ctx, cmd.SessionID, draft); err != nil {
		return dto.ReservationDraft{}, err
	}

	pending := draft.PendingEvents()
	draft.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return dto.ReservationDraft{}, err
	}

	return dto.MapDraft(draft), nil
}

var _ commands.Handler[StartDraftCommand, dto.ReservationDraft] = (*StartDraftHandler)(nil)
