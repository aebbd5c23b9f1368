package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/uow"
	domainorder "staybook/internal/domain/order"
	domainreservation "staybook/internal/domain/reservation"
)

const advanceDraftKey = "reservation.advance"

// ErrSubmissionFailed wraps any failure of the order submission leg of the
// final advance. It is surfaced for caller-driven retry; the idempotency key
// on the command makes that retry safe.
var ErrSubmissionFailed = errors.New("reservation: order submission failed")

// AdvanceDraftCommand prices the session's draft and moves it one step
// forward. The services→payment advance just stores the quote; the
// payment→confirmed advance submits the order, which is why the command is
// idempotency-keyed.
type AdvanceDraftCommand struct {
	CommandID       string
	SessionID       string
	IdempotencyKeyV string
}

func (c AdvanceDraftCommand) Key() string { return advanceDraftKey }

func (c AdvanceDraftCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c AdvanceDraftCommand) ResultPrototype() any { return &AdvanceDraftResult{} }

func (c AdvanceDraftCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: session id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type AdvanceDraftResult struct {
	Draft   dto.ReservationDraft `json:"draft"`
	OrderID string               `json:"order_id,omitempty"`
}

type AdvanceDraftHandler struct {
	UoWFactory uow.UoWFactory
	Drafts     domainreservation.DraftStore
	Payments   policies.PaymentsPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *AdvanceDraftHandler) Handle(ctx context.Context, cmd AdvanceDraftCommand) (*AdvanceDraftResult, error) {
	draft, err := h.Drafts.Load(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	// Re-displaying a confirmed draft must not mutate it.
	if draft.Step.Terminal() {
		return &AdvanceDraftResult{Draft: dto.MapDraft(draft)}, nil
	}

	quote, err := draft.Price()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if draft.Step.Next() != domainreservation.StepConfirmed {
		draft.Advance(quote, now)
		if err := h.Drafts.Save(ctx, cmd.SessionID, draft); err != nil {
			return nil, err
		}
		return &AdvanceDraftResult{Draft: dto.MapDraft(draft)}, nil
	}

	orderID, err := h.submitOrder(ctx, cmd, draft, now)
	if err != nil {
		// The persisted draft still says "payment": a cancelled or failed
		// submission assumes no charge and the caller may retry.
		return nil, err
	}

	if err := h.Drafts.Save(ctx, cmd.SessionID, draft); err != nil {
		return nil, err
	}
	return &AdvanceDraftResult{Draft: dto.MapDraft(draft), OrderID: orderID}, nil
}

func (h *AdvanceDraftHandler) submitOrder(ctx context.Context, cmd AdvanceDraftCommand, draft *domainreservation.Draft, now time.Time) (string, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return "", uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return "", err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	quote, err := draft.Price()
	if err != nil {
		return "", err
	}

	orderID := cmd.CommandID

	holdID, err := h.Payments.PlaceHold(ctx, orderID, quote.Total)
	if err != nil {
		return "", fmt.Errorf("%w: payment hold: %v", ErrSubmissionFailed, err)
	}
	release := func() {
		// Releasing runs on a background context: the trigger may be the
		// caller's own cancellation.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Payments.Release(releaseCtx, holdID)
	}
	if err := ctx.Err(); err != nil {
		release()
		return "", err
	}

	o, err := domainorder.New(domainorder.CreateParams{
		ID:            domainorder.OrderID(orderID),
		SessionID:     draft.ID,
		PropertyID:    draft.PropertyID,
		PropertyTitle: draft.PropertyTitle,
		Range:         draft.Range,
		Travelers:     draft.Travelers,
		Items:         draft.Items,
		Quote:         quote,
		PaymentRef:    holdID,
		CreatedAt:     now,
	})
	if err != nil {
		release()
		return "", err
	}
	if err := unit.Orders().Save(ctx, o); err != nil {
		release()
		return "", fmt.Errorf("%w: order save: %v", ErrSubmissionFailed, err)
	}

	draft.Advance(quote, now)
	pending := draft.PendingEvents()
	draft.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		release()
		return "", err
	}

	if err := h.Payments.Capture(ctx, holdID); err != nil {
		release()
		return "", fmt.Errorf("%w: payment capture: %v", ErrSubmissionFailed, err)
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return "", fmt.Errorf("%w: commit: %v", ErrSubmissionFailed, err)
		}
		committed = true
	}
	return orderID, nil
}

var _ commands.Handler[AdvanceDraftCommand, *AdvanceDraftResult] = (*AdvanceDraftHandler)(nil)
var _ middleware.IdempotentCommand = (*AdvanceDraftCommand)(nil)
