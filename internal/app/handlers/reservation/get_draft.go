package reservation

import (
	"context"
	"fmt"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainreservation "staybook/internal/domain/reservation"
)

const (
	getDraftKey     = "reservation.get_draft"
	abandonDraftKey = "reservation.abandon"
)

// GetDraftQuery reloads the draft for re-display. Back navigation goes
// through here: it is a pure read, so the stored step never moves backward.
type GetDraftQuery struct {
	SessionID string
}

func (q GetDraftQuery) Key() string { return getDraftKey }

type GetDraftHandler struct {
	Drafts domainreservation.DraftStore
}

func (h *GetDraftHandler) Handle(ctx context.Context, q GetDraftQuery) (dto.ReservationDraft, error) {
	draft, err := h.Drafts.Load(ctx, q.SessionID)
	if err != nil {
		return dto.ReservationDraft{}, err
	}
	return dto.MapDraft(draft), nil
}

// AbandonDraftCommand clears the session's draft, either because the
// confirmation was acknowledged or because the traveler walked away.
type AbandonDraftCommand struct {
	SessionID string
}

func (c AbandonDraftCommand) Key() string { return abandonDraftKey }

func (c AbandonDraftCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: session id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type AbandonDraftHandler struct {
	Drafts domainreservation.DraftStore
}

type AbandonDraftResult struct {
	Cleared bool `json:"cleared"`
}

func (h *AbandonDraftHandler) Handle(ctx context.Context, cmd AbandonDraftCommand) (AbandonDraftResult, error) {
	if err := h.Drafts.Delete(ctx, cmd.SessionID); err != nil {
		return AbandonDraftResult{}, err
	}
	return AbandonDraftResult{Cleared: true}, nil
}

var _ queries.Handler[GetDraftQuery, dto.ReservationDraft] = (*GetDraftHandler)(nil)
var _ commands.Handler[AbandonDraftCommand, AbandonDraftResult] = (*AbandonDraftHandler)(nil)
