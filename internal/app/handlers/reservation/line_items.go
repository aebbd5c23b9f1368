package reservation

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	domaincatalog "staybook/internal/domain/catalog"
	domainpricing "staybook/internal/domain/pricing"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
)

const (
	addLineItemKey    = "reservation.add_line_item"
	removeLineItemKey = "reservation.remove_line_item"
)

// AddLineItemCommand selects an add-on on the session's draft. Catalog items
// name a facility from the drafted property; custom items carry their own
// name and price.
type AddLineItemCommand struct {
	SessionID   string
	Kind        string
	FacilityID  string
	Name        string
	AmountCents int64
	Currency    string
	ScheduledAt *time.Time
}

func (c AddLineItemCommand) Key() string { return addLineItemKey }

func (c AddLineItemCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: session id empty", commands.ErrInvalidCommand)
	}
	switch domainpricing.LineItemKind(c.Kind) {
	case domainpricing.KindCatalog, domainpricing.KindCustom:
		return nil
	default:
		return fmt.Errorf("%w: line item kind %q", commands.ErrInvalidCommand, c.Kind)
	}
}

type AddLineItemHandler struct {
	Catalog domaincatalog.Repository
	Drafts  domainreservation.DraftStore
}

func (h *AddLineItemHandler) Handle(ctx context.Context, cmd AddLineItemCommand) (dto.ReservationDraft, error) {
	draft, err := h.Drafts.Load(ctx, cmd.SessionID)
	if err != nil {
		return dto.ReservationDraft{}, err
	}

	item, err := h.buildItem(ctx, draft, cmd)
	if err != nil {
		return dto.ReservationDraft{}, err
	}

	if err := draft.AddItem(item, time.Now().UTC()); err != nil {
		return dto.ReservationDraft{}, err
	}
	if err := h.Drafts.Save(ctx, cmd.SessionID, draft); err != nil {
		return dto.ReservationDraft{}, err
	}
	return dto.MapDraft(draft), nil
}

func (h *AddLineItemHandler) buildItem(ctx context.Context, draft *domainreservation.Draft, cmd AddLineItemCommand) (domainpricing.LineItem, error) {
	if domainpricing.LineItemKind(cmd.Kind) == domainpricing.KindCatalog {
		property, err := h.Catalog.ByID(ctx, draft.PropertyID)
		if err != nil {
			return domainpricing.LineItem{}, err
		}
		facility, ok := property.Facility(domaincatalog.FacilityID(cmd.FacilityID))
		if !ok {
			return domainpricing.LineItem{}, fmt.Errorf("%w: %q on property %s",
				domaincatalog.ErrFacilityNotFound, cmd.FacilityID, draft.PropertyID)
		}
		return domainpricing.NewCatalogItem(string(facility.ID), facility.Name, facility.Price)
	}

	currency := cmd.Currency
	if currency == "" {
		currency = draft.NightlyRate.Currency
	}
	price, err := money.New(cmd.AmountCents, currency)
	if err != nil {
		return domainpricing.LineItem{}, fmt.Errorf("%w: %v", domainpricing.ErrInvalidLineItem, err)
	}
	return domainpricing.NewCustomItem(cmd.Name, price, cmd.ScheduledAt)
}

type RemoveLineItemCommand struct {
	SessionID string
	Ref       string
}

func (c RemoveLineItemCommand) Key() string { return removeLineItemKey }

func (c RemoveLineItemCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: session id empty", commands.ErrInvalidCommand)
	}
	if c.Ref == "" {
		return fmt.Errorf("%w: line item ref empty", commands.ErrInvalidCommand)
	}
	return nil
}

type RemoveLineItemHandler struct {
	Drafts domainreservation.DraftStore
}

func (h *RemoveLineItemHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) (dto.ReservationDraft, error) {
	draft, err := h.Drafts.Load(ctx, cmd.SessionID)
	if err != nil {
		return dto.ReservationDraft{}, err
	}
	if err := draft.RemoveItem(cmd.Ref, time.Now().UTC()); err != nil {
		return dto.ReservationDraft{}, err
	}
	if err := h.Drafts.Save(ctx, cmd.SessionID, draft); err != nil {
		return dto.ReservationDraft{}, err
	}
	return dto.MapDraft(draft), nil
}

var _ commands.Handler[AddLineItemCommand, dto.ReservationDraft] = (*AddLineItemHandler)(nil)
var _ commands.Handler[RemoveLineItemCommand, dto.ReservationDraft] = (*RemoveLineItemHandler)(nil)
