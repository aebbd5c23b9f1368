package servicereq

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainservicereq "staybook/internal/domain/servicereq"
	"staybook/internal/domain/shared/money"
)

const (
	createKey        = "servicereq.create"
	updateKey        = "servicereq.update"
	deleteKey        = "servicereq.delete"
	listByBookingKey = "servicereq.list_by_booking"
)

type CreateCommand struct {
	CommandID   string
	UserID      string
	BookingID   string
	Name        string
	Description string
	AmountCents int64
	Currency    string
	ScheduledAt *time.Time
}

func (c CreateCommand) Key() string { return createKey }

func (c CreateCommand) Validate() error {
	if c.BookingID == "" {
		return fmt.Errorf("%w: booking id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type CreateHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (dto.ServiceRequest, error) {
	unit, finish, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return dto.ServiceRequest{}, err
	}

	amount, err := money.New(cmd.AmountCents, cmd.Currency)
	if err != nil {
		finish(err)
		return dto.ServiceRequest{}, fmt.Errorf("%w: %v", domainservicereq.ErrNegativeAmount, err)
	}
	req, err := domainservicereq.New(domainservicereq.CreateParams{
		ID:          domainservicereq.RequestID(cmd.CommandID),
		UserID:      cmd.UserID,
		BookingID:   cmd.BookingID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Amount:      amount,
		ScheduledAt: cmd.ScheduledAt,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		finish(err)
		return dto.ServiceRequest{}, err
	}
	if err := unit.ServiceRequests().Save(ctx, req); err != nil {
		finish(err)
		return dto.ServiceRequest{}, err
	}
	if err := finish(nil); err != nil {
		return dto.ServiceRequest{}, err
	}
	return dto.MapServiceRequest(req), nil
}

type UpdateCommand struct {
	RequestID   string
	Name        string
	Description string
	AmountCents int64
	Currency    string
	ScheduledAt *time.Time
}

func (c UpdateCommand) Key() string { return updateKey }

func (c UpdateCommand) Validate() error {
	if c.RequestID == "" {
		return fmt.Errorf("%w: request id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type UpdateHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (dto.ServiceRequest, error) {
	unit, finish, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return dto.ServiceRequest{}, err
	}

	req, err := unit.ServiceRequests().ByID(ctx, domainservicereq.RequestID(cmd.RequestID))
	if err != nil {
		finish(err)
		return dto.ServiceRequest{}, err
	}
	amount, err := money.New(cmd.AmountCents, cmd.Currency)
	if err != nil {
		finish(err)
		return dto.ServiceRequest{}, fmt.Errorf("%w: %v", domainservicereq.ErrNegativeAmount, err)
	}
	if err := req.Update(cmd.Name, cmd.Description, amount, cmd.ScheduledAt, time.Now().UTC()); err != nil {
		finish(err)
		return dto.ServiceRequest{}, err
	}
	if err := unit.ServiceRequests().Save(ctx, req); err != nil {
		finish(err)
		return dto.ServiceRequest{}, err
	}
	if err := finish(nil); err != nil {
		return dto.ServiceRequest{}, err
	}
	return dto.MapServiceRequest(req), nil
}

type DeleteCommand struct {
	RequestID string
}

func (c DeleteCommand) Key() string { return deleteKey }

func (c DeleteCommand) Validate() error {
	if c.RequestID == "" {
		return fmt.Errorf("%w: request id empty", commands.ErrInvalidCommand)
	}
	return nil
}

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

type DeleteHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) (DeleteResult, error) {
	unit, finish, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return DeleteResult{}, err
	}
	if err := unit.ServiceRequests().Delete(ctx, domainservicereq.RequestID(cmd.RequestID)); err != nil {
		finish(err)
		return DeleteResult{}, err
	}
	if err := finish(nil); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Deleted: true}, nil
}

type ListByBookingQuery struct {
	BookingID string
}

func (q ListByBookingQuery) Key() string { return listByBookingKey }

type ListByBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListByBookingHandler) Handle(ctx context.Context, q ListByBookingQuery) (dto.ServiceRequestCollection, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.ServiceRequestCollection{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.ServiceRequestCollection{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	items, err := unit.ServiceRequests().ListByBooking(ctx, q.BookingID)
	if err != nil {
		return dto.ServiceRequestCollection{}, err
	}
	out := dto.ServiceRequestCollection{Items: make([]dto.ServiceRequest, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, dto.MapServiceRequest(item))
	}
	return out, nil
}

// beginWrite resolves the ambient unit of work or starts a managed one.
// The returned finish commits on nil and rolls back otherwise; for an
// ambient unit both are no-ops, the surrounding middleware owns the
// transaction.
func beginWrite(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, func(error) error, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, func(error) error { return nil }, nil
	}
	if factory == nil {
		return nil, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	finish := func(cause error) error {
		if cause != nil {
			_ = unit.Rollback(ctx)
			return cause
		}
		return unit.Commit(ctx)
	}
	return unit, finish, nil
}

var _ commands.Handler[CreateCommand, dto.ServiceRequest] = (*CreateHandler)(nil)
var _ commands.Handler[UpdateCommand, dto.ServiceRequest] = (*UpdateHandler)(nil)
var _ commands.Handler[DeleteCommand, DeleteResult] = (*DeleteHandler)(nil)
var _ queries.Handler[ListByBookingQuery, dto.ServiceRequestCollection] = (*ListByBookingHandler)(nil)
