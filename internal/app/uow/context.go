package uow

import (
	"context"
	"errors"
)

var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

// unitKey is unexported so only this package can place units in a context.
type unitKey struct{}

// ContextWithUnitOfWork returns a child context carrying the unit. The
// transaction middleware uses it to share one unit across a dispatch.
func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, unitKey{}, unit)
}

// FromContext extracts the unit placed by ContextWithUnitOfWork, reporting
// whether one was present.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	unit, ok := ctx.Value(unitKey{}).(UnitOfWork)
	return unit, ok
}
