package middleware

import (
	"context"

	"staybook/internal/app/commands"
	"staybook/internal/app/queries"
)

// CommandMiddleware wraps a command bus with cross-cutting behavior.
type CommandMiddleware func(next commands.Bus) commands.Bus

// QueryMiddleware wraps a query bus the same way.
type QueryMiddleware func(next queries.Bus) queries.Bus

// ChainCommands applies the middleware to the base bus. The first middleware
// in the list is the outermost: it sees the command before any other.
func ChainCommands(base commands.Bus, chain ...CommandMiddleware) commands.Bus {
	bus := base
	for i := len(chain) - 1; i >= 0; i-- {
		bus = chain[i](bus)
	}
	return bus
}

// ChainQueries applies the middleware to the base query bus, outermost first.
func ChainQueries(base queries.Bus, chain ...QueryMiddleware) queries.Bus {
	bus := base
	for i := len(chain) - 1; i >= 0; i-- {
		bus = chain[i](bus)
	}
	return bus
}

// dispatchFunc lets a closure act as a command bus, so middleware need no
// wrapper structs.
type dispatchFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f dispatchFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

// nextDispatcher builds a dispatchFunc around a bus.
func nextDispatcher(next commands.Bus) dispatchFunc {
	return func(ctx context.Context, cmd commands.Command) (any, error) {
		return next.Dispatch(ctx, cmd)
	}
}

type askFunc func(ctx context.Context, query queries.Query) (any, error)

func (f askFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}

func nextAsker(next queries.Bus) askFunc {
	return func(ctx context.Context, q queries.Query) (any, error) {
		return next.Ask(ctx, q)
	}
}
