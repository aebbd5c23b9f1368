package memory

import (
	"context"
	"errors"

	"staybook/internal/app/uow"
	domaincatalog "staybook/internal/domain/catalog"
	domainorder "staybook/internal/domain/order"
	domainservicereq "staybook/internal/domain/servicereq"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	CatalogRepo    domaincatalog.Repository
	OrderRepo      domainorder.Repository
	ServiceReqRepo domainservicereq.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.CatalogRepo == nil || f.OrderRepo == nil || f.ServiceReqRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		catalog:    f.CatalogRepo,
		orders:     f.OrderRepo,
		servicereq: f.ServiceReqRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	catalog    domaincatalog.Repository
	orders     domainorder.Repository
	servicereq domainservicereq.Repository
}

func (u *Unit) Catalog() domaincatalog.Repository {
	return u.catalog
}

func (u *Unit) Orders() domainorder.Repository {
	return u.orders
}

func (u *Unit) ServiceRequests() domainservicereq.Repository {
	return u.servicereq
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
