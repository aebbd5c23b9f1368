package uow

import (
	"context"

	domaincatalog "staybook/internal/domain/catalog"
	domainorder "staybook/internal/domain/order"
	domainservicereq "staybook/internal/domain/servicereq"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Catalog() domaincatalog.Repository
	Orders() domainorder.Repository
	ServiceRequests() domainservicereq.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
