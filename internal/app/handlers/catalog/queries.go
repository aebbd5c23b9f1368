package catalog

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domaincatalog "staybook/internal/domain/catalog"
)

const (
	getPropertyKey    = "catalog.get_property"
	listFacilitiesKey = "catalog.list_facilities"
)

// GetPropertyQuery loads a property with its facility catalog, the read the
// browsing step starts from.
type GetPropertyQuery struct {
	PropertyID string
}

func (q GetPropertyQuery) Key() string { return getPropertyKey }

type GetPropertyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetPropertyHandler) Handle(ctx context.Context, q GetPropertyQuery) (dto.PropertyOverview, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.PropertyOverview{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.PropertyOverview{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	property, err := unit.Catalog().ByID(ctx, domaincatalog.PropertyID(q.PropertyID))
	if err != nil {
		return dto.PropertyOverview{}, err
	}
	return dto.MapProperty(property), nil
}

type ListFacilitiesQuery struct{}

func (q ListFacilitiesQuery) Key() string { return listFacilitiesKey }

type ListFacilitiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListFacilitiesHandler) Handle(ctx context.Context, q ListFacilitiesQuery) (dto.FacilityCollection, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.FacilityCollection{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.FacilityCollection{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	facilities, err := unit.Catalog().ListFacilities(ctx)
	if err != nil {
		return dto.FacilityCollection{}, err
	}
	out := dto.FacilityCollection{Items: make([]dto.Facility, 0, len(facilities))}
	for _, f := range facilities {
		out.Items = append(out.Items, dto.MapFacility(f))
	}
	return out, nil
}

var _ queries.Handler[GetPropertyQuery, dto.PropertyOverview] = (*GetPropertyHandler)(nil)
var _ queries.Handler[ListFacilitiesQuery, dto.FacilityCollection] = (*ListFacilitiesHandler)(nil)
