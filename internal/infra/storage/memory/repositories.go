package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	domaincatalog "staybook/internal/domain/catalog"
	domainorder "staybook/internal/domain/order"
	domainservicereq "staybook/internal/domain/servicereq"
)

// CatalogRepository is an in-memory property catalog for demos and tests.
type CatalogRepository struct {
	mu         sync.RWMutex
	properties map[domaincatalog.PropertyID]*domaincatalog.Property
	facilities []domaincatalog.Facility
}

// NewCatalogRepository builds an empty catalog.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		properties: make(map[domaincatalog.PropertyID]*domaincatalog.Property),
	}
}

// ByID returns a property or catalog.ErrPropertyNotFound.
func (r *CatalogRepository) ByID(ctx context.Context, id domaincatalog.PropertyID) (*domaincatalog.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, domaincatalog.ErrPropertyNotFound
	}
	return property, nil
}

// Save stores/updates a property entry.
func (r *CatalogRepository) Save(ctx context.Context, property *domaincatalog.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[property.ID] = property
	return nil
}

// SetFacilities replaces the platform-wide add-on catalog.
func (r *CatalogRepository) SetFacilities(facilities []domaincatalog.Facility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facilities = append([]domaincatalog.Facility(nil), facilities...)
}

// ListFacilities returns the add-on catalog sorted by name.
func (r *CatalogRepository) ListFacilities(ctx context.Context) ([]domaincatalog.Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]domaincatalog.Facility(nil), r.facilities...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// OrderRepository stores confirmed reservation orders in memory.
type OrderRepository struct {
	mu    sync.RWMutex
	items map[domainorder.OrderID]*domainorder.Order
}

// NewOrderRepository builds an empty order repo.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{items: make(map[domainorder.OrderID]*domainorder.Order)}
}

// ByID fetches an order.
func (r *OrderRepository) ByID(ctx context.Context, id domainorder.OrderID) (*domainorder.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.items[id]
	if !ok {
		return nil, domainorder.ErrOrderNotFound
	}
	return order, nil
}

// Save stores the current order state.
func (r *OrderRepository) Save(ctx context.Context, order *domainorder.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.Version++
	r.items[order.ID] = order
	return nil
}

func (r *OrderRepository) ListBySession(ctx context.Context, sessionID string) ([]*domainorder.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, errors.New("memory: session id required")
	}
	matches := make([]*domainorder.Order, 0)
	for _, order := range r.items {
		if order.SessionID == id {
			matches = append(matches, order)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// ServiceRequestRepository is a lightweight in-memory store for ad-hoc
// service requests.
type ServiceRequestRepository struct {
	mu    sync.RWMutex
	items map[domainservicereq.RequestID]*domainservicereq.ServiceRequest
}

// NewServiceRequestRepository builds an empty store.
func NewServiceRequestRepository() *ServiceRequestRepository {
	return &ServiceRequestRepository{items: make(map[domainservicereq.RequestID]*domainservicereq.ServiceRequest)}
}

func (r *ServiceRequestRepository) ByID(ctx context.Context, id domainservicereq.RequestID) (*domainservicereq.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.items[id]
	if !ok {
		return nil, domainservicereq.ErrNotFound
	}
	return req, nil
}

func (r *ServiceRequestRepository) Save(ctx context.Context, req *domainservicereq.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[req.ID] = req
	return nil
}

func (r *ServiceRequestRepository) Delete(ctx context.Context, id domainservicereq.RequestID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainservicereq.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ServiceRequestRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domainservicereq.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainservicereq.ServiceRequest, 0)
	for _, req := range r.items {
		if req.BookingID == bookingID {
			matches = append(matches, req)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}
