package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainservicereq "staybook/internal/domain/servicereq"
	"staybook/internal/domain/shared/money"
)

type ServiceRequestRepository struct {
	col *mongo.Collection
}

func NewServiceRequestRepository(db *mongo.Database) *ServiceRequestRepository {
	return &ServiceRequestRepository{col: db.Collection("service_requests")}
}

func (r *ServiceRequestRepository) ByID(ctx context.Context, id domainservicereq.RequestID) (*domainservicereq.ServiceRequest, error) {
	var doc serviceRequestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainservicereq.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ServiceRequestRepository) Save(ctx context.Context, req *domainservicereq.ServiceRequest) error {
	doc := newServiceRequestDocument(req)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *ServiceRequestRepository) Delete(ctx context.Context, id domainservicereq.RequestID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainservicereq.ErrNotFound
	}
	return nil
}

func (r *ServiceRequestRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domainservicereq.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainservicereq.ServiceRequest
	for cursor.Next(ctx) {
		var doc serviceRequestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type serviceRequestDocument struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"user_id"`
	BookingID   string `bson:"booking_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Amount      int64  `bson:"amount"`
	Currency    string `bson:"currency"`
	ScheduledAt *int64 `bson:"scheduled_at,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func newServiceRequestDocument(req *domainservicereq.ServiceRequest) serviceRequestDocument {
	doc := serviceRequestDocument{
		ID:          string(req.ID),
		UserID:      req.UserID,
		BookingID:   req.BookingID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount.Amount,
		Currency:    req.Amount.Currency,
		CreatedAt:   req.CreatedAt.UnixMilli(),
		UpdatedAt:   req.UpdatedAt.UnixMilli(),
	}
	if req.ScheduledAt != nil {
		ms := req.ScheduledAt.UnixMilli()
		doc.ScheduledAt = &ms
	}
	return doc
}

func (d serviceRequestDocument) toAggregate() *domainservicereq.ServiceRequest {
	req := &domainservicereq.ServiceRequest{
		ID:          domainservicereq.RequestID(d.ID),
		UserID:      d.UserID,
		BookingID:   d.BookingID,
		Name:        d.Name,
		Description: d.Description,
		Amount:      money.Money{Amount: d.Amount, Currency: d.Currency},
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
	if d.ScheduledAt != nil {
		t := timestampToTime(*d.ScheduledAt)
		req.ScheduledAt = &t
	}
	return req
}
