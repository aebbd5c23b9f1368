package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "staybook/internal/domain/catalog"
	domainorder "staybook/internal/domain/order"
	domainpricing "staybook/internal/domain/pricing"
	domainrange "staybook/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("agg_order")}
}

func (r *OrderRepository) ByID(ctx context.Context, id domainorder.OrderID) (*domainorder.Order, error) {
	var doc orderDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainorder.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *OrderRepository) Save(ctx context.Context, o *domainorder.Order) error {
	doc := newOrderDocument(o)
	filter := bson.M{"_id": doc.ID, "version": o.Version}
	doc.Version = o.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	o.Version = doc.Version
	return nil
}

func (r *OrderRepository) ListBySession(ctx context.Context, sessionID string) ([]*domainorder.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainorder.Order
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type orderDocument struct {
	ID            string                   `bson:"_id"`
	SessionID     string                   `bson:"session_id"`
	PropertyID    string                   `bson:"property_id"`
	PropertyTitle string                   `bson:"property_title"`
	Range         rangeDocument            `bson:"range"`
	Travelers     int                      `bson:"travelers"`
	Items         []domainpricing.LineItem `bson:"items"`
	Quote         domainpricing.Quote      `bson:"quote"`
	PaymentRef    string                   `bson:"payment_ref"`
	CreatedAt     int64                    `bson:"created_at"`
	Version       int64                    `bson:"version"`
}

func newOrderDocument(o *domainorder.Order) orderDocument {
	return orderDocument{
		ID:            string(o.ID),
		SessionID:     o.SessionID,
		PropertyID:    string(o.PropertyID),
		PropertyTitle: o.PropertyTitle,
		Range:         rangeDocument{CheckIn: o.Range.CheckIn.UnixMilli(), CheckOut: o.Range.CheckOut.UnixMilli()},
		Travelers:     o.Travelers,
		Items:         o.Items,
		Quote:         o.Quote,
		PaymentRef:    o.PaymentRef,
		CreatedAt:     o.CreatedAt.UnixMilli(),
		Version:       o.Version,
	}
}

func (d orderDocument) toAggregate() *domainorder.Order {
	return &domainorder.Order{
		ID:            domainorder.OrderID(d.ID),
		SessionID:     d.SessionID,
		PropertyID:    domaincatalog.PropertyID(d.PropertyID),
		PropertyTitle: d.PropertyTitle,
		Range:         domainrange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)},
		Travelers:     d.Travelers,
		Items:         d.Items,
		Quote:         d.Quote,
		PaymentRef:    d.PaymentRef,
		CreatedAt:     timestampToTime(d.CreatedAt),
		Version:       d.Version,
	}
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
