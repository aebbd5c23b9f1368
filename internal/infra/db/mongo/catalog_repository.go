package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "staybook/internal/domain/catalog"
	"staybook/internal/domain/shared/money"
)

type CatalogRepository struct {
	properties *mongo.Collection
	facilities *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		properties: db.Collection("catalog_properties"),
		facilities: db.Collection("catalog_facilities"),
	}
}

func (r *CatalogRepository) ByID(ctx context.Context, id domaincatalog.PropertyID) (*domaincatalog.Property, error) {
	var doc propertyDocument
	if err := r.properties.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domaincatalog.ErrPropertyNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CatalogRepository) Save(ctx context.Context, property *domaincatalog.Property) error {
	doc := newPropertyDocument(property)
	opts := options.Update().SetUpsert(true)
	_, err := r.properties.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

// ListFacilities returns the platform-wide add-on catalog.
func (r *CatalogRepository) ListFacilities(ctx context.Context) ([]domaincatalog.Facility, error) {
	cursor, err := r.facilities.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domaincatalog.Facility
	for cursor.Next(ctx) {
		var doc facilityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toFacility())
	}
	return out, cursor.Err()
}

type facilityDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

func (d facilityDocument) toFacility() domaincatalog.Facility {
	return domaincatalog.Facility{
		ID:    domaincatalog.FacilityID(d.ID),
		Name:  d.Name,
		Price: money.Money{Amount: d.Amount, Currency: d.Currency},
	}
}

type propertyDocument struct {
	ID          string             `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	City        string             `bson:"city"`
	Country     string             `bson:"country"`
	Amount      int64              `bson:"amount"`
	Currency    string             `bson:"currency"`
	GuestsLimit int                `bson:"guests_limit"`
	Facilities  []facilityDocument `bson:"facilities"`
}

func newPropertyDocument(p *domaincatalog.Property) propertyDocument {
	doc := propertyDocument{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		Country:     p.Country,
		Amount:      p.NightlyRate.Amount,
		Currency:    p.NightlyRate.Currency,
		GuestsLimit: p.GuestsLimit,
	}
	for _, f := range p.Facilities {
		doc.Facilities = append(doc.Facilities, facilityDocument{
			ID:       string(f.ID),
			Name:     f.Name,
			Amount:   f.Price.Amount,
			Currency: f.Price.Currency,
		})
	}
	return doc
}

func (d propertyDocument) toAggregate() *domaincatalog.Property {
	p := &domaincatalog.Property{
		ID:          domaincatalog.PropertyID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		City:        d.City,
		Country:     d.Country,
		NightlyRate: money.Money{Amount: d.Amount, Currency: d.Currency},
		GuestsLimit: d.GuestsLimit,
	}
	for _, f := range d.Facilities {
		p.Facilities = append(p.Facilities, f.toFacility())
	}
	return p
}
