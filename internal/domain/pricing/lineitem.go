package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/shared/money"
)

var ErrInvalidLineItem = errors.New("pricing: invalid line item")

type LineItemKind string

const (
	KindCatalog LineItemKind = "catalog"
	KindCustom  LineItemKind = "custom"
)

// LineItem is a selectable add-on. Catalog items carry a facility id and the
// catalog price; custom items carry a user-entered name, price and an
// optional scheduled time. The two variants are distinguished by Kind so
// pricing and deduplication can match exhaustively.
type LineItem struct {
	Kind        LineItemKind `json:"kind" bson:"kind"`
	Ref         string       `json:"ref" bson:"ref"`
	FacilityID  string       `json:"facility_id,omitempty" bson:"facility_id,omitempty"`
	Name        string       `json:"name" bson:"name"`
	Price       money.Money  `json:"price" bson:"price"`
	ScheduledAt *time.Time   `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
}

// NewCatalogItem builds a line item from a catalog facility. Its ref is
// derived from the facility id, which is what makes repeated selection of
// the same facility collapse into one entry.
func NewCatalogItem(facilityID, name string, price money.Money) (LineItem, error) {
	if facilityID == "" {
		return LineItem{}, fmt.Errorf("%w: facility id required", ErrInvalidLineItem)
	}
	if price.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: facility %s has negative price %s", ErrInvalidLineItem, facilityID, price)
	}
	return LineItem{
		Kind:       KindCatalog,
		Ref:        "facility:" + facilityID,
		FacilityID: facilityID,
		Name:       name,
		Price:      price,
	}, nil
}

// NewCustomItem builds an ad-hoc line item. Custom items have no natural
// identity, so each gets a fresh synthetic ref and repeated additions stay
// distinct entries.
func NewCustomItem(name string, price money.Money, scheduledAt *time.Time) (LineItem, error) {
	if name == "" {
		return LineItem{}, fmt.Errorf("%w: custom item name required", ErrInvalidLineItem)
	}
	if price.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: custom item %q has negative price %s", ErrInvalidLineItem, name, price)
	}
	return LineItem{
		Kind:        KindCustom,
		Ref:         "custom:" + uuid.NewString(),
		Name:        name,
		Price:       price,
		ScheduledAt: scheduledAt,
	}, nil
}

// PriceLineItems sums the selection. Catalog items are counted once per
// facility regardless of how many times they appear; custom items are summed
// as listed. Currency is taken from the first item.
func PriceLineItems(items []LineItem) (money.Money, error) {
	var total money.Money
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Price.IsNegative() {
			return money.Money{}, fmt.Errorf("%w: %q has negative price %s", ErrInvalidLineItem, item.Name, item.Price)
		}
		if item.Kind == KindCatalog {
			if _, dup := seen[item.FacilityID]; dup {
				continue
			}
			seen[item.FacilityID] = struct{}{}
		}
		if total.Currency == "" {
			total = money.Money{Amount: 0, Currency: item.Price.Currency}
		}
		sum, err := total.Add(item.Price)
		if err != nil {
			return money.Money{}, fmt.Errorf("%w: %q: %v", ErrInvalidLineItem, item.Name, err)
		}
		total = sum
	}
	return total, nil
}
