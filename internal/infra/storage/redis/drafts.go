// Package redis persists in-progress reservation drafts in Redis so a
// browsing session survives process restarts and load-balanced hops.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"staybook/internal/domain/catalog"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

// NewClient dials Redis from a URL and verifies the connection before
// handing the client out.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// DraftStore keeps one draft per session id under a TTL, so abandoned
// sessions expire on their own instead of accumulating.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, draft *reservation.Draft) error {
	payload, err := json.Marshal(newDraftDocument(draft))
	if err != nil {
		return fmt.Errorf("redis: encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", reservation.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, sessionID string) (*reservation.Draft, error) {
	payload, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, reservation.ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: %v", reservation.ErrStoreUnavailable, err)
	}
	var doc draftDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("redis: decode draft: %w", err)
	}
	return doc.toAggregate(), nil
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", reservation.ErrStoreUnavailable, err)
	}
	return nil
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

// draftDocument pins the wire shape of a stored draft independently of the
// aggregate, so domain refactors do not silently corrupt live sessions.
type draftDocument struct {
	SessionID     string              `json:"session_id"`
	PropertyID    string              `json:"property_id"`
	PropertyTitle string              `json:"property_title"`
	NightlyRate   money.Money         `json:"nightly_rate"`
	Range         daterange.DateRange `json:"range"`
	Travelers     int                 `json:"travelers"`
	Items         []pricing.LineItem  `json:"items,omitempty"`
	Fees          pricing.FixedFees   `json:"fees"`
	Quote         *pricing.Quote      `json:"quote,omitempty"`
	Step          string              `json:"step"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func newDraftDocument(d *reservation.Draft) draftDocument {
	return draftDocument{
		SessionID:     d.ID,
		PropertyID:    string(d.PropertyID),
		PropertyTitle: d.PropertyTitle,
		NightlyRate:   d.NightlyRate,
		Range:         d.Range,
		Travelers:     d.Travelers,
		Items:         d.Items,
		Fees:          d.Fees,
		Quote:         d.Quote,
		Step:          string(d.Step),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (doc draftDocument) toAggregate() *reservation.Draft {
	return &reservation.Draft{
		ID:            doc.SessionID,
		PropertyID:    catalog.PropertyID(doc.PropertyID),
		PropertyTitle: doc.PropertyTitle,
		NightlyRate:   doc.NightlyRate,
		Range:         doc.Range,
		Travelers:     doc.Travelers,
		Items:         doc.Items,
		Fees:          doc.Fees,
		Quote:         doc.Quote,
		Step:          reservation.Step(doc.Step),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
