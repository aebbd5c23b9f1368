// Package memory provides a fake payments port for local development and
// tests. Every hold succeeds and holds are tracked so tests can assert on
// capture and release order.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"staybook/internal/app/policies"
	"staybook/internal/domain/shared/money"
)

var ErrUnknownHold = errors.New("payments: unknown hold id")

type holdState string

const (
	holdPlaced   holdState = "placed"
	holdCaptured holdState = "captured"
	holdReleased holdState = "released"
)

type Payments struct {
	mu    sync.Mutex
	holds map[string]holdState

	// FailHold, when set, makes PlaceHold return this error.
	FailHold error
	// FailCapture, when set, makes Capture return this error.
	FailCapture error
}

func New() *Payments {
	return &Payments{holds: make(map[string]holdState)}
}

func (p *Payments) PlaceHold(ctx context.Context, orderID string, amount money.Money) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailHold != nil {
		return "", p.FailHold
	}
	id := "hold:" + uuid.NewString()
	p.holds[id] = holdPlaced
	return id, nil
}

func (p *Payments) Capture(ctx context.Context, holdID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailCapture != nil {
		return p.FailCapture
	}
	if _, ok := p.holds[holdID]; !ok {
		return ErrUnknownHold
	}
	p.holds[holdID] = holdCaptured
	return nil
}

func (p *Payments) Release(ctx context.Context, holdID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.holds[holdID]; !ok {
		return ErrUnknownHold
	}
	p.holds[holdID] = holdReleased
	return nil
}

// Released reports whether the hold was released, for test assertions.
func (p *Payments) Released(holdID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holds[holdID] == holdReleased
}

// Captured reports whether the hold was captured, for test assertions.
func (p *Payments) Captured(holdID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holds[holdID] == holdCaptured
}

var _ policies.PaymentsPort = (*Payments)(nil)
