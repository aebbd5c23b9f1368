package reservation

import (
	"context"
	"errors"
)

var (
	ErrDraftNotFound    = errors.New("reservation: draft not found")
	ErrStoreUnavailable = errors.New("reservation: draft store unavailable")
)

// DraftStore carries the draft across navigation boundaries within one
// browsing session. The key is the session id, passed explicitly on every
// call; there is no ambient current-session state, so concurrent sessions
// cannot collide. Implementations map backend failures to
// ErrStoreUnavailable and a missing key to ErrDraftNotFound.
type DraftStore interface {
	Save(ctx context.Context, sessionID string, draft *Draft) error
	Load(ctx context.Context, sessionID string) (*Draft, error)
	Delete(ctx context.Context, sessionID string) error
}
