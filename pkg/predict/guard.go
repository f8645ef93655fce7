package predict

import (
	"context"
	"sync/atomic"

	"github.com/goliatone/go-obesense/pkg/schema"
)

// Guard allows one prediction at a time. It backs the loading indicator: while
// a call is running Loading reports true and further calls fail fast with
// ErrInFlight. The flag is cleared when the call returns, whatever the outcome.
type Guard struct {
	next     Predictor
	inFlight atomic.Bool
}

// NewGuard wraps next.
func NewGuard(next Predictor) *Guard {
	return &Guard{next: next}
}

// Loading reports whether a prediction is in flight.
func (g *Guard) Loading() bool {
	return g.inFlight.Load()
}

// Predict forwards to the wrapped predictor unless a call is already running.
func (g *Guard) Predict(ctx context.Context, req schema.Request) (Category, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return "", ErrInFlight
	}
	defer g.inFlight.Store(false)
	return g.next.Predict(ctx, req)
}
