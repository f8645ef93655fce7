package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-obesense/pkg/schema"
)

// DefaultCallTimeout bounds a shared call when no other timeout applies.
const DefaultCallTimeout = 30 * time.Second

// Coalescer collapses identical concurrent requests into one upstream call.
// Callers waiting on a shared call still honour their own context. The shared
// call outlives any single caller but never runs longer than the call timeout.
type Coalescer struct {
	next    Predictor
	group   singleflight.Group
	timeout time.Duration
}

// CoalescerOption configures a Coalescer.
type CoalescerOption func(*Coalescer)

// WithCallTimeout bounds each shared upstream call. Non-positive values keep
// DefaultCallTimeout.
func WithCallTimeout(timeout time.Duration) CoalescerOption {
	return func(c *Coalescer) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewCoalescer wraps next.
func NewCoalescer(next Predictor, options ...CoalescerOption) *Coalescer {
	c := &Coalescer{next: next, timeout: DefaultCallTimeout}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Predict joins an in-flight call for an identical request or starts one.
func (c *Coalescer) Predict(ctx context.Context, req schema.Request) (Category, error) {
	key, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("predict: coalesce key: %w", err)
	}

	ch := c.group.DoChan(string(key), func() (any, error) {
		// detach so one impatient caller does not fail the others
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.next.Predict(shared, req)
	})
	select {
	case <-ctx.Done():
		return "", &NetworkError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(Category), nil
	}
}
