package hooks

import (
	"context"
	"sync/atomic"

	"github.com/uptrace/bun"
)

// Verify that CountHook implements bun.QueryHook interface at compile time.
var _ bun.QueryHook = (*CountHook)(nil)

type queryCounterKey struct{}

// QueryCounter accumulates the number of database queries executed
// within a single request scope. Safe for concurrent use.
type QueryCounter struct {
	n atomic.Int64
}

// Count returns the number of queries recorded so far.
func (c *QueryCounter) Count() int64 {
	return c.n.Load()
}

func (c *QueryCounter) inc() {
	c.n.Add(1)
}

// WithQueryCounter returns a copy of ctx carrying a fresh QueryCounter.
// Every query executed with the returned context is counted, provided the
// database has a CountHook registered.
func WithQueryCounter(ctx context.Context) (context.Context, *QueryCounter) {
	counter := &QueryCounter{}
	return context.WithValue(ctx, queryCounterKey{}, counter), counter
}

// CounterFromContext returns the QueryCounter stored in ctx, or nil if the
// context does not carry one.
func CounterFromContext(ctx context.Context) *QueryCounter {
	counter, _ := ctx.Value(queryCounterKey{}).(*QueryCounter)
	return counter
}

// CountHook is a Bun query hook that increments the QueryCounter carried by
// the query context, if any. Contexts without a counter pass through untouched.
type CountHook struct{}

// NewCountHook creates a new query counting hook.
func NewCountHook() *CountHook {
	return &CountHook{}
}

// BeforeQuery implements bun.QueryHook interface.
func (h *CountHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook interface.
func (h *CountHook) AfterQuery(ctx context.Context, _ *bun.QueryEvent) {
	if counter := CounterFromContext(ctx); counter != nil {
		counter.inc()
	}
}
