// Package correlation carries the per-request correlation id through contexts.
package correlation

import (
	"context"

	"github.com/rs/xid"
)

const Header = "X-Correlation-ID"

type ctxKey struct{}

// NewID returns a fresh, sortable correlation id.
func NewID() string {
	return xid.New().String()
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id, or "" if none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
