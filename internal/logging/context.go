package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l.
//
//nolint:gocritic // zerolog.Logger is meant to be passed by value
func NewContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx returns the request-scoped logger stored in ctx, or the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return &l
		}
	}
	l := Logger()
	return &l
}
