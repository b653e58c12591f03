package opts

import (
	"context"

	"github.com/walteh/spleen/pkg/config"
	"github.com/walteh/spleen/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Console *log.Logger
}

// contextKey is the type for context values
type contextKey struct{}

// NewContext adds the options to context
func NewContext(ctx context.Context, ro *RootOpts) context.Context {
	return context.WithValue(ctx, contextKey{}, ro)
}

// FromContext gets the options from context
func FromContext(ctx context.Context) *RootOpts {
	ro, ok := ctx.Value(contextKey{}).(*RootOpts)
	if !ok {
		panic("root options not found in context")
	}
	return ro
}
