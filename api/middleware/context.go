package middleware

import (
	"context"

	"github.com/SttarkMax/sistema/internal/backend"
	"github.com/SttarkMax/sistema/internal/gate"
	"github.com/SttarkMax/sistema/pkg/auth/session"
	"github.com/SttarkMax/sistema/pkg/models"
)

type contextKey string

const ctxConsole contextKey = "console_session"

// Console is the per-request view of a browser session: its gate, the backend
// cookies calls are made with, and the stored record when one exists.
type Console struct {
	Gate        *gate.Gate
	Credentials *backend.Credentials
	Record      *session.Record
}

// User returns the logged-in user, or nil for anonymous visitors.
func (c *Console) User() *models.LoggedInUser {
	if c == nil || c.Gate == nil {
		return nil
	}
	snap := c.Gate.Snapshot()
	if !snap.Authenticated() {
		return nil
	}
	return snap.User
}

// WithConsole injects the console session into the context.
func WithConsole(ctx context.Context, c *Console) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxConsole, c)
}

func ConsoleFromContext(ctx context.Context) *Console {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxConsole).(*Console); ok {
		return v
	}
	return nil
}

// UserFromContext returns the logged-in user bound to the request, or nil.
func UserFromContext(ctx context.Context) *models.LoggedInUser {
	return ConsoleFromContext(ctx).User()
}
