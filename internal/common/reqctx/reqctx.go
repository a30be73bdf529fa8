// Package reqctx carries the authenticated caller's attributes through a
// request's context.Context.
package reqctx

import (
	"context"

	"todo_expert/internal/domain/model"
)

type contextKey string

const attributesKey contextKey = "requestAttributes"

// Attributes are set once per request by the authentication middleware.
type Attributes struct {
	UserID int64
	Email  string
	Role   model.UserRole
	URI    string
}

func (a Attributes) AuthUser() model.AuthUser {
	return model.AuthUser{ID: a.UserID, Email: a.Email, Role: a.Role}
}

func WithAttributes(ctx context.Context, a Attributes) context.Context {
	return context.WithValue(ctx, attributesKey, a)
}

func FromContext(ctx context.Context) (Attributes, bool) {
	if ctx == nil {
		return Attributes{}, false
	}
	a, ok := ctx.Value(attributesKey).(Attributes)
	return a, ok
}

// AuthUserFromContext is a shorthand for handlers that only need the caller.
func AuthUserFromContext(ctx context.Context) (model.AuthUser, bool) {
	a, ok := FromContext(ctx)
	if !ok {
		return model.AuthUser{}, false
	}
	return a.AuthUser(), true
}
