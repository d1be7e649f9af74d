package proto

import "context"

// ContextKeyUser is the context key for the authenticated user id.
var ContextKeyUser = &struct{ string }{"user"}

// WithUserContext returns a new context with the user id attached.
// Identity resolution happens outside the core; the id is opaque here.
func WithUserContext(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ContextKeyUser, id)
}

// UserFromContext returns the user id from the context, if any.
func UserFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ContextKeyUser).(int64)
	return id, ok
}
