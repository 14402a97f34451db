// Package identity carries the verified caller identity through a
// request or connection. It is a precondition gate only: resolving
// and verifying tokens is the auth service's job, and enforcing
// authentication is each operation's job.
package identity

import "context"

// Identity is the verified caller of an operation.
type Identity struct {
	UserID   uint
	Username string
}

type ctxKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller identity, if one was attached.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
