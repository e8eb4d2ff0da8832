package container

import "context"

type scopeContextKey struct{}

// WithScope returns a context carrying scope, typically a per-request child
// container created with CreateScope. The container itself never reads the
// context; this is plumbing for application layers that pass scopes across
// handler boundaries.
func WithScope(ctx context.Context, scope *Container) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

// ScopeFromContext returns the container stored with WithScope, or nil.
func ScopeFromContext(ctx context.Context) *Container {
	if scope, ok := ctx.Value(scopeContextKey{}).(*Container); ok {
		return scope
	}

	return nil
}
