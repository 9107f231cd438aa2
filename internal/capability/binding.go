package capability

import "context"

// Binding is an ambient value scoped by context. Each Binding has its own key,
// so values provided for one binding are invisible to another.
type Binding[T any] struct {
	def T
	key *bindingKey
}

// bindingKey is not zero-sized so distinct keys never share an address.
type bindingKey struct{ _ byte }

// NewBinding returns a binding whose Value falls back to def.
func NewBinding[T any](def T) *Binding[T] {
	return &Binding[T]{def: def, key: &bindingKey{}}
}

// Provide returns a context in which v is the binding's value.
func (b *Binding[T]) Provide(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, b.key, v)
}

// Value returns the nearest provided value, or the default.
func (b *Binding[T]) Value(ctx context.Context) T {
	if ctx != nil {
		if v, ok := ctx.Value(b.key).(T); ok {
			return v
		}
	}
	return b.def
}

// Consume calls fn with the binding's value in ctx.
func Consume[T, R any](ctx context.Context, b *Binding[T], fn func(T) R) R {
	return fn(b.Value(ctx))
}
