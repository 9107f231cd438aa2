package capability

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/reviewdeck/internal/lifecycle"
)

// Component is a Bubble Tea model with props and an explicit teardown.
type Component[P any] interface {
	tea.Model

	// SetProps replaces the component's props and returns any command the change triggers.
	SetProps(props P) tea.Cmd
	// Teardown detaches the component. It must be safe to call more than once.
	Teardown()
}

// Factory builds a component from its props and a restricted capability.
type Factory[P any] func(ctx context.Context, props P, api *Restricted) Component[P]

// Constructor builds a component from its props alone.
type Constructor[P any] func(ctx context.Context, props P) Component[P]

// With returns an adapter that turns a Factory into a Constructor. Each constructed component
// reads the ambient capability from b, gets its own lifecycle token and its own Restricted
// view over names, and receives its props unchanged.
func With[P any](b *Binding[Capability], names ...string) func(Factory[P]) Constructor[P] {
	names = slices.Clone(names)
	return func(f Factory[P]) Constructor[P] {
		return func(ctx context.Context, props P) Component[P] {
			if ctx == nil {
				ctx = context.Background()
			}
			token := lifecycle.New(ctx)
			api := Restrict(b.Value(ctx), token, names...)
			return &Wrapped[P]{
				inner: f(token.Context(), props, api),
				api:   api,
				token: token,
			}
		}
	}
}

// Wrapped is the component produced by With.
type Wrapped[P any] struct {
	inner Component[P]
	api   *Restricted
	token *lifecycle.Token
}

// Init implements tea.Model.
func (w *Wrapped[P]) Init() tea.Cmd {
	if !w.token.Mounted() {
		return nil
	}
	return w.inner.Init()
}

// Update implements tea.Model.
func (w *Wrapped[P]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !w.token.Mounted() {
		return w, nil
	}
	m, cmd := w.inner.Update(msg)
	if c, ok := m.(Component[P]); ok {
		w.inner = c
	}
	return w, cmd
}

// View implements tea.Model.
func (w *Wrapped[P]) View() string {
	return w.inner.View()
}

// SetProps forwards new props to the wrapped component.
func (w *Wrapped[P]) SetProps(props P) tea.Cmd {
	if !w.token.Mounted() {
		return nil
	}
	return w.inner.SetProps(props)
}

// Teardown unmounts the wrapper's token, then the wrapped component.
func (w *Wrapped[P]) Teardown() {
	w.token.Unmount()
	w.inner.Teardown()
}

// Capability returns the restricted capability handed to the wrapped component.
func (w *Wrapped[P]) Capability() *Restricted {
	return w.api
}

// Mounted reports whether Teardown has not been called.
func (w *Wrapped[P]) Mounted() bool {
	return w.token.Mounted()
}
