package loader

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/reviewdeck/internal/lifecycle"
	"github.com/rshade/reviewdeck/internal/logging"
	"github.com/rshade/reviewdeck/internal/view"
)

// State is the load state of a Loader.
type State int

const (
	// StateUnloaded is the initial state and the state shown while a fetch is pending.
	StateUnloaded State = iota
	// StateLoaded means a result for the current identifier was accepted.
	StateLoaded
	// StateFailed means the fetch for the current identifier failed. Only reachable
	// with WithFailureView.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchFunc retrieves the data for id.
type FetchFunc[ID comparable, T any] func(ctx context.Context, id ID) (T, error)

// Resolved carries the outcome of one fetch back into the update loop.
type Resolved[ID comparable, T any] struct {
	owner *lifecycle.Token

	ID    ID
	Seq   uint64
	Value T
	Err   error
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	failureView func(error) string
}

// WithFailureView makes fetch failures visible: the loader enters StateFailed and renders
// the error with fn instead of staying on the placeholder.
func WithFailureView(fn func(error) string) Option {
	return func(o *options) {
		o.failureView = fn
	}
}

// Loader is a Bubble Tea model that loads one value per identifier.
type Loader[ID comparable, T any] struct {
	ctx    context.Context
	token  *lifecycle.Token
	fetch  FetchFunc[ID, T]
	render func(T) string
	opts   options

	id      ID
	started bool

	state State
	value T
	err   error

	issued   uint64
	accepted uint64
	fetches  int
}

// New mounts a loader for id. No fetch is issued until Init.
func New[ID comparable, T any](
	ctx context.Context,
	id ID,
	fetch FetchFunc[ID, T],
	render func(T) string,
	opts ...Option,
) *Loader[ID, T] {
	if ctx == nil {
		ctx = context.Background()
	}
	l := &Loader[ID, T]{
		token:  lifecycle.New(ctx),
		fetch:  fetch,
		render: render,
		id:     id,
	}
	l.ctx = l.token.Context()
	for _, opt := range opts {
		opt(&l.opts)
	}
	return l
}

// Init issues the fetch for the initial identifier. Only the first call fetches.
func (l *Loader[ID, T]) Init() tea.Cmd {
	if l.started || !l.token.Mounted() {
		return nil
	}
	l.started = true
	return l.load(l.id)
}

// SetID switches the loader to id. It fetches only when id differs from the current one;
// the previous result is dropped and the placeholder shows until the new one lands.
func (l *Loader[ID, T]) SetID(id ID) tea.Cmd {
	if !l.token.Mounted() {
		return nil
	}
	if l.started && id == l.id {
		return nil
	}
	l.id = id
	l.started = true

	var zero T
	l.state = StateUnloaded
	l.value = zero
	l.err = nil
	return l.load(id)
}

func (l *Loader[ID, T]) load(id ID) tea.Cmd {
	l.issued++
	l.fetches++
	seq := l.issued
	token := l.token
	ctx := l.ctx
	fetch := l.fetch

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "loader").
		Interface("id", id).
		Uint64("seq", seq).
		Msg("fetch initiated")

	return func() tea.Msg {
		if fetch == nil {
			return nil
		}
		v, err := fetch(ctx, id)
		if !token.Mounted() {
			return nil
		}
		return Resolved[ID, T]{owner: token, ID: id, Seq: seq, Value: v, Err: err}
	}
}

// Update implements tea.Model. Only this loader's Resolved messages change its state.
func (l *Loader[ID, T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !l.Owns(msg) {
		return l, nil
	}
	l.resolve(msg.(Resolved[ID, T]))
	return l, nil
}

// Owns reports whether msg is a resolution issued by this loader.
func (l *Loader[ID, T]) Owns(msg tea.Msg) bool {
	r, ok := msg.(Resolved[ID, T])
	return ok && r.owner == l.token
}

func (l *Loader[ID, T]) resolve(r Resolved[ID, T]) {
	outcome := "resolution after teardown dropped"
	l.token.Guard(func() {
		outcome = l.apply(r)
	})

	logging.FromContext(l.ctx).Debug().
		Ctx(l.ctx).
		Str("component", "loader").
		Interface("id", r.ID).
		Interface("current_id", l.id).
		Uint64("seq", r.Seq).
		AnErr("fetch_error", r.Err).
		Msg(outcome)
}

// apply updates the load state for r and describes what it did.
func (l *Loader[ID, T]) apply(r Resolved[ID, T]) string {
	switch {
	case r.ID != l.id:
		return "stale resolution dropped"
	case r.Seq < l.accepted:
		return "superseded resolution dropped"
	case r.Err != nil && l.opts.failureView == nil:
		return "fetch failed, keeping placeholder"
	case r.Err != nil:
		var zero T
		l.accepted = r.Seq
		l.state = StateFailed
		l.value = zero
		l.err = r.Err
		return "fetch failed"
	}

	l.accepted = r.Seq
	l.state = StateLoaded
	l.value = r.Value
	l.err = nil
	return "result accepted"
}

// View implements tea.Model.
func (l *Loader[ID, T]) View() string {
	if l.state == StateFailed && l.opts.failureView != nil {
		return view.Unless(l.err, l.opts.failureView, nil)
	}
	return view.When(l.value, l.state == StateLoaded, l.render)
}

// Teardown unmounts the loader. Resolutions arriving afterwards are ignored.
func (l *Loader[ID, T]) Teardown() {
	l.token.Unmount()
}

// ID returns the current identifier.
func (l *Loader[ID, T]) ID() ID {
	return l.id
}

// State returns the current load state.
func (l *Loader[ID, T]) State() State {
	return l.state
}

// Value returns the accepted result and whether there is one.
func (l *Loader[ID, T]) Value() (T, bool) {
	return l.value, l.state == StateLoaded
}

// Err returns the failure shown in StateFailed.
func (l *Loader[ID, T]) Err() error {
	return l.err
}

// Fetches returns how many fetches this loader has issued.
func (l *Loader[ID, T]) Fetches() int {
	return l.fetches
}

// Mounted reports whether Teardown has not been called.
func (l *Loader[ID, T]) Mounted() bool {
	return l.token.Mounted()
}
