package capability

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrMissingOperation is matched by every *MissingOperationError.
var ErrMissingOperation = errors.New("missing capability operation")

// MissingOperationError reports a call to an operation the capability does not expose.
type MissingOperationError struct {
	Name string
}

func (e *MissingOperationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingOperation, e.Name)
}

// Is lets errors.Is match ErrMissingOperation.
func (e *MissingOperationError) Is(target error) bool {
	return target == ErrMissingOperation
}

// Operation maps an identifier and optional arguments to a result.
type Operation func(ctx context.Context, id any, args ...any) (any, error)

// Capability exposes named operations.
type Capability interface {
	Lookup(name string) (Operation, bool)
}

// Caller invokes named operations.
type Caller interface {
	Call(ctx context.Context, name string, id any, args ...any) (any, error)
}

// Set is a Capability backed by a map.
type Set map[string]Operation

// Lookup implements Capability.
func (s Set) Lookup(name string) (Operation, bool) {
	op, ok := s[name]
	if !ok || op == nil {
		return nil, false
	}
	return op, true
}

// Call implements Caller.
func (s Set) Call(ctx context.Context, name string, id any, args ...any) (any, error) {
	return invoke(ctx, s, name, id, args...)
}

// Names returns the operation names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func invoke(ctx context.Context, c Capability, name string, id any, args ...any) (any, error) {
	if c == nil {
		return nil, &MissingOperationError{Name: name}
	}
	op, ok := c.Lookup(name)
	if !ok {
		return nil, &MissingOperationError{Name: name}
	}
	return op(ctx, id, args...)
}
