// Package lifecycle provides the mount token shared by loaders and capability wrappers.
//
// A Token is created when a component is attached and unmounted exactly once when it is torn
// down. Deferred completions check the token before applying their effect, which turns an
// in-flight result that outlives its owner into a no-op:
//   - Unmount is one-way and idempotent
//   - Guard runs a callback only while the token is mounted
//   - Context is cancelled on Unmount so cooperative work can stop early
package lifecycle
