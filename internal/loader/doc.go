// Package loader implements a lifecycle-guarded, id-keyed data loader as a Bubble Tea model.
//
// A Loader fetches once per distinct identifier: on Init and on every SetID that changes the
// identifier. Fetches run as tea.Cmd values off the update loop and come back as Resolved
// messages. A resolution is applied only if, when it arrives, the loader is still mounted and
// the identifier it was fetched for is still current; anything else is a stale resolution and
// is dropped. Until a result is accepted the loader renders view.Placeholder.
//
// Failures are suppressed by default and the loader keeps showing the placeholder.
// WithFailureView opts into an explicit Failed state.
package loader
