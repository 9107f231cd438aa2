// Package capability injects named fetch operations into components.
//
// A Capability is a bag of named Operations. A Binding makes one capability ambient for every
// component constructed under a context, with a default used when nothing was provided.
// With wraps a component factory so that each instance receives a Restricted view exposing
// only the operations it asked for, guarded by the instance's lifecycle token: a result that
// resolves after the instance is torn down is never delivered.
package capability
