// Package module defines the contract between the stack core and the
// pluggable subsystem modules it boots.
//
// A module is an opaque unit: the core only ever sees its identity, the
// identities it depends on, and its start/stop hooks. Both hooks run on
// the stack handler, never on a caller goroutine.
package module

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
)

// Identity uniquely identifies a module type. One instance is permitted
// per stack per identity.
type Identity string

// Module is the interface every subsystem module implements.
type Module interface {
	// Identity returns the module's unique identity token.
	Identity() Identity

	// Dependencies returns the identities this module requires to be
	// started before it.
	Dependencies() []Identity

	// Start brings the module up. It is invoked on the stack handler,
	// bound to it for the module's lifetime. A non-nil error is fatal
	// for the whole stack.
	Start(h *handler.Handler) error

	// Stop tears the module down. It is invoked on the stack handler,
	// in exact reverse start order. A non-nil error is fatal.
	Stop() error
}

// Factory produces a fresh module instance. A new instance is created on
// every start cycle; instances are never reused.
type Factory func() Module

// Descriptor is the static declaration of a module: its identity, what
// it depends on, and how to construct it. Immutable once registered.
type Descriptor struct {
	Identity     Identity
	FriendlyName string
	Kind         dependency.NodeKind
	DependsOn    []Identity
	New          Factory
}

// List is an ordered, de-duplicating collection of descriptors. The
// order of first registration is preserved and is what makes stack
// startup deterministic for a fixed configuration.
type List struct {
	descriptors []Descriptor
	present     map[Identity]bool
}

// NewList creates an empty descriptor list.
func NewList() *List {
	return &List{present: make(map[Identity]bool)}
}

// Add appends a descriptor unless its identity is already present.
func (l *List) Add(d Descriptor) {
	if l.present[d.Identity] {
		return
	}
	l.present[d.Identity] = true
	l.descriptors = append(l.descriptors, d)
}

// AddAll appends each descriptor in turn.
func (l *List) AddAll(ds []Descriptor) {
	for _, d := range ds {
		l.Add(d)
	}
}

// Contains reports whether an identity has been added.
func (l *List) Contains(id Identity) bool {
	return l.present[id]
}

// Descriptors returns the registered descriptors in registration order.
func (l *List) Descriptors() []Descriptor {
	return l.descriptors
}

// Len returns the number of registered descriptors.
func (l *List) Len() int {
	return len(l.descriptors)
}

// Graph builds the dependency graph for the listed descriptors. The
// graph nodes are registered in list order so resolution stays stable.
func (l *List) Graph() *dependency.Graph {
	g := dependency.New()
	for _, d := range l.descriptors {
		deps := make([]dependency.NodeID, 0, len(d.DependsOn))
		for _, dep := range d.DependsOn {
			deps = append(deps, dependency.NodeID(dep))
		}
		g.AddNode(dependency.Node{
			ID:           dependency.NodeID(d.Identity),
			FriendlyName: d.FriendlyName,
			Kind:         d.Kind,
			DependsOn:    deps,
		})
	}
	return g
}
