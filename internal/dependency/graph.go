package dependency

import (
	"errors"
	"fmt"
)

// NodeID uniquely identifies a node in the graph.
type NodeID string

// NodeKind classifies what layer of the stack a node belongs to.
// It is informational only; resolution does not depend on it.
type NodeKind string

const (
	KindTransport  NodeKind = "Transport"
	KindLink       NodeKind = "Link"
	KindProtocol   NodeKind = "Protocol"
	KindStorage    NodeKind = "Storage"
	KindDiagnostic NodeKind = "Diagnostic"
)

// Sentinel errors surfaced by Resolve. Both indicate configuration bugs
// and are detected before any module is instantiated.
var (
	ErrCyclicDependency      = errors.New("cyclic dependency")
	ErrUnsatisfiedDependency = errors.New("unsatisfied dependency")
)

// Node is a single entry in the dependency graph.
type Node struct {
	ID           NodeID
	FriendlyName string
	Kind         NodeKind
	DependsOn    []NodeID
}

// Graph holds the requested nodes and their "depends on" edges.
// Insertion order is preserved so that Resolve is deterministic for a
// fixed configuration.
type Graph struct {
	nodes map[NodeID]*Node
	order []NodeID
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
	}
}

// AddNode adds a node to the graph. Adding the same ID twice keeps the
// first registration; identities are unique per graph.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
}

// Get returns the node with the given ID, or nil if absent.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Dependents returns the IDs of nodes that directly depend on the given
// node, in registration order.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var dependents []NodeID
	for _, candidate := range g.order {
		for _, dep := range g.nodes[candidate].DependsOn {
			if dep == id {
				dependents = append(dependents, candidate)
				break
			}
		}
	}
	return dependents
}

// Resolve computes an instantiation order in which every node appears
// after all of its dependencies. The sort is stable: among nodes whose
// dependencies are equally satisfied, registration order wins, so the
// same configuration always yields the same order.
//
// Resolve is a pure function of the graph contents. It fails with
// ErrUnsatisfiedDependency if a node depends on an ID not present in
// the graph, and with ErrCyclicDependency if the edges contain a cycle
// (self-loops included).
func (g *Graph) Resolve() ([]*Node, error) {
	// Validate edges before ordering so that a missing dependency is
	// reported as such rather than as a cycle artifact.
	for _, id := range g.order {
		for _, dep := range g.nodes[id].DependsOn {
			if dep == id {
				return nil, fmt.Errorf("%w: %s depends on itself", ErrCyclicDependency, id)
			}
			if _, ok := g.nodes[dep]; !ok {
				return nil, fmt.Errorf("%w: %s requires %s which is not in the requested set", ErrUnsatisfiedDependency, id, dep)
			}
		}
	}

	indegree := make(map[NodeID]int, len(g.nodes))
	for _, id := range g.order {
		indegree[id] = len(g.nodes[id].DependsOn)
	}

	resolved := make([]*Node, 0, len(g.order))
	placed := make(map[NodeID]bool, len(g.order))

	// Repeatedly extract the first registered node with no unsatisfied
	// dependencies. Quadratic, but graphs here are tens of nodes.
	for len(resolved) < len(g.order) {
		next := NodeID("")
		for _, id := range g.order {
			if !placed[id] && indegree[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			return nil, fmt.Errorf("%w: involving %s", ErrCyclicDependency, g.firstUnplaced(placed))
		}
		placed[next] = true
		resolved = append(resolved, g.nodes[next])
		for _, dependent := range g.Dependents(next) {
			indegree[dependent]--
		}
	}

	return resolved, nil
}

func (g *Graph) firstUnplaced(placed map[NodeID]bool) NodeID {
	for _, id := range g.order {
		if !placed[id] {
			return id
		}
	}
	return ""
}
