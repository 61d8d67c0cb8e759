package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/node"
)

// Library is a source of node implementations. libraryRoot is the directory
// the host was told to load libraries from; libraries may use it to locate
// auxiliary files or ignore it.
type Library interface {
	Nodes(libraryRoot string) []node.CalculationNode
}

// Registry maps node identifiers to implementations.
type Registry struct {
	nodes map[string]node.CalculationNode
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{nodes: make(map[string]node.CalculationNode)}
}

// Register adds n under its identifier. Registering the same identifier
// twice is a programming error and panics.
func (r *Registry) Register(n node.CalculationNode) {
	id := n.Identifier()
	if _, exists := r.nodes[id]; exists {
		panic(fmt.Sprintf("node with identifier '%s' already registered", id))
	}
	r.nodes[id] = n
}

// Load registers every node of every library.
func (r *Registry) Load(ctx context.Context, libraryRoot string, libs ...Library) {
	logger := ctxlog.FromContext(ctx)
	for _, lib := range libs {
		nodes := lib.Nodes(libraryRoot)
		for _, n := range nodes {
			logger.Debug("Registering node.", "identifier", n.Identifier(), "category", n.Category())
			r.Register(n)
		}
		logger.Debug("Library loaded.", "library", fmt.Sprintf("%T", lib), "nodes", len(nodes))
	}
}

// Lookup returns the node registered under identifier.
func (r *Registry) Lookup(identifier string) (node.CalculationNode, bool) {
	n, ok := r.nodes[identifier]
	return n, ok
}

// Identifiers returns all registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}
