package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Build compiles a pipeline model into a graph using node implementations
// from r.
func Build(ctx context.Context, model *config.Model, r *registry.Registry, opts ...Option) (*Storage, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	env, err := environment(model.Environment)
	if err != nil {
		return nil, err
	}
	s := New(append([]Option{WithEnvironment(env)}, opts...)...)

	// First pass: instantiate nodes and apply their constants.
	for i, n := range model.Nodes {
		calc, ok := r.Lookup(n.Identifier)
		if !ok {
			return nil, fmt.Errorf("node %d (%s): unknown node identifier '%s'", i, n.Name, n.Identifier)
		}
		obj := node.NewObject(calc)
		if err := configure(obj, n); err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, n.Name, err)
		}
		s.AddNode(obj)
	}
	logger.Debug("Build: Node creation complete.", "node_count", s.Len())

	// Second pass: link outputs to inputs. Every node exists by now, so
	// links may point forwards.
	for i, n := range model.Nodes {
		for _, l := range n.Links {
			from := node.PortKey{Node: i, Port: l.OutputPort}
			to := node.PortKey{Node: l.TargetNode, Port: l.TargetInput}
			if err := s.Connect(from, to); err != nil {
				return nil, fmt.Errorf("link %s -> %s: %w", from, to, err)
			}
		}
	}
	logger.Debug("Build: Node linking complete.")

	logger.Debug("Build: Graph construction successful.")
	return s, nil
}

func configure(obj *node.Object, n *config.Node) error {
	names := make([]string, 0, len(n.Constants))
	for name := range n.Constants {
		names = append(names, name)
	}
	sort.Strings(names)

	defaults := obj.Constants()
	for _, name := range names {
		def, ok := defaults[name]
		if !ok {
			return flowerr.ConstantMissing(name)
		}
		c, err := content.FromCty(n.Constants[name], def.Type())
		if err != nil {
			return fmt.Errorf("constant '%s': %w", name, err)
		}
		if err := obj.SetConstant(name, c); err != nil {
			return err
		}
	}

	for name, linked := range n.ExternallyLinkedConstants {
		if !linked {
			continue
		}
		if err := obj.LinkConstantExternally(name); err != nil {
			return err
		}
	}
	return nil
}

func environment(values map[string]cty.Value) (content.Map, error) {
	env := make(content.Map, len(values))
	for key, v := range values {
		t, err := content.ImpliedType(v)
		if err != nil {
			return nil, fmt.Errorf("environment value '%s': %w", key, err)
		}
		c, err := content.FromCty(v, t)
		if err != nil {
			return nil, fmt.Errorf("environment value '%s': %w", key, err)
		}
		env[key] = c
	}
	return env, nil
}
