package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// translate converts the decoded blocks into the agnostic model. Node names
// must be unique; they are only used to resolve link targets.
func (l *Loader) translate(blocks []*nodeBlock, envBodies []*attributeBody) (*config.Model, error) {
	model := &config.Model{Environment: make(map[string]cty.Value)}

	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if prev, exists := index[b.Name]; exists {
			return nil, fmt.Errorf("duplicate node name '%s': declared as node %d and node %d", b.Name, prev, i)
		}
		index[b.Name] = i
	}

	for _, b := range blocks {
		n, err := l.translateNode(b, index)
		if err != nil {
			return nil, err
		}
		model.Nodes = append(model.Nodes, n)
	}

	for _, body := range envBodies {
		exprs, err := attributes(body)
		if err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
		values, err := evaluate(exprs)
		if err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
		for key, v := range values {
			if _, exists := model.Environment[key]; exists {
				return nil, fmt.Errorf("environment: duplicate key '%s'", key)
			}
			model.Environment[key] = v
		}
	}
	return model, nil
}

func (l *Loader) translateNode(b *nodeBlock, index map[string]int) (*config.Node, error) {
	n := &config.Node{
		Name:                      b.Name,
		Identifier:                b.Identifier,
		ExternallyLinkedConstants: make(map[string]bool, len(b.ExternallyLinked)),
	}

	exprs, err := attributes(b.Constants)
	if err != nil {
		return nil, fmt.Errorf("node '%s' constants: %w", b.Name, err)
	}
	if n.Constants, err = evaluate(exprs); err != nil {
		return nil, fmt.Errorf("node '%s' constants: %w", b.Name, err)
	}

	for _, name := range b.ExternallyLinked {
		n.ExternallyLinkedConstants[name] = true
	}

	for _, link := range b.Links {
		target, ok := index[link.Target]
		if !ok {
			return nil, fmt.Errorf("node '%s' links to unknown node '%s'", b.Name, link.Target)
		}
		n.Links = append(n.Links, &config.Link{
			OutputPort:  link.Output,
			TargetNode:  target,
			TargetInput: link.Input,
		})
	}
	return n, nil
}

// evaluate computes constant expressions. References to variables or
// functions are not supported.
func evaluate(exprs map[string]hcl.Expression) (map[string]cty.Value, error) {
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make(map[string]cty.Value, len(exprs))
	for _, name := range names {
		v, diags := exprs[name].Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute '%s': %w", name, diags)
		}
		values[name] = v
	}
	return values, nil
}
