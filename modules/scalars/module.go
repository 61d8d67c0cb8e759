// Package scalars provides constant sources and arithmetic on scalar values.
package scalars

import (
	"context"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/registry"
)

const category = "scalars"

// Library implements registry.Library for this package.
type Library struct{}

var _ registry.Library = Library{}

// Nodes returns every node of the library.
func (Library) Nodes(string) []node.CalculationNode {
	return []node.CalculationNode{
		constant("integer_constant", "Integer constant", content.Integer(0)),
		constant("float_constant", "Float constant", content.Float(0)),
		constant("string_constant", "String constant", content.String("")),
		constant("boolean_constant", "Boolean constant", content.Boolean(false)),
		addFloat(),
	}
}

// constant emits its "value" constant on the "value" output. Linking the
// constant externally turns the node into a pass-through.
func constant(identifier, name string, zero content.Content) *node.Func {
	return &node.Func{
		Info:     node.Info{NodeName: name, NodeIdentifier: identifier, NodeCategory: category},
		Out:      []node.Port{{Name: "value", Type: zero.Type()}},
		Defaults: content.Map{"value": zero},
		Fn: func(_ context.Context, call *node.Call) error {
			v, _ := call.Constants.Get("value")
			return call.Outputs.SetValue("value", v)
		},
	}
}

func addFloat() *node.Func {
	return &node.Func{
		Info: node.Info{NodeName: "Add floats", NodeIdentifier: "add_float", NodeCategory: category},
		In: []node.Port{
			{Name: "a", Type: content.TypeFloat},
			{Name: "b", Type: content.TypeFloat},
		},
		Out: []node.Port{{Name: "sum", Type: content.TypeFloat}},
		Fn: func(_ context.Context, call *node.Call) error {
			a, err := call.Inputs.RequestFloat("a")
			if err != nil {
				return err
			}
			b, err := call.Inputs.RequestFloat("b")
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("sum", content.Float(a+b))
		},
	}
}
