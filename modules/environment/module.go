// Package environment provides nodes that read and write the environment
// shared by all nodes of one execution, and that import variables from the
// process environment.
package environment

import (
	"context"
	"os"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/registry"
)

const category = "environment"

// Keys written by set_geometry.
const (
	GeometryRows = "geometry_rows"
	GeometryCols = "geometry_cols"
)

// Library implements registry.Library for this package.
type Library struct {
	// LookupEnv reads process variables. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

var _ registry.Library = Library{}

// Nodes returns every node of the library.
func (l Library) Nodes(string) []node.CalculationNode {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return []node.CalculationNode{
		setGeometry(),
		readGeometry(),
		envVar(lookup),
	}
}

// setGeometry publishes the detector geometry. It is primary and has no
// inputs, so it runs before every other primary node and its dependencies,
// wherever it is declared.
func setGeometry() *node.Func {
	return &node.Func{
		Info: node.Info{NodeName: "Set geometry", NodeIdentifier: "set_geometry", NodeCategory: category, Primary: true},
		Defaults: content.Map{
			"rows": content.Integer(1),
			"cols": content.Integer(1),
		},
		Fn: func(_ context.Context, call *node.Call) error {
			rows, err := call.Constants.RequestInteger("rows")
			if err != nil {
				return err
			}
			cols, err := call.Constants.RequestInteger("cols")
			if err != nil {
				return err
			}
			if rows < 1 || cols < 1 {
				return flowerr.Otherf("invalid geometry %dx%d", rows, cols)
			}
			call.Env.Set(GeometryRows, content.Integer(rows))
			call.Env.Set(GeometryCols, content.Integer(cols))
			return nil
		},
	}
}

func readGeometry() *node.Func {
	return &node.Func{
		Info: node.Info{NodeName: "Read geometry", NodeIdentifier: "read_geometry", NodeCategory: category},
		Out: []node.Port{
			{Name: "rows", Type: content.TypeInteger},
			{Name: "cols", Type: content.TypeInteger},
			{Name: "channels", Type: content.TypeInteger},
		},
		Fn: func(_ context.Context, call *node.Call) error {
			rows, err := call.Env.RequestInteger(GeometryRows)
			if err != nil {
				return err
			}
			cols, err := call.Env.RequestInteger(GeometryCols)
			if err != nil {
				return err
			}
			for port, v := range map[string]int64{"rows": rows, "cols": cols, "channels": rows * cols} {
				if err := call.Outputs.SetValue(port, content.Integer(v)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// envVar reads the process variable called "name", falling back to
// "default" when it is unset.
func envVar(lookup func(string) (string, bool)) *node.Func {
	return &node.Func{
		Info: node.Info{NodeName: "Environment variable", NodeIdentifier: "env_var", NodeCategory: category},
		Out:  []node.Port{{Name: "value", Type: content.TypeString}},
		Defaults: content.Map{
			"name":    content.String(""),
			"default": content.String(""),
		},
		Fn: func(_ context.Context, call *node.Call) error {
			name, err := call.Constants.RequestString("name")
			if err != nil {
				return err
			}
			if name == "" {
				return flowerr.Otherf("variable name must not be empty")
			}
			value, ok := lookup(name)
			if !ok {
				if value, err = call.Constants.RequestString("default"); err != nil {
					return err
				}
			}
			return call.Outputs.SetValue("value", content.String(value))
		},
	}
}
