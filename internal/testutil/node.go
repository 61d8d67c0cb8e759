package testutil

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/stretchr/testify/require"
)

// CalculateNode runs calc once outside of a graph. constants override the
// node's defaults and must match their types. The returned map holds every
// output the node set; a node that leaves outputs unset fails the test.
func CalculateNode(t *testing.T, calc node.CalculationNode, inputs, constants content.Map) (content.Map, error) {
	t.Helper()
	return CalculateNodeWithEnv(t, calc, inputs, constants, make(content.Map))
}

// CalculateNodeWithEnv is CalculateNode with a caller-owned environment.
func CalculateNodeWithEnv(t *testing.T, calc node.CalculationNode, inputs, constants, env content.Map) (content.Map, error) {
	t.Helper()

	obj := node.NewObject(calc)
	for name, v := range constants {
		require.NoError(t, obj.SetConstant(name, v), "constant %q", name)
	}

	declared := make(map[string]content.Type)
	for _, p := range calc.Outputs() {
		declared[p.Name] = p.Type
	}
	outputs := content.NewOutputs(declared)

	call := &node.Call{
		Inputs:    inputs,
		Outputs:   outputs,
		Constants: obj.Constants(),
		Env:       env,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}
	if err := calc.Calculate(context.Background(), call); err != nil {
		return nil, err
	}
	require.Empty(t, outputs.Unfilled(), "node %s left outputs unset", calc.Identifier())
	return outputs.Values(), nil
}

// Materialize requests every frame of sig.
func Materialize(t *testing.T, sig content.Signal) *ndarray.Array[float64] {
	t.Helper()
	arr, err := sig.RequestRange(0, sig.Length())
	require.NoError(t, err)
	return arr
}
