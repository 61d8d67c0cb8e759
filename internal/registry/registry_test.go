package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNode struct {
	node.Info
	inputs    []node.Port
	outputs   []node.Port
	constants content.Map
}

func (s *stubNode) Inputs() []node.Port    { return s.inputs }
func (s *stubNode) Outputs() []node.Port   { return s.outputs }
func (s *stubNode) Constants() content.Map { return s.constants }
func (s *stubNode) Calculate(ctx context.Context, call *node.Call) error {
	return nil
}

func stub(id string) *stubNode {
	return &stubNode{
		Info:    node.Info{NodeName: id, NodeIdentifier: id},
		outputs: []node.Port{{Name: "out", Type: content.TypeFloat}},
	}
}

type stubLibrary struct {
	root  string
	nodes []node.CalculationNode
}

func (l *stubLibrary) Nodes(root string) []node.CalculationNode {
	l.root = root
	return l.nodes
}

func TestLoadAndLookup(t *testing.T) {
	lib := &stubLibrary{nodes: []node.CalculationNode{stub("b"), stub("a")}}
	r := New()
	r.Load(context.Background(), "/opt/nodes", lib)

	assert.Equal(t, "/opt/nodes", lib.root)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"a", "b"}, r.Identifiers())

	n, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a", n.Identifier())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register(stub("a"))
	assert.Panics(t, func() { r.Register(stub("a")) })
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registry", func(t *testing.T) {
		r := New()
		n := stub("ok")
		n.inputs = []node.Port{{Name: "in", Type: content.TypeFloat}}
		n.constants = content.Map{"gain": content.Float(1)}
		r.Register(n)
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("schema problems are reported together", func(t *testing.T) {
		r := New()
		n := stub("bad")
		n.inputs = []node.Port{{Name: "in", Type: content.TypeFloat}, {Name: "in", Type: content.TypeFloat}}
		n.outputs = append(n.outputs, node.Port{Name: "out", Type: content.TypeFloat})
		n.constants = content.Map{"in": content.Float(1)}
		r.Register(n)

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "input 'in' declared twice")
		assert.ErrorContains(t, err, "output 'out' declared twice")
		assert.ErrorContains(t, err, "constant 'in' shadows an input port")
	})

	t.Run("constant problems are reported in name order", func(t *testing.T) {
		r := New()
		n := stub("unset")
		n.constants = content.Map{"zeta": nil, "alpha": nil, "mid": nil}
		r.Register(n)

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, "registry validation failed:\n"+
			"- node 'unset': constant 'alpha' has no default\n"+
			"- node 'unset': constant 'mid' has no default\n"+
			"- node 'unset': constant 'zeta' has no default", err.Error())
	})
}
