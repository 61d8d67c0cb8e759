package print

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodes(out *bytes.Buffer) map[string]node.CalculationNode {
	m := make(map[string]node.CalculationNode)
	for _, n := range (Library{Out: out}).Nodes("") {
		m[n.Identifier()] = n
	}
	return m
}

func TestPrintScalars(t *testing.T) {
	tests := []struct {
		identifier string
		value      content.Content
		label      string
		want       string
	}{
		{"print_integer", content.Integer(-7), "", "-7\n"},
		{"print_float", content.Float(0.25), "ratio", "ratio: 0.25\n"},
		{"print_string", content.String("hi"), "", "hi\n"},
		{"print_boolean", content.Boolean(true), "ok", "ok: true\n"},
	}
	for _, tc := range tests {
		t.Run(tc.identifier, func(t *testing.T) {
			var out bytes.Buffer
			calc := nodes(&out)[tc.identifier]
			require.True(t, calc.IsPrimary())

			_, err := testutil.CalculateNode(t, calc, content.Map{"value": tc.value},
				content.Map{"label": content.String(tc.label)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestPrintSignal(t *testing.T) {
	arr, err := ndarray.FromFlat([]int{3, 2}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = testutil.CalculateNode(t, nodes(&out)["print_signal"],
		content.Map{"signal": content.DetectorSignal{Signal: lazy.FromArray(arr)}},
		content.Map{"label": content.String("sig"), "limit": content.Integer(2)})
	require.NoError(t, err)
	assert.Equal(t, "sig: 3 frames of [2]\n  1 2\n  3 4\n", out.String())
}

func TestPrintSignal_ZeroLimit(t *testing.T) {
	arr, err := ndarray.FromFlat([]int{3, 2}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = testutil.CalculateNode(t, nodes(&out)["print_signal"],
		content.Map{"signal": content.DetectorSignal{Signal: lazy.FromArray(arr)}},
		content.Map{"limit": content.Integer(0)})
	require.NoError(t, err)
	assert.Equal(t, "3 frames\n", out.String())
}
