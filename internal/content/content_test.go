package content

import (
	"testing"

	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "DetectorSignal", TypeDetectorSignal.String())
	assert.Equal(t, "Integer", Integer(1).Type().String())
	assert.Equal(t, "Unknown", Type(99).String())
}

func TestMapRequest(t *testing.T) {
	sig := lazy.FromArray(ndarray.New[float64](3, 2))
	m := Map{
		"count":  Integer(3),
		"gain":   Float(1.5),
		"on":     Boolean(true),
		"label":  String("adc"),
		"square": Function(func(x float64) float64 { return x * x }),
		"signal": DetectorSignal{Signal: sig},
	}

	n, err := m.RequestInteger("count")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	g, err := m.RequestFloat("gain")
	require.NoError(t, err)
	assert.Equal(t, 1.5, g)

	on, err := m.RequestBoolean("on")
	require.NoError(t, err)
	assert.True(t, on)

	label, err := m.RequestString("label")
	require.NoError(t, err)
	assert.Equal(t, "adc", label)

	fn, err := m.RequestFunction("square")
	require.NoError(t, err)
	assert.Equal(t, 9.0, fn(3))

	s, err := m.RequestDetectorSignal("signal")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Length())

	t.Run("missing key", func(t *testing.T) {
		_, err := m.RequestFloat("absent")
		assert.ErrorIs(t, err, flowerr.ErrNotConnected)
		assert.Equal(t, "absent", flowerr.Port(err))
	})

	t.Run("wrong variant", func(t *testing.T) {
		_, err := m.RequestFloat("count")
		assert.ErrorIs(t, err, flowerr.ErrType)
		assert.Equal(t, "count", flowerr.Port(err))

		_, err = m.RequestDetectorTime("signal")
		assert.ErrorIs(t, err, flowerr.ErrType)
	})
}

func TestOutputs(t *testing.T) {
	out := NewOutputs(map[string]Type{"a": TypeInteger, "b": TypeFloat})
	assert.Equal(t, []string{"a", "b"}, out.Unfilled())

	require.NoError(t, out.SetValue("a", Integer(1)))
	assert.Equal(t, []string{"b"}, out.Unfilled())

	err := out.SetValue("c", Integer(1))
	assert.ErrorIs(t, err, flowerr.ErrMissingPort)
	assert.Equal(t, "c", flowerr.Port(err))

	err = out.SetValue("b", Integer(1))
	assert.ErrorIs(t, err, flowerr.ErrType)

	require.NoError(t, out.SetValue("b", Float(2)))
	assert.Empty(t, out.Unfilled())
	assert.Equal(t, Map{"a": Integer(1), "b": Float(2)}, out.Values())
}

func TestFromCty(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want Type
		out  Content
	}{
		{"integer", cty.NumberIntVal(7), TypeInteger, Integer(7)},
		{"float", cty.NumberFloatVal(0.25), TypeFloat, Float(0.25)},
		{"integer as float", cty.NumberIntVal(2), TypeFloat, Float(2)},
		{"string number", cty.StringVal("12"), TypeInteger, Integer(12)},
		{"bool", cty.True, TypeBoolean, Boolean(true)},
		{"string", cty.StringVal("x"), TypeString, String("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromCty(tt.in, tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.out, got)
		})
	}

	_, err := FromCty(cty.NumberFloatVal(1.5), TypeInteger)
	assert.Error(t, err)
	_, err = FromCty(cty.StringVal("x"), TypeDetectorSignal)
	assert.Error(t, err)
	_, err = FromCty(cty.NullVal(cty.Number), TypeFloat)
	assert.Error(t, err)
}

func TestImpliedType(t *testing.T) {
	ty, err := ImpliedType(cty.NumberIntVal(3))
	require.NoError(t, err)
	assert.Equal(t, TypeInteger, ty)

	ty, err = ImpliedType(cty.NumberFloatVal(3.5))
	require.NoError(t, err)
	assert.Equal(t, TypeFloat, ty)

	_, err = ImpliedType(cty.ListValEmpty(cty.String))
	assert.Error(t, err)
}
