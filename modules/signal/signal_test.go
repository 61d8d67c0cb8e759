package signal

import (
	"math"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, identifier string) node.CalculationNode {
	t.Helper()
	for _, n := range (Library{Workers: 2}).Nodes("") {
		if n.Identifier() == identifier {
			return n
		}
	}
	t.Fatalf("node %q not found", identifier)
	return nil
}

// ramp is a signal whose frame f holds f*10 + c in channel c.
func ramp(t *testing.T, frames, channels int) content.Signal {
	t.Helper()
	data := make([]float64, frames*channels)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			data[f*channels+c] = float64(f*10 + c)
		}
	}
	sig, err := fromValues([]int{frames, channels}, data)
	require.NoError(t, err)
	return sig
}

func signalOf(t *testing.T, out content.Map, port string) content.Signal {
	t.Helper()
	sig, err := out.RequestDetectorSignal(port)
	require.NoError(t, err)
	return sig
}

func TestLibrary_IdentifiersAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range (Library{}).Nodes("") {
		assert.False(t, seen[n.Identifier()], n.Identifier())
		seen[n.Identifier()] = true
		assert.Equal(t, category, n.Category())
	}
	assert.Len(t, seen, 10)
}

func TestSynthetic(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "synthetic_signal"), nil, content.Map{
		"frames":         content.Integer(20),
		"channels":       content.Integer(3),
		"amplitude":      content.Float(2),
		"sample_period":  content.Float(0.5),
		"start_time":     content.Float(1),
		"trigger_period": content.Integer(5),
	})
	require.NoError(t, err)

	sig := signalOf(t, out, "signal")
	require.Equal(t, 20, sig.Length())
	arr := testutil.Materialize(t, sig)
	assert.Equal(t, []int{20, 3}, arr.Shape())
	v, ok := arr.Get(4, 2)
	require.True(t, ok)
	assert.InDelta(t, 2*math.Sin(2*math.Pi*0.01*4+2), v, 1e-12)

	tm, err := out.RequestDetectorTime("time")
	require.NoError(t, err)
	times := testutil.Materialize(t, tm)
	assert.Equal(t, []float64{1, 1.5, 2}, times.Flat()[:3])

	full, err := out.RequestDetectorFullData("full")
	require.NoError(t, err)
	require.NotNil(t, full.Trigger)
	trig := testutil.Materialize(t, *full.Trigger)
	assert.Equal(t, 1.0, trig.Flat()[0])
	assert.Equal(t, 0.0, trig.Flat()[1])
	assert.Equal(t, 1.0, trig.Flat()[5])
}

func TestSynthetic_NoiseIsIndependentOfRequestRanges(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "synthetic_signal"), nil, content.Map{
		"frames":   content.Integer(30),
		"channels": content.Integer(2),
		"noise":    content.Float(0.5),
	})
	require.NoError(t, err)
	sig := signalOf(t, out, "signal")

	whole := testutil.Materialize(t, sig)
	part, err := sig.RequestRange(10, 20)
	require.NoError(t, err)
	assert.Equal(t, whole.Slice(10, 20).Flat(), part.Flat())
}

func TestSynthetic_InvalidGeometry(t *testing.T) {
	_, err := testutil.CalculateNode(t, lookup(t, "synthetic_signal"), nil, content.Map{
		"channels": content.Integer(0),
	})
	assert.ErrorIs(t, err, flowerr.ErrOther)
}

func TestCut(t *testing.T) {
	tests := []struct {
		name       string
		start, end int64
		frames     int
		first      float64
		err        error
	}{
		{name: "middle", start: 2, end: 5, frames: 3, first: 20},
		{name: "to the end", start: 7, end: -1, frames: 3, first: 70},
		{name: "drop last", start: 0, end: -2, frames: 9, first: 0},
		{name: "start past end", start: 11, end: -1, err: lazy.ErrStartOutOfBounds},
		{name: "end past length", start: 0, end: 11, err: lazy.ErrEndOutOfBounds},
		{name: "reversed", start: 5, end: 3, err: lazy.ErrStartEndMessedBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := testutil.CalculateNode(t, lookup(t, "cut"),
				content.Map{"signal": content.DetectorSignal{Signal: ramp(t, 10, 2)}},
				content.Map{"start": content.Integer(tc.start), "end": content.Integer(tc.end)},
			)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			sig := signalOf(t, out, "signal")
			assert.Equal(t, tc.frames, sig.Length())
			assert.Equal(t, tc.first, testutil.Materialize(t, sig).Flat()[0])
		})
	}
}

func TestMergeAndCache(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "merge"), content.Map{
		"first":  content.DetectorSignal{Signal: ramp(t, 3, 1)},
		"second": content.DetectorSignal{Signal: ramp(t, 2, 1)},
	}, nil)
	require.NoError(t, err)
	merged := signalOf(t, out, "signal")

	out, err = testutil.CalculateNode(t, lookup(t, "cache"), content.Map{
		"signal": content.DetectorSignal{Signal: merged},
	}, nil)
	require.NoError(t, err)
	cached := signalOf(t, out, "signal")

	assert.Equal(t, []float64{0, 10, 20, 0, 10}, testutil.Materialize(t, cached).Flat())
	part, err := cached.RequestRange(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 0}, part.Flat())
}

func TestSignalLength(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "signal_length"),
		content.Map{"signal": content.DetectorSignal{Signal: ramp(t, 7, 1)}}, nil)
	require.NoError(t, err)
	assert.Equal(t, content.Integer(7), out["length"])
}

func TestFullDataRoundTrip(t *testing.T) {
	sig := ramp(t, 4, 2)
	tm := ramp(t, 4, 1)

	out, err := testutil.CalculateNode(t, lookup(t, "combine_full_data"), content.Map{
		"signal": content.DetectorSignal{Signal: sig},
		"time":   content.DetectorTime{Time: tm},
	}, nil)
	require.NoError(t, err)

	out, err = testutil.CalculateNode(t, lookup(t, "split_full_data"), content.Map{"full": out["full"]}, nil)
	require.NoError(t, err)
	assert.Equal(t, content.Boolean(false), out["has_trigger"])
	assert.Equal(t, testutil.Materialize(t, sig).Flat(), testutil.Materialize(t, signalOf(t, out, "signal")).Flat())
}

func TestCombineFullData_LengthMismatch(t *testing.T) {
	_, err := testutil.CalculateNode(t, lookup(t, "combine_full_data"), content.Map{
		"signal": content.DetectorSignal{Signal: ramp(t, 4, 2)},
		"time":   content.DetectorTime{Time: ramp(t, 3, 1)},
	}, nil)
	assert.ErrorIs(t, err, flowerr.ErrOther)
}

func TestApplyLinearFunction(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "linear_function"), nil, content.Map{
		"slope":     content.Float(2),
		"intercept": content.Float(1),
	})
	require.NoError(t, err)

	out, err = testutil.CalculateNode(t, lookup(t, "apply_function"), content.Map{
		"signal":   content.DetectorSignal{Signal: ramp(t, 2, 2)},
		"function": out["function"],
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 21, 23}, testutil.Materialize(t, signalOf(t, out, "signal")).Flat())
}

func TestChannelMean(t *testing.T) {
	out, err := testutil.CalculateNode(t, lookup(t, "channel_mean"),
		content.Map{"signal": content.DetectorSignal{Signal: ramp(t, 5, 3)}}, nil)
	require.NoError(t, err)

	// Channel c holds f*10 + c for f in 0..4, so its mean is 20 + c.
	means := testutil.Materialize(t, signalOf(t, out, "means"))
	assert.Equal(t, []int{1, 3}, means.Shape())
	assert.Equal(t, []float64{20, 21, 22}, means.Flat())
	assert.Equal(t, content.Float(21), out["mean"])
}

func TestChannelMean_Empty(t *testing.T) {
	_, err := testutil.CalculateNode(t, lookup(t, "channel_mean"),
		content.Map{"signal": content.DetectorSignal{Signal: ramp(t, 0, 3)}}, nil)
	assert.ErrorIs(t, err, flowerr.ErrOther)
}
