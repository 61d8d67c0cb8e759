package signal

import (
	"context"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
	"github.com/specialistvlad/lazyflow/internal/node"
)

// cut keeps frames [start, end) of its input. A negative end counts back
// from the end, so the default -1 keeps everything from start on.
func cut() *node.Func {
	return &node.Func{
		Info: info("cut", "Cut"),
		In:   []node.Port{signalPort},
		Out:  []node.Port{signalPort},
		Defaults: content.Map{
			"start": content.Integer(0),
			"end":   content.Integer(-1),
		},
		Fn: func(_ context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			start, err := call.Constants.RequestInteger("start")
			if err != nil {
				return err
			}
			end, err := call.Constants.RequestInteger("end")
			if err != nil {
				return err
			}
			if end < 0 {
				end += int64(sig.Length()) + 1
			}
			out, err := lazy.NewCutter(sig, int(start), int(end))
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("signal", content.DetectorSignal{Signal: out})
		},
	}
}

// merge concatenates "first" and "second" along the frame axis.
func merge() *node.Func {
	return &node.Func{
		Info: info("merge", "Merge"),
		In: []node.Port{
			{Name: "first", Type: content.TypeDetectorSignal},
			{Name: "second", Type: content.TypeDetectorSignal},
		},
		Out: []node.Port{signalPort},
		Fn: func(_ context.Context, call *node.Call) error {
			a, err := call.Inputs.RequestDetectorSignal("first")
			if err != nil {
				return err
			}
			b, err := call.Inputs.RequestDetectorSignal("second")
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("signal", content.DetectorSignal{Signal: lazy.NewMerge(a, b)})
		},
	}
}

// cache remembers the frames requested last so that overlapping requests
// only compute what is new.
func cache() *node.Func {
	return &node.Func{
		Info: info("cache", "Cache"),
		In:   []node.Port{signalPort},
		Out:  []node.Port{signalPort},
		Fn: func(_ context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("signal", content.DetectorSignal{Signal: lazy.NewCache(sig)})
		},
	}
}

func length() *node.Func {
	return &node.Func{
		Info: info("signal_length", "Signal length"),
		In:   []node.Port{signalPort},
		Out:  []node.Port{{Name: "length", Type: content.TypeInteger}},
		Fn: func(_ context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("length", content.Integer(sig.Length()))
		},
	}
}

// splitFullData exposes the signal and time axis of full detector data.
func splitFullData() *node.Func {
	return &node.Func{
		Info: info("split_full_data", "Split full data"),
		In:   []node.Port{fullPort},
		Out:  []node.Port{signalPort, timePort, {Name: "has_trigger", Type: content.TypeBoolean}},
		Fn: func(_ context.Context, call *node.Call) error {
			full, err := call.Inputs.RequestDetectorFullData("full")
			if err != nil {
				return err
			}
			if err := call.Outputs.SetValue("signal", content.DetectorSignal{Signal: full.Signal}); err != nil {
				return err
			}
			if err := call.Outputs.SetValue("time", content.DetectorTime{Time: full.Time}); err != nil {
				return err
			}
			return call.Outputs.SetValue("has_trigger", content.Boolean(full.Trigger != nil))
		},
	}
}

// combineFullData bundles a signal with a time axis of the same length.
func combineFullData() *node.Func {
	return &node.Func{
		Info: info("combine_full_data", "Combine full data"),
		In:   []node.Port{signalPort, timePort},
		Out:  []node.Port{fullPort},
		Fn: func(_ context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			tm, err := call.Inputs.RequestDetectorTime("time")
			if err != nil {
				return err
			}
			if sig.Length() != tm.Length() {
				return flowerr.Otherf("signal has %d frames but time has %d", sig.Length(), tm.Length())
			}
			return call.Outputs.SetValue("full", content.DetectorFullData{Signal: sig, Time: tm})
		},
	}
}

// fromValues wraps an in-memory array as a signal.
func fromValues(shape []int, values []float64) (content.Signal, error) {
	arr, err := ndarray.FromFlat(shape, values)
	if err != nil {
		return content.Signal{}, err
	}
	return lazy.FromArray(arr), nil
}
