package signal

import (
	"context"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/node"
)

var functionPort = node.Port{Name: "function", Type: content.TypeFunction}

// linearFunction emits f(x) = slope*x + intercept.
func linearFunction() *node.Func {
	return &node.Func{
		Info: info("linear_function", "Linear function"),
		Out:  []node.Port{functionPort},
		Defaults: content.Map{
			"slope":     content.Float(1),
			"intercept": content.Float(0),
		},
		Fn: func(_ context.Context, call *node.Call) error {
			slope, err := call.Constants.RequestFloat("slope")
			if err != nil {
				return err
			}
			intercept, err := call.Constants.RequestFloat("intercept")
			if err != nil {
				return err
			}
			f := content.Function(func(x float64) float64 { return slope*x + intercept })
			return call.Outputs.SetValue("function", f)
		},
	}
}

// applyFunction maps a scalar function over every sample of a signal.
func applyFunction() *node.Func {
	return &node.Func{
		Info: info("apply_function", "Apply function"),
		In:   []node.Port{signalPort, functionPort},
		Out:  []node.Port{signalPort},
		Fn: func(_ context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			fn, err := call.Inputs.RequestFunction("function")
			if err != nil {
				return err
			}
			return call.Outputs.SetValue("signal", content.DetectorSignal{Signal: lazy.Map(sig, fn)})
		},
	}
}
