package signal

import (
	"context"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/workpool"
)

// channelMean averages every channel over all frames. "means" is a one
// frame signal with a value per channel; "mean" averages those values.
func channelMean(workers int) *node.Func {
	return &node.Func{
		Info: info("channel_mean", "Channel mean"),
		In:   []node.Port{signalPort},
		Out: []node.Port{
			{Name: "means", Type: content.TypeDetectorSignal},
			{Name: "mean", Type: content.TypeFloat},
		},
		Fn: func(ctx context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			frames := sig.Length()
			if frames == 0 {
				return flowerr.Otherf("cannot average an empty signal")
			}
			arr, err := sig.RequestRange(0, frames)
			if err != nil {
				return err
			}

			flat := arr.Flat()
			width := arr.FrameSize()
			if width == 0 {
				return flowerr.Otherf("cannot average a signal without channels")
			}
			means := make([]float64, width)
			err = workpool.ScatterGather(ctx, width, workers, func(_ context.Context, c int) error {
				var sum float64
				for f := 0; f < frames; f++ {
					sum += flat[f*width+c]
				}
				means[c] = sum / float64(frames)
				return nil
			})
			if err != nil {
				return err
			}

			var total float64
			for _, m := range means {
				total += m
			}
			ctxlog.FromContext(ctx).Debug("Channel means computed.", "frames", frames, "channels", width)

			shape := arr.Shape()
			shape[0] = 1
			out, err := fromValues(shape, means)
			if err != nil {
				return err
			}
			if err := call.Outputs.SetValue("means", content.DetectorSignal{Signal: out}); err != nil {
				return err
			}
			return call.Outputs.SetValue("mean", content.Float(total/float64(width)))
		},
	}
}
