package signal

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
	"github.com/specialistvlad/lazyflow/internal/node"
)

// waveform describes a sine per channel with optional gaussian noise. Channel
// c is shifted by c radians.
type waveform struct {
	frames        int
	channels      int
	amplitude     float64
	frequency     float64
	noise         float64
	samplePeriod  float64
	startTime     float64
	triggerPeriod int
	seed          uint64
}

// frame writes the values of frame f into dst.
func (w *waveform) frame(f int, dst []float64) {
	var rng *rand.Rand
	if w.noise != 0 {
		// One stream per frame keeps values independent of request ranges.
		rng = rand.New(rand.NewPCG(w.seed, uint64(f)))
	}
	phase := 2 * math.Pi * w.frequency * float64(f)
	for c := range dst {
		v := w.amplitude * math.Sin(phase+float64(c))
		if rng != nil {
			v += w.noise * rng.NormFloat64()
		}
		dst[c] = v
	}
}

func (w *waveform) signal(start, end int) (*ndarray.Array[float64], error) {
	data := make([]float64, (end-start)*w.channels)
	for f := start; f < end; f++ {
		off := (f - start) * w.channels
		w.frame(f, data[off:off+w.channels])
	}
	return ndarray.FromFlat([]int{end - start, w.channels}, data)
}

func (w *waveform) time(start, end int) (*ndarray.Array[float64], error) {
	data := make([]float64, end-start)
	for f := start; f < end; f++ {
		data[f-start] = w.startTime + float64(f)*w.samplePeriod
	}
	return ndarray.FromFlat([]int{end - start}, data)
}

func (w *waveform) trigger(start, end int) (*ndarray.Array[float64], error) {
	data := make([]float64, end-start)
	for f := start; f < end; f++ {
		if f%w.triggerPeriod == 0 {
			data[f-start] = 1
		}
	}
	return ndarray.FromFlat([]int{end - start}, data)
}

func synthetic() *node.Func {
	return &node.Func{
		Info: info("synthetic_signal", "Synthetic signal"),
		Out:  []node.Port{signalPort, timePort, fullPort},
		Defaults: content.Map{
			"frames":         content.Integer(100),
			"channels":       content.Integer(1),
			"amplitude":      content.Float(1),
			"frequency":      content.Float(0.01),
			"noise":          content.Float(0),
			"sample_period":  content.Float(1),
			"start_time":     content.Float(0),
			"trigger_period": content.Integer(0),
		},
		Fn: func(_ context.Context, call *node.Call) error {
			w, err := readWaveform(call)
			if err != nil {
				return err
			}

			sig := lazy.Generate(w.frames, w.signal)
			tm := lazy.Generate(w.frames, w.time)
			full := content.DetectorFullData{Signal: sig, Time: tm}
			if w.triggerPeriod > 0 {
				trig := lazy.Generate(w.frames, w.trigger)
				full.Trigger = &trig
			}

			if err := call.Outputs.SetValue("signal", content.DetectorSignal{Signal: sig}); err != nil {
				return err
			}
			if err := call.Outputs.SetValue("time", content.DetectorTime{Time: tm}); err != nil {
				return err
			}
			return call.Outputs.SetValue("full", full)
		},
	}
}

func readWaveform(call *node.Call) (*waveform, error) {
	c := call.Constants
	frames, err := c.RequestInteger("frames")
	if err != nil {
		return nil, err
	}
	channels, err := c.RequestInteger("channels")
	if err != nil {
		return nil, err
	}
	if frames < 0 || channels < 1 {
		return nil, flowerr.Otherf("invalid geometry: %d frames of %d channels", frames, channels)
	}
	triggerPeriod, err := c.RequestInteger("trigger_period")
	if err != nil {
		return nil, err
	}
	if triggerPeriod < 0 {
		return nil, flowerr.Otherf("trigger_period must not be negative, got %d", triggerPeriod)
	}

	w := &waveform{
		frames:        int(frames),
		channels:      int(channels),
		triggerPeriod: int(triggerPeriod),
	}
	for name, dst := range map[string]*float64{
		"amplitude":     &w.amplitude,
		"frequency":     &w.frequency,
		"noise":         &w.noise,
		"sample_period": &w.samplePeriod,
		"start_time":    &w.startTime,
	} {
		if *dst, err = c.RequestFloat(name); err != nil {
			return nil, err
		}
	}
	if call.Rand != nil {
		w.seed = call.Rand.Uint64()
	}
	return w, nil
}
