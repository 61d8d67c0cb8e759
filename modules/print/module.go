// Package print provides primary sink nodes that write values to an output
// stream.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/registry"
)

const category = "print"

// Library implements registry.Library for this package.
type Library struct {
	// Out receives printed values. Nil means standard output.
	Out io.Writer
}

var _ registry.Library = Library{}

// Nodes returns every node of the library.
func (l Library) Nodes(string) []node.CalculationNode {
	p := &printer{w: l.Out}
	if p.w == nil {
		p.w = os.Stdout
	}
	return []node.CalculationNode{
		p.scalar("print_integer", "Print integer", content.TypeInteger),
		p.scalar("print_float", "Print float", content.TypeFloat),
		p.scalar("print_string", "Print string", content.TypeString),
		p.scalar("print_boolean", "Print boolean", content.TypeBoolean),
		p.signal(),
	}
}

type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printer) write(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.w, s)
	return err
}

func labelled(call *node.Call, body string) (string, error) {
	label, err := call.Constants.RequestString("label")
	if err != nil {
		return "", err
	}
	if label == "" {
		return body + "\n", nil
	}
	return label + ": " + body + "\n", nil
}

func (p *printer) scalar(identifier, name string, t content.Type) *node.Func {
	return &node.Func{
		Info:     node.Info{NodeName: name, NodeIdentifier: identifier, NodeCategory: category, Primary: true},
		In:       []node.Port{{Name: "value", Type: t}},
		Defaults: content.Map{"label": content.String("")},
		Fn: func(ctx context.Context, call *node.Call) error {
			v, ok := call.Inputs.Get("value")
			if !ok {
				return flowerr.NotConnected("value")
			}
			line, err := labelled(call, format(v))
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Debug("Printing value.", "node", identifier)
			return p.write(line)
		},
	}
}

func format(c content.Content) string {
	switch v := c.(type) {
	case content.Integer:
		return strconv.FormatInt(int64(v), 10)
	case content.Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case content.String:
		return string(v)
	case content.Boolean:
		return strconv.FormatBool(bool(v))
	}
	return fmt.Sprintf("%v", c)
}

// signal prints the shape of a signal followed by at most "limit" frames,
// one per line.
func (p *printer) signal() *node.Func {
	return &node.Func{
		Info: node.Info{NodeName: "Print signal", NodeIdentifier: "print_signal", NodeCategory: category, Primary: true},
		In:   []node.Port{{Name: "signal", Type: content.TypeDetectorSignal}},
		Defaults: content.Map{
			"label": content.String(""),
			"limit": content.Integer(10),
		},
		Fn: func(ctx context.Context, call *node.Call) error {
			sig, err := call.Inputs.RequestDetectorSignal("signal")
			if err != nil {
				return err
			}
			limit, err := call.Constants.RequestInteger("limit")
			if err != nil {
				return err
			}
			n := min(sig.Length(), max(int(limit), 0))

			var b strings.Builder
			fmt.Fprintf(&b, "%d frames", sig.Length())
			if n > 0 {
				arr, err := sig.RequestRange(0, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, " of %v", arr.Shape()[1:])
				flat, width := arr.Flat(), arr.FrameSize()
				for f := 0; f < n; f++ {
					b.WriteString("\n  ")
					for c, v := range flat[f*width : (f+1)*width] {
						if c > 0 {
							b.WriteByte(' ')
						}
						b.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
					}
				}
			}

			line, err := labelled(call, b.String())
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Debug("Printing signal.", "frames", sig.Length(), "printed", n)
			return p.write(line)
		},
	}
}
