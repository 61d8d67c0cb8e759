package node

import (
	"context"

	"github.com/specialistvlad/lazyflow/internal/content"
)

// Func builds a CalculationNode from plain values. Node libraries use it for
// nodes that keep no state of their own.
type Func struct {
	Info
	In       []Port
	Out      []Port
	Defaults content.Map
	Fn       func(ctx context.Context, call *Call) error
}

var _ CalculationNode = (*Func)(nil)

func (f *Func) Inputs() []Port         { return f.In }
func (f *Func) Outputs() []Port        { return f.Out }
func (f *Func) Constants() content.Map { return f.Defaults }

// Calculate runs Fn.
func (f *Func) Calculate(ctx context.Context, call *Call) error {
	return f.Fn(ctx, call)
}
