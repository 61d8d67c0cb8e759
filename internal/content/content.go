// Package content defines the tagged values carried along graph edges and
// the containers nodes use to read and write them.
package content

import (
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/ndarray"
)

// Type is the tag of a Content value, used to type-check ports.
type Type int

const (
	TypeInteger Type = iota
	TypeFloat
	TypeBoolean
	TypeString
	TypeFunction
	TypeDetectorSignal
	TypeDetectorFullData
	TypeDetectorTime
)

var typeNames = map[Type]string{
	TypeInteger:          "Integer",
	TypeFloat:            "Float",
	TypeBoolean:          "Boolean",
	TypeString:           "String",
	TypeFunction:         "Function",
	TypeDetectorSignal:   "DetectorSignal",
	TypeDetectorFullData: "DetectorFullData",
	TypeDetectorTime:     "DetectorTime",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Signal is a lazy producer of detector frames: time × spatial channels.
type Signal = lazy.Box[*ndarray.Array[float64]]

// Content is a value flowing on a graph edge. The concrete types in this
// package are the only implementations.
type Content interface {
	Type() Type
	content()
}

type (
	// Integer is a signed integer scalar.
	Integer int64
	// Float is a floating point scalar.
	Float float64
	// Boolean is a truth value.
	Boolean bool
	// String is a text value.
	String string
	// Function is a scalar function handle.
	Function func(float64) float64

	// DetectorSignal carries the lazy frame data of a detector.
	DetectorSignal struct {
		Signal Signal
	}

	// DetectorTime carries the lazy time axis of a detector, one value per frame.
	DetectorTime struct {
		Time Signal
	}

	// DetectorFullData bundles a signal with its time axis and, optionally,
	// trigger values.
	DetectorFullData struct {
		Signal  Signal
		Time    Signal
		Trigger *Signal
	}
)

func (Integer) Type() Type          { return TypeInteger }
func (Float) Type() Type            { return TypeFloat }
func (Boolean) Type() Type          { return TypeBoolean }
func (String) Type() Type           { return TypeString }
func (Function) Type() Type         { return TypeFunction }
func (DetectorSignal) Type() Type   { return TypeDetectorSignal }
func (DetectorTime) Type() Type     { return TypeDetectorTime }
func (DetectorFullData) Type() Type { return TypeDetectorFullData }

func (Integer) content()          {}
func (Float) content()            {}
func (Boolean) content()          {}
func (String) content()           {}
func (Function) content()         {}
func (DetectorSignal) content()   {}
func (DetectorTime) content()     {}
func (DetectorFullData) content() {}
