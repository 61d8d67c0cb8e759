package content

import (
	"sort"

	"github.com/specialistvlad/lazyflow/internal/flowerr"
)

// Map is a string-keyed set of values: node inputs, constants or the shared
// environment of one execution.
type Map map[string]Content

// Get returns the value stored under key.
func (m Map) Get(key string) (Content, bool) {
	c, ok := m[key]
	return c, ok
}

// Set stores c under key.
func (m Map) Set(key string, c Content) {
	m[key] = c
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func request[C Content](m Map, key string, want Type) (C, error) {
	var zero C
	c, ok := m[key]
	if !ok || c == nil {
		return zero, flowerr.NotConnected(key)
	}
	v, ok := c.(C)
	if !ok {
		return zero, flowerr.TypeError(key, want.String(), c.Type().String())
	}
	return v, nil
}

// RequestInteger returns the Integer stored under key.
func (m Map) RequestInteger(key string) (int64, error) {
	v, err := request[Integer](m, key, TypeInteger)
	return int64(v), err
}

// RequestFloat returns the Float stored under key.
func (m Map) RequestFloat(key string) (float64, error) {
	v, err := request[Float](m, key, TypeFloat)
	return float64(v), err
}

// RequestBoolean returns the Boolean stored under key.
func (m Map) RequestBoolean(key string) (bool, error) {
	v, err := request[Boolean](m, key, TypeBoolean)
	return bool(v), err
}

// RequestString returns the String stored under key.
func (m Map) RequestString(key string) (string, error) {
	v, err := request[String](m, key, TypeString)
	return string(v), err
}

// RequestFunction returns the Function stored under key.
func (m Map) RequestFunction(key string) (Function, error) {
	return request[Function](m, key, TypeFunction)
}

// RequestDetectorSignal returns the lazy signal stored under key.
func (m Map) RequestDetectorSignal(key string) (Signal, error) {
	v, err := request[DetectorSignal](m, key, TypeDetectorSignal)
	return v.Signal, err
}

// RequestDetectorTime returns the lazy time axis stored under key.
func (m Map) RequestDetectorTime(key string) (Signal, error) {
	v, err := request[DetectorTime](m, key, TypeDetectorTime)
	return v.Time, err
}

// RequestDetectorFullData returns the full detector data stored under key.
func (m Map) RequestDetectorFullData(key string) (DetectorFullData, error) {
	return request[DetectorFullData](m, key, TypeDetectorFullData)
}

// Outputs collects the values a node produces for its declared ports.
type Outputs struct {
	declared map[string]Type
	values   Map
}

// NewOutputs prepares a container accepting exactly the declared ports.
func NewOutputs(declared map[string]Type) *Outputs {
	return &Outputs{declared: declared, values: make(Map, len(declared))}
}

// SetValue stores c for port key.
func (o *Outputs) SetValue(key string, c Content) error {
	want, ok := o.declared[key]
	if !ok {
		return flowerr.MissingPort(key)
	}
	if c == nil || c.Type() != want {
		got := "nil"
		if c != nil {
			got = c.Type().String()
		}
		return flowerr.TypeError(key, want.String(), got)
	}
	o.values[key] = c
	return nil
}

// Values returns everything set so far.
func (o *Outputs) Values() Map {
	return o.values
}

// Unfilled returns the declared ports that were never set, sorted by name.
func (o *Outputs) Unfilled() []string {
	var missing []string
	for key := range o.declared {
		if _, ok := o.values[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
