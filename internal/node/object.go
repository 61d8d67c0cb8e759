package node

import (
	"sort"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
)

// Object is a CalculationNode bound to concrete constants and input links.
// Every input port, including externally linked constants, has an entry in
// the link table; nil means unresolved.
type Object struct {
	Calculator CalculationNode

	constants content.Map
	external  map[string]bool
	links     map[string]*PortKey
}

// NewObject binds calc with its default constants and no resolved inputs.
func NewObject(calc CalculationNode) *Object {
	o := &Object{
		Calculator: calc,
		constants:  calc.Constants().Clone(),
		external:   make(map[string]bool),
		links:      make(map[string]*PortKey),
	}
	for _, p := range calc.Inputs() {
		o.links[p.Name] = nil
	}
	return o
}

// Constants returns the effective constant values.
func (o *Object) Constants() content.Map {
	return o.constants
}

// SetConstant overrides a declared constant. The value must keep the type of
// the default.
func (o *Object) SetConstant(name string, c content.Content) error {
	def, ok := o.constants[name]
	if !ok {
		return flowerr.ConstantMissing(name)
	}
	if c == nil || c.Type() != def.Type() {
		got := "nil"
		if c != nil {
			got = c.Type().String()
		}
		return flowerr.TypeError(name, def.Type().String(), got)
	}
	o.constants[name] = c
	return nil
}

// LinkConstantExternally turns a constant into an input port of the same
// type. A value arriving on that port overrides the constant.
func (o *Object) LinkConstantExternally(name string) error {
	if _, ok := o.constants[name]; !ok {
		return flowerr.ConstantMissing(name)
	}
	if o.external[name] {
		return nil
	}
	o.external[name] = true
	o.links[name] = nil
	return nil
}

// ExternalConstants reports which constants are fed through input ports.
func (o *Object) ExternalConstants() map[string]bool {
	return o.external
}

// InputPorts lists declared inputs followed by externally linked constants.
func (o *Object) InputPorts() []Port {
	ports := append([]Port(nil), o.Calculator.Inputs()...)
	names := make([]string, 0, len(o.external))
	for name := range o.external {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ports = append(ports, Port{Name: name, Type: o.constants[name].Type()})
	}
	return ports
}

// InputPort looks up an input port by name.
func (o *Object) InputPort(name string) (Port, bool) {
	for _, p := range o.InputPorts() {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// OutputPort looks up a declared output by name.
func (o *Object) OutputPort(name string) (Port, bool) {
	for _, p := range o.Calculator.Outputs() {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Link resolves input to the upstream output from.
func (o *Object) Link(input string, from PortKey) error {
	if _, ok := o.links[input]; !ok {
		return flowerr.MissingPort(input)
	}
	o.links[input] = &from
	return nil
}

// Connections returns the resolved link of every input port. It fails with
// NotConnected naming the first unresolved port in port order.
func (o *Object) Connections() (map[string]PortKey, error) {
	out := make(map[string]PortKey, len(o.links))
	for _, p := range o.InputPorts() {
		link := o.links[p.Name]
		if link == nil {
			return nil, flowerr.NotConnected(p.Name)
		}
		out[p.Name] = *link
	}
	return out, nil
}
