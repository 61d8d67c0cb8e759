// Package node defines the contract every calculation node implements and
// the Object that binds a node to its constants and input wiring inside one
// graph.
package node

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/lazyflow/internal/content"
)

// Port declares a typed input or output.
type Port struct {
	Name string
	Type content.Type
}

// PortKey identifies one end of a graph edge: a port on the node stored at
// index Node.
type PortKey struct {
	Node int
	Port string
}

func (k PortKey) String() string {
	return fmt.Sprintf("%d.%s", k.Node, k.Port)
}

// Call carries everything a node may read or write during one calculation.
type Call struct {
	// Inputs holds one value per connected input port.
	Inputs content.Map
	// Outputs must receive a value for every declared output.
	Outputs *content.Outputs
	// Constants holds the effective constant values.
	Constants content.Map
	// Env is shared by all nodes of one execution.
	Env content.Map
	// Rand is the seeded random source of the execution.
	Rand *rand.Rand
}

// CalculationNode is a processing unit in a pipeline.
type CalculationNode interface {
	// Name is the human readable name.
	Name() string
	// Identifier is the unique registry key.
	Identifier() string
	// Category groups nodes for presentation.
	Category() string
	// IsPrimary forces execution even without downstream consumers. Nodes
	// with side effects (writers, printers, environment producers) are primary.
	IsPrimary() bool

	Inputs() []Port
	Outputs() []Port
	// Constants returns the default constant values.
	Constants() content.Map

	// Calculate reads call.Inputs and fills call.Outputs.
	Calculate(ctx context.Context, call *Call) error
}

// Info implements the descriptive half of CalculationNode and is meant to be
// embedded by node implementations.
type Info struct {
	NodeName       string
	NodeIdentifier string
	NodeCategory   string
	Primary        bool
}

func (i Info) Name() string       { return i.NodeName }
func (i Info) Identifier() string { return i.NodeIdentifier }
func (i Info) Category() string   { return i.NodeCategory }
func (i Info) IsPrimary() bool    { return i.Primary }
