package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of one pipeline.
type Model struct {
	// Nodes are instantiated in order; a node's index is its position.
	Nodes []*Node
	// Environment presets values visible to every node of an execution.
	Environment map[string]cty.Value
}

// Node is one node instance of the pipeline.
type Node struct {
	// Name is the label used in the source file. It is informational.
	Name string
	// Identifier selects the node implementation from the registry.
	Identifier string
	// Constants overrides default constant values.
	Constants map[string]cty.Value
	// ExternallyLinkedConstants marks constants fed through an input port.
	ExternallyLinkedConstants map[string]bool
	// Links are the outgoing edges of this node.
	Links []*Link
}

// Link connects an output of the owning node to an input of another node.
type Link struct {
	OutputPort  string
	TargetNode  int
	TargetInput string
}
