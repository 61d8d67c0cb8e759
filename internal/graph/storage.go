package graph

import (
	"fmt"

	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/node"
)

// Storage holds a pipeline and the state of its latest execution.
type Storage struct {
	nodes []*node.Object
	nets  map[node.PortKey]content.Content

	// preset is copied into a fresh environment at the start of every run.
	preset content.Map
	env    content.Map
	seed   uint64
}

// Option configures a Storage.
type Option func(*Storage)

// WithSeed sets the seed of the random source handed to nodes.
func WithSeed(seed uint64) Option {
	return func(s *Storage) {
		s.seed = seed
	}
}

// WithEnvironment presets environment values visible to every run.
func WithEnvironment(env content.Map) Option {
	return func(s *Storage) {
		for k, v := range env {
			s.preset[k] = v
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Storage {
	s := &Storage{
		nets:   make(map[node.PortKey]content.Content),
		preset: make(content.Map),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNode appends obj and returns its index.
func (s *Storage) AddNode(obj *node.Object) int {
	s.nodes = append(s.nodes, obj)
	return len(s.nodes) - 1
}

// Node returns the object stored at index.
func (s *Storage) Node(index int) (*node.Object, bool) {
	if index < 0 || index >= len(s.nodes) {
		return nil, false
	}
	return s.nodes[index], true
}

// Len is the number of nodes.
func (s *Storage) Len() int {
	return len(s.nodes)
}

// Connect links the output port from to the input port to. Both ports must
// exist and carry the same content type.
func (s *Storage) Connect(from, to node.PortKey) error {
	src, ok := s.Node(from.Node)
	if !ok {
		return flowerr.MissingPort(from.String())
	}
	dst, ok := s.Node(to.Node)
	if !ok {
		return flowerr.MissingPort(to.String())
	}
	out, ok := src.OutputPort(from.Port)
	if !ok {
		return flowerr.MissingPort(from.String())
	}
	in, ok := dst.InputPort(to.Port)
	if !ok {
		return flowerr.MissingPort(to.String())
	}
	if in.Type != out.Type {
		return flowerr.TypeError(to.String(), in.Type.String(), out.Type.String())
	}
	return dst.Link(to.Port, from)
}

// ClearGraph drops every node and all execution state.
func (s *Storage) ClearGraph() {
	s.nodes = nil
	s.nets = make(map[node.PortKey]content.Content)
	s.env = nil
}

// Nets returns the values produced by the latest execution.
func (s *Storage) Nets() map[node.PortKey]content.Content {
	return s.nets
}

// Net returns the value produced for key by the latest execution.
func (s *Storage) Net(key node.PortKey) (content.Content, bool) {
	c, ok := s.nets[key]
	return c, ok
}

// Environment returns the environment of the latest execution.
func (s *Storage) Environment() content.Map {
	return s.env
}

func (s *Storage) describe(index int) string {
	return fmt.Sprintf("node %d (%s)", index, s.nodes[index].Calculator.Identifier())
}
