package graph

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/metrics"
	"github.com/specialistvlad/lazyflow/internal/node"
)

// Visit states of the planning walk.
const (
	unvisited = iota
	inProgress
	done
)

// Execute runs every node a primary node depends on, in dependency order.
// It returns the first error; Nets keeps the values produced before it.
func (s *Storage) Execute(ctx context.Context) (err error) {
	started := time.Now()
	logger := ctxlog.FromContext(ctx).With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)

	defer func() {
		metrics.ExecuteSeconds.Observe(time.Since(started).Seconds())
		if err != nil {
			kind := "unknown"
			if k := flowerr.KindOf(err); k != nil {
				kind = k.Error()
			}
			metrics.NodeFailures.WithLabelValues(kind).Inc()
			logger.Error("Execution failed.", "error", err)
		}
	}()

	s.nets = make(map[node.PortKey]content.Content)
	s.env = s.preset.Clone()

	order, err := s.Plan()
	if err != nil {
		return err
	}
	logger.Debug("Execution planned.", "nodes", len(s.nodes), "scheduled", len(order), "order", order)

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	for _, index := range order {
		if err := s.ExecuteNode(ctx, index, rng); err != nil {
			return fmt.Errorf("%s: %w", s.describe(index), err)
		}
	}

	logger.Info("Execution finished.", "executed", len(order), "duration", time.Since(started))
	return nil
}

// Plan returns the nodes reachable backwards from primary nodes in a valid
// execution order. Input-less primary nodes are visited before the other
// primaries. Within each group, primaries and their dependencies are visited
// in ascending index order, so independent nodes keep their pipeline order.
func (s *Storage) Plan() ([]int, error) {
	state := make([]int, len(s.nodes))
	order := make([]int, 0, len(s.nodes))

	var visit func(index int) error
	visit = func(index int) error {
		switch state[index] {
		case done:
			return nil
		case inProgress:
			return flowerr.Cycle(s.describe(index))
		}
		state[index] = inProgress

		links, err := s.nodes[index].Connections()
		if err != nil {
			return fmt.Errorf("%s: %w", s.describe(index), err)
		}
		for _, dep := range dependencies(links) {
			if dep < 0 || dep >= len(s.nodes) {
				return fmt.Errorf("%s: %w", s.describe(index), flowerr.NotConnected(fmt.Sprintf("node %d", dep)))
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		state[index] = done
		order = append(order, index)
		return nil
	}

	// Primary nodes without inputs only act on the environment, so they go
	// first and every other node sees what they publish.
	for _, producers := range []bool{true, false} {
		for index, obj := range s.nodes {
			if !obj.Calculator.IsPrimary() || (len(obj.InputPorts()) == 0) != producers {
				continue
			}
			if err := visit(index); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// ExecuteNode calculates one node whose dependencies have already run and
// stores its outputs in the nets table.
func (s *Storage) ExecuteNode(ctx context.Context, index int, rng *rand.Rand) error {
	obj, ok := s.Node(index)
	if !ok {
		return flowerr.MissingPort(fmt.Sprintf("node %d", index))
	}
	if s.env == nil {
		s.env = s.preset.Clone()
	}
	logger := ctxlog.FromContext(ctx)

	links, err := obj.Connections()
	if err != nil {
		return err
	}
	inputs := make(content.Map, len(links))
	for port, key := range links {
		v, ok := s.nets[key]
		if !ok {
			// Dependencies run first, so this only happens when a node is
			// executed out of order.
			return flowerr.NotConnected(port)
		}
		inputs[port] = v
	}

	constants := obj.Constants().Clone()
	for name := range obj.ExternalConstants() {
		constants[name] = inputs[name]
	}

	declared := make(map[string]content.Type)
	for _, p := range obj.Calculator.Outputs() {
		declared[p.Name] = p.Type
	}
	outputs := content.NewOutputs(declared)

	id := obj.Calculator.Identifier()
	logger.Debug("Executing node.", "node", index, "identifier", id)
	call := &node.Call{
		Inputs:    inputs,
		Outputs:   outputs,
		Constants: constants,
		Env:       s.env,
		Rand:      rng,
	}
	if err := obj.Calculator.Calculate(ctx, call); err != nil {
		return flowerr.Classify(err)
	}
	if missing := outputs.Unfilled(); len(missing) > 0 {
		return flowerr.UnfilledOutputs(missing)
	}

	for port, v := range outputs.Values() {
		s.nets[node.PortKey{Node: index, Port: port}] = v
	}
	metrics.NodeExecutions.WithLabelValues(id).Inc()
	logger.Debug("Node executed.", "node", index, "identifier", id, "outputs", len(declared))
	return nil
}

// dependencies returns the distinct upstream node indices of links, sorted.
func dependencies(links map[string]node.PortKey) []int {
	seen := make(map[int]struct{}, len(links))
	deps := make([]int, 0, len(links))
	for _, key := range links {
		if _, ok := seen[key.Node]; ok {
			continue
		}
		seen[key.Node] = struct{}{}
		deps = append(deps, key.Node)
	}
	sort.Ints(deps)
	return deps
}
