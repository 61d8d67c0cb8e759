package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/lazyflow/internal/ctxlog"
)

// Validate checks every registered node for an inconsistent schema: empty
// names, duplicate port names, or constants that shadow input ports.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, id := range r.Identifiers() {
		n := r.nodes[id]
		if id == "" {
			errs = append(errs, fmt.Sprintf("node '%s' has an empty identifier", n.Name()))
		}

		inputs := make(map[string]struct{})
		for _, p := range n.Inputs() {
			if p.Name == "" {
				errs = append(errs, fmt.Sprintf("node '%s': input with empty name", id))
				continue
			}
			if _, dup := inputs[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("node '%s': input '%s' declared twice", id, p.Name))
			}
			inputs[p.Name] = struct{}{}
		}

		outputs := make(map[string]struct{})
		for _, p := range n.Outputs() {
			if p.Name == "" {
				errs = append(errs, fmt.Sprintf("node '%s': output with empty name", id))
				continue
			}
			if _, dup := outputs[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("node '%s': output '%s' declared twice", id, p.Name))
			}
			outputs[p.Name] = struct{}{}
		}

		constants := n.Constants()
		names := make([]string, 0, len(constants))
		for name := range constants {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if constants[name] == nil {
				errs = append(errs, fmt.Sprintf("node '%s': constant '%s' has no default", id, name))
			}
			if _, clash := inputs[name]; clash {
				errs = append(errs, fmt.Sprintf("node '%s': constant '%s' shadows an input port", id, name))
			}
		}

		if len(n.Outputs()) == 0 && !n.IsPrimary() {
			logger.Warn("Node has no outputs and is not primary; it can never execute.", "identifier", id)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

