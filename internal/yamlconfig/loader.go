// Package yamlconfig implements config.Loader for pipelines written in YAML.
//
//	environment:
//	  detector_rows: 2
//	nodes:
//	  - name: gen
//	    identifier: synthetic_signal
//	    constants:
//	      frames: 100
//	    externally_linked: [amplitude]
//	    links:
//	      - {output: signal, target: show, input: signal}
//	  - name: show
//	    identifier: print_signal
//
// The format mirrors the HCL one: names are unique and only used to resolve
// link targets to node indices.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML pipeline loader.
func NewLoader() *Loader {
	return &Loader{}
}

type document struct {
	Environment map[string]any `yaml:"environment"`
	Nodes       []nodeEntry    `yaml:"nodes"`
}

type nodeEntry struct {
	Name             string         `yaml:"name"`
	Identifier       string         `yaml:"identifier"`
	Constants        map[string]any `yaml:"constants"`
	ExternallyLinked []string       `yaml:"externally_linked"`
	Links            []linkEntry    `yaml:"links"`
}

type linkEntry struct {
	Output string `yaml:"output"`
	Target string `yaml:"target"`
	Input  string `yaml:"input"`
}

// IsPipelineFile reports whether path has a YAML extension.
func IsPipelineFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads every YAML file found under paths. A file may hold several
// documents separated by "---".
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml files found in %v", paths)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	var docs []document
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		for {
			var doc document
			err := dec.Decode(&doc)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
			}
			docs = append(docs, doc)
		}
	}

	model, err := translate(docs)
	if err != nil {
		return nil, err
	}
	logger.Debug("YAML loading complete.", "nodes", len(model.Nodes), "environment", len(model.Environment))
	return model, nil
}

func findFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if IsPipelineFile(path) {
				files = append(files, path)
			}
			continue
		}
		for _, ext := range []string{".yaml", ".yml"} {
			found, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	return files, nil
}

func translate(docs []document) (*config.Model, error) {
	model := &config.Model{Environment: make(map[string]cty.Value)}

	index := make(map[string]int)
	for _, doc := range docs {
		for _, n := range doc.Nodes {
			if n.Name == "" || n.Identifier == "" {
				return nil, fmt.Errorf("node %d: name and identifier are required", len(index))
			}
			if prev, exists := index[n.Name]; exists {
				return nil, fmt.Errorf("duplicate node name '%s': declared as node %d and node %d", n.Name, prev, len(index))
			}
			index[n.Name] = len(index)
		}
	}

	for _, doc := range docs {
		for key, raw := range doc.Environment {
			if _, exists := model.Environment[key]; exists {
				return nil, fmt.Errorf("environment: duplicate key '%s'", key)
			}
			v, err := toCty(raw)
			if err != nil {
				return nil, fmt.Errorf("environment value '%s': %w", key, err)
			}
			model.Environment[key] = v
		}

		for _, n := range doc.Nodes {
			node := &config.Node{
				Name:                      n.Name,
				Identifier:                n.Identifier,
				Constants:                 make(map[string]cty.Value, len(n.Constants)),
				ExternallyLinkedConstants: make(map[string]bool, len(n.ExternallyLinked)),
			}
			for name, raw := range n.Constants {
				v, err := toCty(raw)
				if err != nil {
					return nil, fmt.Errorf("node '%s' constant '%s': %w", n.Name, name, err)
				}
				node.Constants[name] = v
			}
			for _, name := range n.ExternallyLinked {
				node.ExternallyLinkedConstants[name] = true
			}
			for _, link := range n.Links {
				target, ok := index[link.Target]
				if !ok {
					return nil, fmt.Errorf("node '%s' links to unknown node '%s'", n.Name, link.Target)
				}
				node.Links = append(node.Links, &config.Link{
					OutputPort:  link.Output,
					TargetNode:  target,
					TargetInput: link.Input,
				})
			}
			model.Nodes = append(model.Nodes, node)
		}
	}
	return model, nil
}

// toCty converts a decoded YAML scalar.
func toCty(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case uint64:
		return cty.NumberUIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case string:
		return cty.StringVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case nil:
		return cty.NilVal, fmt.Errorf("value must not be null")
	}
	return cty.NilVal, fmt.Errorf("unsupported value of type %T", raw)
}
