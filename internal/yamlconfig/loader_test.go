package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	path := write(t, t.TempDir(), "pipeline.yaml", `
environment:
  rows: 2
  site: lab
nodes:
  - name: gen
    identifier: synthetic_signal
    constants:
      frames: 100
      amplitude: 1.5
      enabled: true
    externally_linked: [noise]
    links:
      - {output: signal, target: out, input: signal}
  - name: out
    identifier: print_signal
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Nodes, 2)

	gen := model.Nodes[0]
	assert.Equal(t, "synthetic_signal", gen.Identifier)
	assert.True(t, gen.Constants["frames"].RawEquals(cty.NumberIntVal(100)))
	assert.True(t, gen.Constants["amplitude"].RawEquals(cty.NumberFloatVal(1.5)))
	assert.True(t, gen.Constants["enabled"].RawEquals(cty.True))
	assert.Equal(t, map[string]bool{"noise": true}, gen.ExternallyLinkedConstants)
	assert.Equal(t, []*config.Link{{OutputPort: "signal", TargetNode: 1, TargetInput: "signal"}}, gen.Links)

	assert.True(t, model.Environment["rows"].RawEquals(cty.NumberIntVal(2)))
	assert.True(t, model.Environment["site"].RawEquals(cty.StringVal("lab")))
}

func TestLoad_MultipleDocumentsAndFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.yaml", `
nodes:
  - name: one
    identifier: integer_constant
    links:
      - {output: value, target: show, input: value}
---
nodes:
  - name: two
    identifier: integer_constant
`)
	write(t, dir, "b.yml", `
nodes:
  - name: show
    identifier: print_integer
`)
	write(t, dir, "notes.txt", "ignored")

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Nodes, 3)
	assert.Equal(t, 2, model.Nodes[0].Links[0].TargetNode)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown field", "nodes:\n  - name: a\n    identifier: x\n    color: red\n", "failed to decode"},
		{"duplicate name", "nodes:\n  - {name: a, identifier: x}\n  - {name: a, identifier: y}\n", "duplicate node name 'a'"},
		{"missing identifier", "nodes:\n  - {name: a}\n", "name and identifier are required"},
		{"unknown target", "nodes:\n  - name: a\n    identifier: x\n    links:\n      - {output: o, target: ghost, input: i}\n", "unknown node 'ghost'"},
		{"list constant", "nodes:\n  - name: a\n    identifier: x\n    constants:\n      frames: [1, 2]\n", "unsupported value"},
		{"null environment", "environment:\n  rows: null\n", "must not be null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := write(t, t.TempDir(), "p.yaml", tc.body)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestIsPipelineFile(t *testing.T) {
	assert.True(t, IsPipelineFile("a.yaml"))
	assert.True(t, IsPipelineFile("dir/a.yml"))
	assert.False(t, IsPipelineFile("a.hcl"))
}
