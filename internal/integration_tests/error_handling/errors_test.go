package integration_tests

import (
	"testing"

	"github.com/specialistvlad/lazyflow/internal/app"
	"github.com/specialistvlad/lazyflow/internal/flowerr"
	"github.com/specialistvlad/lazyflow/internal/lazy"
	"github.com/specialistvlad/lazyflow/internal/testutil/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_CycleIsRejectedBeforeRunning(t *testing.T) {
	t.Parallel()

	pipeline := `
node "one" "float_constant" {
  constants {
    value = 1
  }
  link {
    output = "value"
    target = "x"
    input  = "a"
  }
  link {
    output = "value"
    target = "y"
    input  = "a"
  }
}

node "x" "add_float" {
  link {
    output = "sum"
    target = "y"
    input  = "b"
  }
}

node "y" "add_float" {
  link {
    output = "sum"
    target = "x"
    input  = "b"
  }
  link {
    output = "sum"
    target = "show"
    input  = "value"
  }
}

node "show" "print_float" {
  constants {
    label = "never"
  }
}
`
	result := harness.Run(t, map[string]string{"main.hcl": pipeline}, app.Config{})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, flowerr.ErrCycle)
	assert.NotContains(t, result.Output, "never:")
}

func TestErrorHandling_UnlinkedInput(t *testing.T) {
	t.Parallel()

	result := harness.Run(t, map[string]string{"main.hcl": `node "show" "print_float" {}`}, app.Config{})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, flowerr.ErrNotConnected)
	assert.Equal(t, "value", flowerr.Port(result.Err))
}

func TestErrorHandling_LinkTypeMismatch(t *testing.T) {
	t.Parallel()

	pipeline := `
node "n" "integer_constant" {
  link {
    output = "value"
    target = "show"
    input  = "value"
  }
}

node "show" "print_float" {}
`
	result := harness.Run(t, map[string]string{"main.hcl": pipeline}, app.Config{})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, flowerr.ErrType)
	assert.Contains(t, result.Err.Error(), "failed to build graph")
}

func TestErrorHandling_NodeFailureKeepsCause(t *testing.T) {
	t.Parallel()

	pipeline := `
node "gen" "synthetic_signal" {
  constants {
    frames = 10
  }
  link {
    output = "signal"
    target = "window"
    input  = "signal"
  }
}

node "window" "cut" {
  constants {
    start = 20
  }
  link {
    output = "signal"
    target = "show"
    input  = "signal"
  }
}

node "show" "print_signal" {}
`
	result := harness.Run(t, map[string]string{"main.hcl": pipeline}, app.Config{})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, flowerr.ErrOther)
	assert.ErrorIs(t, result.Err, lazy.ErrStartOutOfBounds)
	assert.Contains(t, result.Err.Error(), "node 1 (cut)")
}

func TestErrorHandling_StartupFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		pipeline string
		contains string
	}{
		{
			name:     "invalid HCL",
			pipeline: `node "a" {`,
			contains: "failed to parse",
		},
		{
			name: "unknown link target",
			pipeline: `
node "a" "integer_constant" {
  link {
    output = "value"
    target = "ghost"
    input  = "value"
  }
}
`,
			contains: "unknown node 'ghost'",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := harness.Run(t, map[string]string{"main.hcl": tc.pipeline}, app.Config{})
			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), "application startup panicked")
			assert.Contains(t, result.Err.Error(), tc.contains)
		})
	}
}

func TestErrorHandling_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	result := harness.Run(t, map[string]string{"main.hcl": `node "a" "no_such_node" {}`}, app.Config{})
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unknown node identifier 'no_such_node'")
}
