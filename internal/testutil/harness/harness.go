// Package harness runs whole pipelines through the application for
// integration tests.
package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/lazyflow/internal/app"
	"github.com/specialistvlad/lazyflow/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Result holds the outcome of one pipeline run.
type Result struct {
	// Output holds logs and everything printed by the pipeline.
	Output string
	Err    error
	App    *app.App
}

// Run writes files into a temporary directory and runs them as one
// pipeline. cfg.PipelinePath is overwritten; empty log settings default to
// debug level text logs. A panic during startup is returned as Err.
func Run(t *testing.T, files map[string]string, cfg app.Config) *Result {
	t.Helper()

	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	cfg.PipelinePath = dir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	var a *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		a = app.NewApp(out, &cfg, hcl.NewLoader())
	}()
	if panicErr != nil {
		return &Result{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	err := a.Run(context.Background())
	if os.Getenv("LAZYFLOW_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
	}
	return &Result{Output: out.String(), Err: err, App: a}
}
