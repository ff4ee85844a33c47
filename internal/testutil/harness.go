package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/staticpipe/internal/app"
	hclload "github.com/specialistvlad/staticpipe/internal/hcl"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Pipeline is nil when resolution failed.
	Pipeline *recon.Pipeline
}

// Harness describes one integration test run.
type Harness struct {
	// Files maps paths relative to the test directory to their content.
	Files map[string]string
	// Reserved names are passed to the resolver.
	Reserved []string
	// Modules replace the core modules when non-empty.
	Modules []registry.Module
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, h Harness) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, h)
}

// RunIntegrationTestWithContext writes the description files to a temporary
// directory, builds the application over it and resolves the pipeline.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, h Harness) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range h.Files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:     []string{tmpDir},
		LogLevel:  "debug",
		LogFormat: "text",
		Reserved:  h.Reserved,
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(&bytes.Buffer{}, logBuffer, cfg, hclload.NewLoader(), h.Modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	p, runErr := testApp.Resolve(ctx)

	if os.Getenv("STATICPIPE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Pipeline:  p,
	}
}
