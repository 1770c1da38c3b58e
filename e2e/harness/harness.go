// Package harness provides E2E testing utilities for quill.
package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// E2EHarness is the main test orchestrator. It owns a temporary directory
// holding the files under edit, a data directory and a config file that
// points at it.
type E2EHarness struct {
	t          *testing.T
	tmpDir     string
	dataDir    string
	configPath string
	timeout    time.Duration
}

// Config configures the harness.
type Config struct {
	ExtraConfig string        // YAML appended to the generated config
	Timeout     time.Duration // Default: 5 seconds
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	tmpDir, err := os.MkdirTemp("", "quill-e2e-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	h := &E2EHarness{
		t:          t,
		tmpDir:     tmpDir,
		dataDir:    filepath.Join(tmpDir, "data"),
		configPath: filepath.Join(tmpDir, "config.yaml"),
		timeout:    cfg.Timeout,
	}

	content := "data_dir: " + h.dataDir + "\n" + cfg.ExtraConfig
	if err := os.WriteFile(h.configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Cleanup(h.cleanup)
	return h
}

func (h *E2EHarness) cleanup() {
	os.RemoveAll(h.tmpDir)
}

// TmpDir returns the temporary directory path.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// DataDir returns the data directory used by the editor under test.
func (h *E2EHarness) DataDir() string {
	return h.dataDir
}

// ConfigPath returns the generated config file.
func (h *E2EHarness) ConfigPath() string {
	return h.configPath
}

// Path returns name inside the temporary directory.
func (h *E2EHarness) Path(name string) string {
	return filepath.Join(h.tmpDir, name)
}

// WriteFile creates name in the temporary directory and returns its path.
func (h *E2EHarness) WriteFile(name, content string) string {
	h.t.Helper()
	path := h.Path(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of path.
func (h *E2EHarness) ReadFile(path string) string {
	h.t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		h.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}
