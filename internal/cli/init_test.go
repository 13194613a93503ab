package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withInitInput overrides the init prompt input for a test.
func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

// TestInitScaffoldsConfig verifies init writes a starter config.
func TestInitScaffoldsConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".visval", "config.yml")
	withInitInput(t, "y\nhttp://localhost:9000/api/validate\n\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Wrote "+configPath) {
		t.Fatalf("expected wrote message, got %q", stdout.String())
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read scaffolded config: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "http://localhost:9000/api/validate") {
		t.Fatalf("expected endpoint URL in config, got %q", body)
	}
	if !strings.Contains(body, "prefix: \"validation\"") {
		t.Fatalf("expected default prefix in config, got %q", body)
	}
}

// TestInitRefusesExistingConfig verifies init does not overwrite.
func TestInitRefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".visval", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	withInitInput(t, "y\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Fatalf("expected existing config error, got %q", stderr.String())
	}
}

// TestInitCancelled verifies declining the confirmation aborts.
func TestInitCancelled(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".visval", "config.yml")
	withInitInput(t, "n\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "Init cancelled") {
		t.Fatalf("expected cancel message, got %q", stderr.String())
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, got %v", err)
	}
}

// TestAddGitignoreEntry verifies gitignore updates are idempotent.
func TestAddGitignoreEntry(t *testing.T) {
	root := t.TempDir()
	updated, err := addGitignoreEntry(root, "./results")
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if !updated {
		t.Fatalf("expected gitignore to be updated")
	}
	again, err := addGitignoreEntry(root, "./results")
	if err != nil {
		t.Fatalf("add entry again: %v", err)
	}
	if again {
		t.Fatalf("expected second add to be a no-op")
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read gitignore: %v", err)
	}
	if strings.Count(string(data), "results") != 1 {
		t.Fatalf("expected single entry, got %q", string(data))
	}
}

// TestAddGitignoreEntryRejectsOutsidePaths verifies path containment.
func TestAddGitignoreEntryRejectsOutsidePaths(t *testing.T) {
	root := t.TempDir()
	if _, err := addGitignoreEntry(root, "../elsewhere"); err == nil {
		t.Fatalf("expected error for path outside root")
	}
}
