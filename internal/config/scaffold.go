package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `version: 1

endpoint:
  url: %q
  verify_tls: true
  timeout_seconds: 0

input:
  root: "./testset"

output:
  dir: %q
  prefix: "validation"

# Directory name -> display label. Directories without an entry use
# their own name as the ground-truth label.
categories: {}

labels:
  normalize_negative: false
  negative: "negative"
  unclassified: "unclassified"

history:
  database: ""
`

// Scaffold writes a starter config file at the given path.
func Scaffold(configPath, endpointURL, outputDir string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	content := fmt.Sprintf(configTemplate, endpointURL, outputDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
