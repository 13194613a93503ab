package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"visval/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a config for correctness and referenced paths.
func Validate(cfg *spec.Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	endpoint := strings.TrimSpace(cfg.Endpoint.URL)
	if endpoint == "" {
		add("endpoint.url", "is required")
	} else if parsed, err := url.Parse(endpoint); err != nil {
		add("endpoint.url", fmt.Sprintf("invalid URL %q", endpoint))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		add("endpoint.url", fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	} else if parsed.Host == "" {
		add("endpoint.url", "host is required")
	}
	if cfg.Endpoint.TimeoutSeconds < 0 {
		add("endpoint.timeout_seconds", "must be >= 0")
	}

	if baseDir == "" {
		baseDir = "."
	}

	inputRoot := strings.TrimSpace(cfg.Input.Root)
	if inputRoot == "" {
		add("input.root", "is required")
	} else {
		rootPath := inputRoot
		if !filepath.IsAbs(rootPath) {
			rootPath = filepath.Join(baseDir, rootPath)
		}
		info, err := os.Stat(rootPath)
		if err != nil {
			add("input.root", fmt.Sprintf("path not found at %q", inputRoot))
		} else if !info.IsDir() {
			add("input.root", fmt.Sprintf("path %q is not a directory", inputRoot))
		}
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		add("output.dir", "is required")
	}
	if strings.TrimSpace(cfg.Output.Prefix) == "" {
		add("output.prefix", "is required")
	}

	for directory, label := range cfg.Categories {
		if strings.TrimSpace(directory) == "" {
			add("categories", "directory name is required")
			continue
		}
		if strings.TrimSpace(label) == "" {
			add("categories."+directory, "label is required")
		}
	}

	if cfg.Labels.NormalizeNegative {
		if strings.TrimSpace(cfg.Labels.Negative) == "" {
			add("labels.negative", "is required when normalize_negative is set")
		}
		if strings.TrimSpace(cfg.Labels.Unclassified) == "" {
			add("labels.unclassified", "is required when normalize_negative is set")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
