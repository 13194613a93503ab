package config

import "visval/internal/spec"

// Default values applied by Normalize.
const (
	DefaultOutputPrefix      = "validation"
	DefaultNegativeLabel     = "negative"
	DefaultUnclassifiedLabel = "unclassified"
)

func Normalize(cfg *spec.Config) {
	if cfg.Output.Prefix == "" {
		cfg.Output.Prefix = DefaultOutputPrefix
	}
	if cfg.Labels.Negative == "" {
		cfg.Labels.Negative = DefaultNegativeLabel
	}
	if cfg.Labels.Unclassified == "" {
		cfg.Labels.Unclassified = DefaultUnclassifiedLabel
	}
}
