package spec

type Config struct {
	Version    int               `yaml:"version"`
	Endpoint   EndpointConfig    `yaml:"endpoint"`
	Input      InputConfig       `yaml:"input"`
	Output     OutputConfig      `yaml:"output"`
	Categories map[string]string `yaml:"categories"`
	Labels     LabelConfig       `yaml:"labels"`
	History    HistoryConfig     `yaml:"history"`
}

type EndpointConfig struct {
	URL            string `yaml:"url"`
	VerifyTLS      *bool  `yaml:"verify_tls"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type InputConfig struct {
	Root string `yaml:"root"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

type LabelConfig struct {
	NormalizeNegative bool   `yaml:"normalize_negative"`
	Negative          string `yaml:"negative"`
	Unclassified      string `yaml:"unclassified"`
}

type HistoryConfig struct {
	Database string `yaml:"database"`
}

// TLSVerify reports whether certificate verification is enabled.
// Unset defaults to true; disabling is an explicit opt-in.
func (e EndpointConfig) TLSVerify() bool {
	if e.VerifyTLS == nil {
		return true
	}
	return *e.VerifyTLS
}
