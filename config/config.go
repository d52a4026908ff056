package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/transita/ptdelta/core/metrics"
)

// Config is the full configuration of a report run. The file is optional:
// CLI flags cover the required report inputs and override anything set here.
type Config struct {
	Report  ReportConfig   `json:"report"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

// ReportConfig carries the analysis inputs and output locations.
type ReportConfig struct {
	// SimDir holds the replicate event files.
	SimDir string `json:"simdir"`
	// Sims is the number of replicates per perturbation value.
	Sims int `json:"sims"`
	// Out is the xlsx artifact path.
	Out string `json:"out"`
	// Baseline is the shared tripinfo baseline file (trips mode only).
	Baseline string `json:"baseline"`
	// SummaryExport optionally mirrors the summary sheet to a .csv or
	// .json file.
	SummaryExport string `json:"summary_export"`
	// Values enumerates the perturbation values for stops mode. Trips
	// mode discovers values from file names instead.
	Values []ValueRange `json:"values"`
}

// SetDefaults applies sane defaults.
func (c *ReportConfig) SetDefaults() {
	if c.Baseline == "" {
		c.Baseline = filepath.Join("old_method", "tripinfo.xml")
	}
	if len(c.Values) == 0 {
		c.Values = DefaultValueRanges()
	}
}

// Validate checks the value enumeration.
func (c ReportConfig) Validate() error {
	for _, r := range c.Values {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if ext := strings.ToLower(filepath.Ext(c.SummaryExport)); c.SummaryExport != "" && ext != ".csv" && ext != ".json" {
		return fmt.Errorf("unsupported summary export format: %s", ext)
	}
	return nil
}

// ValueSet expands the configured ranges in order.
func (c ReportConfig) ValueSet() []int {
	var values []int
	for _, r := range c.Values {
		values = append(values, r.Expand()...)
	}
	return values
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Report.SetDefaults()
	cfg.Logging.SetDefaults()
	return cfg
}

// Load reads the configuration file at path, applying PTDELTA_ environment
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PTDELTA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ptdelta_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Report.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Report.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
