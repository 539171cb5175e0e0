// Package config defines this module's configuration surface.
package config

// CLIConfig is the root configuration for cmd/casamap, loaded by
// pkg/config/simple_loader.go's YAML path; cmd/casamap then overrides
// LogLevel from viper's CASAMAP_* environment binding and the
// --log-level flag. Zero value is a usable default.
type CLIConfig struct {
	LogLevel string        `yaml:"log_level"`
	Table    TableConfig   `yaml:"table"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// TableConfig holds a casastore fixture path and a default selection
// order (F or C). cmd/casamap does not read these fields: plan takes its
// fixture from --table and its order from --order.
type TableConfig struct {
	Path         string `yaml:"path"`
	DefaultOrder string `yaml:"default_order"`
}

// MetricsConfig holds settings for a prometheus HTTP listener.
// cmd/casamap does not read these fields and starts no listener.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration cmd/casamap runs with when no
// --config file and no CASAMAP_* environment overrides are present.
func Default() CLIConfig {
	return CLIConfig{
		LogLevel: "info",
		Table: TableConfig{
			DefaultOrder: "F",
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9090",
		},
	}
}
