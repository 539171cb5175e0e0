// Package config provides simple configuration loading
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads path as YAML, substituting ${VAR} references against the
// process environment, and unmarshals the result over base. base's
// fields not present in the file are left untouched, so callers
// typically pass Default() as base to layer a config file's overrides
// on top of the module's defaults.
func Load(path string, base CLIConfig) (CLIConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	content := substituteEnvVars(string(data))

	cfg := base
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
