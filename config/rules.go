package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradecoach/internal/risk"
)

// LoadRules reads the risk rule book from a YAML file. An empty path or a
// missing file yields the default thresholds; a file that exists but fails
// to parse is an error (a half-read rule book must not silently loosen
// limits). Fields omitted from the file keep their defaults.
func LoadRules(path string) (risk.Thresholds, error) {
	if path == "" {
		return risk.DefaultThresholds(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return risk.DefaultThresholds(), nil
		}
		return risk.Thresholds{}, fmt.Errorf("failed to read rules file '%s': %w", path, err)
	}

	t := risk.DefaultThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return risk.Thresholds{}, fmt.Errorf("failed to parse rules file '%s': %w", path, err)
	}
	return t, nil
}
