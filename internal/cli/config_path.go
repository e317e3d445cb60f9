package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"vireon/internal/config"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// resolveRunOutputDir picks the --output-dir override or the configured
// directory anchored at the project root.
func resolveRunOutputDir(override, specPath, configured string) (string, error) {
	if strings.TrimSpace(override) != "" {
		abs, err := filepath.Abs(strings.TrimSpace(override))
		if err != nil {
			return "", fmt.Errorf("resolve output dir: %w", err)
		}
		return abs, nil
	}
	return config.ResolveOutputDir(config.RootFromConfigPath(specPath), configured), nil
}
