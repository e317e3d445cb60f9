package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Project layout.
const (
	ConfigDirName    = ".vireon"
	ConfigFileName   = "config.yml"
	DefaultOutputDir = ".vireon/results"
)

// ErrConfigNotFound is returned by FindConfigPath when no ancestor holds a config.
var ErrConfigNotFound = errors.New("config not found")

// ConfigDir is <root>/.vireon.
func ConfigDir(root string) string { return filepath.Join(root, ConfigDirName) }

// ConfigPath is <root>/.vireon/config.yml.
func ConfigPath(root string) string { return filepath.Join(root, ConfigDirName, ConfigFileName) }

// RootFromConfigPath maps <root>/.vireon/config.yml back to <root>. A config
// stored anywhere else is rooted at its own directory.
func RootFromConfigPath(configPath string) string {
	parent := filepath.Dir(configPath)
	if filepath.Base(parent) != ConfigDirName {
		return parent
	}
	return filepath.Dir(parent)
}

// ResolveOutputDir anchors a relative output dir at root.
func ResolveOutputDir(root, outputDir string) string {
	if filepath.IsAbs(outputDir) {
		return filepath.Clean(outputDir)
	}
	return filepath.Join(root, outputDir)
}

// FindConfigPath walks from start (the working directory when empty) towards
// the filesystem root and returns the first .vireon/config.yml it meets. A
// .vireon directory without a config stops the walk with an error.
func FindConfigPath(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		found, err := probeConfig(dir)
		if found != "" || err != nil {
			return found, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s/%s in %s or any parent", ErrConfigNotFound, ConfigDirName, ConfigFileName, start)
		}
		dir = parent
	}
}

func probeConfig(root string) (string, error) {
	path := ConfigPath(root)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", fmt.Errorf("config path %q is a directory", path)
	case err == nil:
		return path, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat config: %w", err)
	}
	if info, err := os.Stat(ConfigDir(root)); err == nil && info.IsDir() {
		return "", fmt.Errorf("%s exists but %s is missing", ConfigDir(root), ConfigFileName)
	}
	return "", nil
}
