package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// locator finds an optional configuration file.
type locator struct {
	Path string `envconfig:"DIGENV_CONFIG"`
}

// Load builds the configuration in layers: the built in defaults, then the
// file named by DIGENV_CONFIG (read from fsys) if set, then DIGENV_*
// environment overrides. The result is validated.
func Load(fsys afero.Fs) (*Configuration, error) {
	var loc locator
	if err := envconfig.Process("", &loc); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := Default()
	if loc.Path != "" {
		if err := cfg.mergeFile(fsys, loc.Path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFile loads the defaults overlaid with a single file, without
// consulting the environment.
func LoadFile(fsys afero.Fs, path string) (*Configuration, error) {
	cfg := Default()
	if err := cfg.mergeFile(fsys, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Configuration) mergeFile(fsys afero.Fs, path string) error {
	// If given a directory, look for config.yaml inside it.
	if isDir, err := afero.IsDir(fsys, path); err == nil && isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	contents, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(contents, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
