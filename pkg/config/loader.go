package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads, merges, validates, and returns ready-to-use settings.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Read gateway.yaml from configDir (missing file is tolerated — built-in
//     defaults apply)
//  2. Expand environment variables
//  3. Parse YAML into Settings
//  4. Merge onto the built-in defaults (YAML overrides defaults)
//  5. Validate
func Initialize(_ context.Context, configDir string) (*Settings, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	settings, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := NewValidator(settings).ValidateAll(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("configuration initialized",
		"fast_model", settings.FastModel,
		"complex_model", settings.ComplexModel,
		"quality_threshold", settings.QualityThreshold)

	return settings, nil
}

func load(configDir string) (*Settings, error) {
	path := filepath.Join(configDir, "gateway.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// No file on disk: fall back entirely to built-in defaults.
		return DefaultSettings(), nil
	}

	data = ExpandEnv(data)

	var fromFile Settings
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	merged := DefaultSettings()
	if err := mergo.Merge(merged, fromFile, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge configuration: %w", err)
	}

	return merged, nil
}
