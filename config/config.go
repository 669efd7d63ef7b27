// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Loads and saves texelpip configuration from JSON or YAML files.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const systemConfigBase = "texelpip"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Load reads path (JSON or YAML, chosen by extension) and fills in defaults.
// An empty path searches the user config directory; a missing file is not an
// error and yields defaults only.
func Load(path string) (Config, string, error) {
	if path == "" {
		found, err := findSystemConfig()
		if err != nil {
			log.Printf("Config: Cannot resolve config dir: %v", err)
		}
		path = found
	}

	cfg := make(Config)
	if path != "" {
		loaded, exists, err := readConfig(path)
		if err != nil {
			return nil, path, fmt.Errorf("load %s: %w", path, err)
		}
		if exists {
			cfg = loaded
		}
	}
	applyDefaults(cfg)
	return cfg, path, nil
}

// Save writes cfg to path, in YAML when the extension says so.
func Save(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(map[string]interface{}(cfg))
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, true, err
	}
	if cfg == nil {
		cfg = make(Config)
	}
	return cfg, true, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
