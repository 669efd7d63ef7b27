// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelpip configuration.

package config

import (
	"os"
	"path/filepath"
)

var configExtensions = []string{".json", ".yaml", ".yml"}

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelpip"), nil
}

// DefaultPath is where a new config file is written when none exists.
func DefaultPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigBase+".json"), nil
}

// findSystemConfig returns the first existing config file in the config
// root, or the JSON default path when there is none.
func findSystemConfig() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	for _, ext := range configExtensions {
		candidate := filepath.Join(root, systemConfigBase+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return filepath.Join(root, systemConfigBase+".json"), nil
}

// DefaultJournalPath is the lifecycle journal location under the state dir.
func DefaultJournalPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "journal.db"), nil
}
