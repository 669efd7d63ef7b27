// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copy of config maps so overrides never leak into a loaded file.

package config

// Clone returns a deep copy of cfg. Sections come back as Section values.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		if section, ok := asSection(raw); ok {
			out[name] = cloneSection(section)
			continue
		}
		out[name] = cloneValue(raw)
	}
	return out
}

// asSection accepts the map shapes a section can take. yaml.v3 decodes
// nested mappings into the outer named type, so Config shows up here too.
func asSection(raw interface{}) (Section, bool) {
	switch v := raw.(type) {
	case Section:
		return v, true
	case Config:
		return Section(v), true
	case map[string]interface{}:
		return Section(v), true
	}
	return nil, false
}

func cloneSection(s Section) Section {
	out := make(Section, len(s))
	for key, value := range s {
		out[key] = cloneValue(value)
	}
	return out
}

// cloneValue copies the nested maps and lists JSON and YAML decoding produce.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Section:
		return cloneSection(t)
	case Config:
		return Config(cloneSection(Section(t)))
	case map[string]interface{}:
		return map[string]interface{}(cloneSection(Section(t)))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
