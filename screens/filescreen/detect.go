// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/filescreen/detect.go
// Summary: Language detection for the source viewer.

package filescreen

import (
	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates limits the content classifier to common languages.
var classifierCandidates = []string{
	"Go", "Python", "JavaScript", "TypeScript", "Rust", "C", "C++", "Java",
	"Shell", "Ruby", "YAML", "JSON", "Markdown", "SQL", "Lua",
}

type detection struct {
	name   string
	method string
}

// detectLanguage tries the file name first, then the shebang, then the
// content classifier. Extensions shared by several languages are resolved
// from the content.
func detectLanguage(filename string, content []byte) detection {
	if filename != "" {
		if lang, _ := enry.GetLanguageByFilename(filename); lang != "" {
			return detection{name: lang, method: "filename"}
		}
		if lang, safe := enry.GetLanguageByExtension(filename); lang != "" {
			if safe {
				return detection{name: lang, method: "extension"}
			}
			// Shared extension: let enry's heuristics and classifier pick
			// among the candidates using the content.
			if resolved := enry.GetLanguage(filename, content); resolved != "" {
				return detection{name: resolved, method: "content"}
			}
			return detection{name: lang, method: "extension"}
		}
	}
	if lang, _ := enry.GetLanguageByShebang(content); lang != "" {
		return detection{name: lang, method: "shebang"}
	}
	if len(content) > 0 {
		if lang, _ := enry.GetLanguageByClassifier(content, classifierCandidates); lang != "" {
			return detection{name: lang, method: "classifier"}
		}
	}
	return detection{method: "none"}
}
