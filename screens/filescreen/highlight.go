// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/filescreen/highlight.go
// Summary: Turns source text into styled cell lines with chroma.

package filescreen

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/internal/tcellhost"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a Chroma lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// baseStyle is the style of plain text on the theme background.
func baseStyle(style *chroma.Style) tcell.Style {
	out := tcell.StyleDefault
	bg := style.Get(chroma.Background)
	if bg.Background.IsSet() {
		out = out.Background(toColor(bg.Background))
	}
	if text := style.Get(chroma.Text); text.Colour.IsSet() {
		out = out.Foreground(toColor(text.Colour))
	}
	return out
}

// highlight tokenises text and returns one cell slice per source line. Tabs
// are expanded to four spaces.
func highlight(text, lexerName string, style *chroma.Style) [][]tcellhost.Cell {
	base := baseStyle(style)
	lexer := chroma.Coalesce(getLexer(lexerName, text))

	lines := [][]tcellhost.Cell{nil}
	appendRunes := func(s string, st tcell.Style) {
		for _, r := range s {
			if r == '\n' {
				lines = append(lines, nil)
				continue
			}
			last := len(lines) - 1
			if r == '\t' {
				for i := 0; i < 4; i++ {
					lines[last] = append(lines[last], tcellhost.Cell{Ch: ' ', Style: st})
				}
				continue
			}
			lines[last] = append(lines[last], tcellhost.Cell{Ch: r, Style: st})
		}
	}

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		appendRunes(text, base)
	} else {
		for _, tok := range tokens {
			if tok.Type == chroma.EOFType {
				break
			}
			appendRunes(tok.Value, tokenStyle(style.Get(tok.Type), base))
		}
	}

	// A trailing newline does not start another line.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && strings.HasSuffix(text, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

func tokenStyle(entry chroma.StyleEntry, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
