// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/filescreen/filescreen.go
// Summary: Read-only, syntax highlighted source viewer screen.
// Usage: j/k or arrows scroll, g/G jump to the top or bottom.

package filescreen

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/internal/tcellhost"
)

// App is a source-viewer tcellhost.App.
type App struct {
	title    string
	language string
	method   string

	mu         sync.Mutex
	lines      [][]tcellhost.Cell
	base       tcell.Style
	gutter     tcell.Style
	offset     int
	cols, rows int

	stop        chan struct{}
	stopOnce    sync.Once
	refreshChan chan<- bool
}

// Open reads path and highlights it.
func Open(path string) (*App, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewFromSource(filepath.Base(path), src), nil
}

// NewFromSource highlights src, detecting its language from name and content.
func NewFromSource(name string, src []byte) *App {
	det := detectLanguage(name, src)
	style := chromaStyle("")
	base := baseStyle(style)
	log.Printf("FileScreen: %s detected as %q (%s)", name, det.name, det.method)
	return &App{
		title:    name,
		language: det.name,
		method:   det.method,
		lines:    highlight(string(src), det.name, style),
		base:     base,
		gutter:   base.Dim(true),
		stop:     make(chan struct{}),
	}
}

// Language returns the detected language name, empty when unknown.
func (a *App) Language() string { return a.language }

// Run blocks until Stop; the content is static.
func (a *App) Run() error {
	<-a.stop
	return nil
}

func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

func (a *App) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

func (a *App) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols, a.rows = cols, rows
	a.clampOffset()
}

// HandleKey scrolls the view.
func (a *App) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case ev.Key() == tcell.KeyDown || (ev.Key() == tcell.KeyRune && ev.Rune() == 'j'):
		a.offset++
	case ev.Key() == tcell.KeyUp || (ev.Key() == tcell.KeyRune && ev.Rune() == 'k'):
		a.offset--
	case ev.Key() == tcell.KeyPgDn:
		a.offset += max(a.rows-1, 1)
	case ev.Key() == tcell.KeyPgUp:
		a.offset -= max(a.rows-1, 1)
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'g':
		a.offset = 0
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'G':
		a.offset = len(a.lines)
	default:
		return
	}
	a.clampOffset()
}

func (a *App) clampOffset() {
	limit := max(len(a.lines)-a.rows, 0)
	a.offset = min(max(a.offset, 0), limit)
}

// Offset returns the first visible line.
func (a *App) Offset() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// Render draws numbered lines starting at the scroll offset.
func (a *App) Render() [][]tcellhost.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cols <= 0 || a.rows <= 0 {
		return [][]tcellhost.Cell{}
	}

	width := len(fmt.Sprint(len(a.lines))) + 1
	buf := make([][]tcellhost.Cell, a.rows)
	for y := range buf {
		buf[y] = make([]tcellhost.Cell, a.cols)
		for x := range buf[y] {
			buf[y][x] = tcellhost.Cell{Ch: ' ', Style: a.base}
		}
		idx := a.offset + y
		if idx >= len(a.lines) {
			continue
		}
		num := fmt.Sprintf("%*d ", width-1, idx+1)
		x := 0
		for _, r := range num {
			if x < a.cols {
				buf[y][x] = tcellhost.Cell{Ch: r, Style: a.gutter}
			}
			x++
		}
		for _, c := range a.lines[idx] {
			if x >= a.cols {
				break
			}
			buf[y][x] = c
			x++
		}
	}
	return buf
}

func (a *App) GetTitle() string {
	if a.language == "" {
		return a.title
	}
	return fmt.Sprintf("%s (%s)", a.title, a.language)
}
