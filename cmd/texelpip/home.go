// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpip/home.go
// Summary: Root screen listing key bindings and recent overlay transitions.

package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpip/internal/journal"
	"github.com/framegrace/texelpip/internal/tcellhost"
)

var homeHelp = []string{
	"texelpip",
	"",
	"  m      minimize / maximize",
	"  c      close the overlay",
	"  t      show the overlay controls",
	"  b      back",
	"  drag   move the floating overlay",
	"  q      quit",
}

type homeApp struct {
	mu         sync.Mutex
	recent     []string
	cols, rows int

	stop        chan struct{}
	stopOnce    sync.Once
	refreshChan chan<- bool
}

func newHomeApp() *homeApp {
	return &homeApp{stop: make(chan struct{})}
}

// SetRecent replaces the transition history shown under the help text.
func (h *homeApp) SetRecent(entries []journal.Entry) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("  %s  %-8s %s: %s -> %s",
			e.At.Format("15:04:05"), e.ScreenID, e.Event, e.From, e.To))
	}
	h.mu.Lock()
	h.recent = lines
	h.mu.Unlock()
	if h.refreshChan != nil {
		select {
		case h.refreshChan <- true:
		default:
		}
	}
}

func (h *homeApp) Run() error {
	<-h.stop
	return nil
}

func (h *homeApp) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *homeApp) Resize(cols, rows int) {
	h.mu.Lock()
	h.cols, h.rows = cols, rows
	h.mu.Unlock()
}

func (h *homeApp) Render() [][]tcellhost.Cell {
	h.mu.Lock()
	defer h.mu.Unlock()

	lines := append([]string{}, homeHelp...)
	if len(h.recent) > 0 {
		lines = append(lines, "", "Recent transitions:")
		lines = append(lines, h.recent...)
	}

	style := tcell.StyleDefault
	buf := make([][]tcellhost.Cell, h.rows)
	for y := range buf {
		buf[y] = make([]tcellhost.Cell, h.cols)
		for x := range buf[y] {
			buf[y][x] = tcellhost.Cell{Ch: ' ', Style: style}
		}
		if y >= len(lines) {
			continue
		}
		st := style
		if y == 0 {
			st = st.Bold(true)
		}
		x := 1
		for _, r := range lines[y] {
			w := runewidth.RuneWidth(r)
			if x+w > h.cols {
				break
			}
			buf[y][x] = tcellhost.Cell{Ch: r, Style: st}
			x += w
		}
	}
	return buf
}

func (h *homeApp) GetTitle() string { return "Home" }

func (h *homeApp) HandleKey(ev *tcell.EventKey) {}

func (h *homeApp) SetRefreshNotifier(refreshChan chan<- bool) {
	h.refreshChan = refreshChan
}
