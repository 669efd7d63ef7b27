// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/clock/clock.go
// Summary: Ticking clock screen.
// Usage: Wrap with tcellhost.NewAppScreen; its uptime counter keeps running
// while the screen floats, which shows that minimizing does not recreate it.

package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/internal/tcellhost"
)

// clockApp is unexported to hide implementation details.
type clockApp struct {
	width, height int
	currentTime   string
	started       time.Time
	ticks         int
	mu            sync.RWMutex
	stop          chan struct{}
	stopOnce      sync.Once
	refreshChan   chan<- bool
	buf           [][]tcellhost.Cell
	now           func() time.Time
}

// NewClockApp creates a new clock app.
func NewClockApp() tcellhost.App {
	return newClockApp(time.Now)
}

func newClockApp(now func() time.Time) *clockApp {
	return &clockApp{
		stop:    make(chan struct{}),
		now:     now,
		started: now(),
	}
}

// HandleKey does nothing for the clock app.
func (a *clockApp) HandleKey(ev *tcell.EventKey) {}

func (a *clockApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

// Run starts a ticker to update the time every second.
func (a *clockApp) Run() error {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	a.tick()
	for {
		select {
		case <-ticker.C:
			a.tick()
			if a.refreshChan != nil {
				select {
				case a.refreshChan <- true:
				default:
				}
			}
		case <-a.stop:
			return nil
		}
	}
}

func (a *clockApp) tick() {
	a.mu.Lock()
	a.currentTime = a.now().Format("15:04:05")
	a.ticks++
	a.mu.Unlock()
}

// Stop signals the Run loop to terminate.
func (a *clockApp) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Resize stores the new dimensions.
func (a *clockApp) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

// Render draws the time and uptime centred in the buffer.
func (a *clockApp) Render() [][]tcellhost.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]tcellhost.Cell{}
	}

	if len(a.buf) != a.height || cap(a.buf[0]) != a.width {
		a.buf = make([][]tcellhost.Cell, a.height)
		for y := 0; y < a.height; y++ {
			a.buf[y] = make([]tcellhost.Cell, a.width)
		}
	}

	bg := tcell.StyleDefault.Background(tcell.NewRGBColor(0x14, 0x1e, 0x2a))
	for i := range a.buf {
		for j := range a.buf[i] {
			a.buf[i][j] = tcellhost.Cell{Ch: ' ', Style: bg}
		}
	}

	timeStyle := bg.Foreground(tcell.PaletteColor(6)).Bold(true)
	upStyle := bg.Foreground(tcell.PaletteColor(8))

	y := a.height / 2
	a.center(y-1, fmt.Sprintf("Time: %s", a.currentTime), timeStyle)
	up := a.now().Sub(a.started).Truncate(time.Second)
	a.center(y+1, fmt.Sprintf("Up %s", up), upStyle)

	return a.buf
}

func (a *clockApp) center(y int, str string, style tcell.Style) {
	if y < 0 || y >= a.height {
		return
	}
	x := (a.width - len(str)) / 2
	if x < 0 {
		x = 0
	}
	for i, ch := range str {
		if x+i < a.width {
			a.buf[y][x+i] = tcellhost.Cell{Ch: ch, Style: style}
		}
	}
}

func (a *clockApp) GetTitle() string {
	return "Clock"
}
