// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/ptyscreen/ptyscreen.go
// Summary: Screen running a command under a pseudo-terminal.
// Usage: The process keeps running and its output keeps scrolling while the
// screen floats; keys typed while embedded go to the process.
// Notes: Output is kept as a tail of plain lines. Escape sequences are
// dropped rather than emulated.

package ptyscreen

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/internal/tcellhost"
)

// DefaultScrollback is how many finished lines are kept.
const DefaultScrollback = 500

// App is a pty-backed tcellhost.App.
type App struct {
	title   string
	command string
	args    []string

	mu         sync.Mutex
	cols, rows int
	tail       *tail
	pty        *os.File
	cmd        *exec.Cmd
	exited     bool

	stop        chan struct{}
	stopOnce    sync.Once
	refreshChan chan<- bool
}

// New creates an app that will run command with args once Run is called.
func New(title, command string, args ...string) *App {
	return &App{
		title:   title,
		command: command,
		args:    args,
		cols:    80,
		rows:    24,
		tail:    newTail(DefaultScrollback),
		stop:    make(chan struct{}),
	}
}

// Run starts the process and blocks until it exits or Stop is called. A
// process that exits on its own is not an error; its status is shown.
func (a *App) Run() error {
	a.mu.Lock()
	cols, rows := a.cols, a.rows
	a.mu.Unlock()

	cmd := exec.Command(a.command, a.args...)
	cmd.Env = append(os.Environ(),
		"TERM=dumb",
		"COLUMNS="+strconv.Itoa(cols),
		"LINES="+strconv.Itoa(rows),
	)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		log.Printf("PTY: Failed to start %q: %v", a.command, err)
		return fmt.Errorf("start %s: %w", a.command, err)
	}

	a.mu.Lock()
	a.pty = ptmx
	a.cmd = cmd
	a.mu.Unlock()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				a.Feed(buf[:n])
				a.notify()
			}
			if err != nil {
				return
			}
		}
	}()

	select {
	case <-a.stop:
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		cmd.Wait()
		return nil
	case <-readDone:
	}

	werr := cmd.Wait()
	ptmx.Close()
	a.mu.Lock()
	a.exited = true
	a.tail.flush()
	if werr != nil {
		a.tail.push(fmt.Sprintf("[process exited: %v]", werr))
	} else {
		a.tail.push("[process exited]")
	}
	a.mu.Unlock()
	log.Printf("PTY: %q exited: %v", a.command, werr)
	a.notify()
	return nil
}

// Stop terminates the process.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Feed appends raw process output.
func (a *App) Feed(p []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tail.write(p)
}

// Lines returns a copy of the finished lines plus the partial last line.
func (a *App) Lines() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tail.snapshot()
}

// Exited reports whether the process has ended.
func (a *App) Exited() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exited
}

func (a *App) notify() {
	if a.refreshChan == nil {
		return
	}
	select {
	case a.refreshChan <- true:
	default:
	}
}

func (a *App) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

// Resize records the size and forwards it to the pty.
func (a *App) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols, a.rows = cols, rows
	if a.pty != nil && !a.exited {
		if err := pty.Setsize(a.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
			log.Printf("PTY: resize failed: %v", err)
		}
	}
}

// HandleKey writes the key to the process.
func (a *App) HandleKey(ev *tcell.EventKey) {
	seq := keySequence(ev)
	if seq == "" {
		return
	}
	a.mu.Lock()
	p := a.pty
	exited := a.exited
	a.mu.Unlock()
	if p == nil || exited {
		return
	}
	if _, err := p.WriteString(seq); err != nil {
		log.Printf("PTY: write failed: %v", err)
	}
}

func keySequence(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEnter:
		return "\r"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "\x7f"
	case tcell.KeyTab:
		return "\t"
	case tcell.KeyCtrlD:
		return "\x04"
	case tcell.KeyUp:
		return "\x1b[A"
	case tcell.KeyDown:
		return "\x1b[B"
	case tcell.KeyRight:
		return "\x1b[C"
	case tcell.KeyLeft:
		return "\x1b[D"
	}
	return ""
}

// Render shows the newest lines, bottom aligned.
func (a *App) Render() [][]tcellhost.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cols <= 0 || a.rows <= 0 {
		return [][]tcellhost.Cell{}
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xc8, 0xd0, 0xc0)).Background(tcell.NewRGBColor(0x0c, 0x0c, 0x0c))
	buf := make([][]tcellhost.Cell, a.rows)
	for y := range buf {
		buf[y] = make([]tcellhost.Cell, a.cols)
		for x := range buf[y] {
			buf[y][x] = tcellhost.Cell{Ch: ' ', Style: style}
		}
	}

	lines := a.tail.snapshot()
	if len(lines) > a.rows {
		lines = lines[len(lines)-a.rows:]
	}
	offset := a.rows - len(lines)
	for i, line := range lines {
		x := 0
		for _, r := range line {
			if x >= a.cols {
				break
			}
			buf[offset+i][x] = tcellhost.Cell{Ch: r, Style: style}
			x++
		}
	}
	return buf
}

func (a *App) GetTitle() string {
	return a.title
}
