// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/desktop.go
// Summary: Terminal desktop hosting a navigation stack and floating overlays.
// Usage: Build with NewDesktop, attach a coordinator, then run the loop,
// PollInput and ForwardRefresh under one errgroup.
// Notes: Everything except PollInput and ForwardRefresh runs on the loop.

package tcellhost

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/geom"
	"github.com/framegrace/texelpip/internal/effects"
	"github.com/framegrace/texelpip/internal/loop"
	"github.com/framegrace/texelpip/pip"
)

// DesktopOptions configures a Desktop.
type DesktopOptions struct {
	Driver   ScreenDriver
	Loop     *loop.Loop
	Animator *effects.Animator
	Stack    *Stack
	// Scale is the display scale reported to the overlay engine.
	Scale  float64
	Fg, Bg tcell.Color
	// Quit is called when the user asks to leave.
	Quit func()
}

// Desktop owns the terminal and composes the stack, overlays and chrome.
type Desktop struct {
	driver   ScreenDriver
	loop     *loop.Loop
	animator *effects.Animator
	metrics  *Metrics
	root     *Root
	stack    *Stack
	chrome   *Chrome
	pointer  *Pointer
	canvas   *Canvas
	fg, bg   tcell.Color
	quit     func()

	refresh chan bool
	dirty   bool

	coord *pip.Coordinator
	onKey func(ev *tcell.EventKey) bool
}

// NewDesktop initialises the driver and wires the frame callback.
func NewDesktop(opts DesktopOptions) (*Desktop, error) {
	if err := opts.Driver.Init(); err != nil {
		return nil, err
	}
	opts.Driver.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	opts.Driver.HideCursor()
	opts.Driver.EnableMouse()

	if opts.Quit == nil {
		opts.Quit = func() {}
	}
	if opts.Stack == nil {
		opts.Stack = NewStack(true)
	}

	cols, rows := opts.Driver.Size()
	d := &Desktop{
		driver:   opts.Driver,
		loop:     opts.Loop,
		animator: opts.Animator,
		metrics:  NewMetrics(cols, rows, opts.Scale),
		root:     NewRoot(),
		stack:    opts.Stack,
		chrome:   NewChrome(),
		pointer:  NewPointer(),
		canvas:   NewCanvas(cols, rows, opts.Fg, opts.Bg),
		fg:       opts.Fg,
		bg:       opts.Bg,
		quit:     opts.Quit,
		refresh:  make(chan bool, 1),
		dirty:    true,
	}
	d.root.OnChange(d.markDirty)
	d.stack.OnChange(d.markDirty)
	d.chrome.OnChange(d.markDirty)
	d.loop.OnFrame(loop.FrameInterval, d.frame)
	return d, nil
}

func (d *Desktop) Metrics() *Metrics { return d.metrics }
func (d *Desktop) Root() *Root       { return d.root }
func (d *Desktop) Stack() *Stack     { return d.stack }
func (d *Desktop) Chrome() *Chrome   { return d.chrome }
func (d *Desktop) Pointer() *Pointer { return d.pointer }

// RefreshNotifier is handed to apps so they can request a redraw.
func (d *Desktop) RefreshNotifier() chan<- bool { return d.refresh }

// Surfaces is the factory for overlay containers.
func (d *Desktop) Surfaces() pip.SurfaceFactory {
	return NewContainer(tcell.StyleDefault.Foreground(d.fg).Background(d.bg))
}

// Coordinator returns the attached coordinator, if any.
func (d *Desktop) Coordinator() *pip.Coordinator { return d.coord }

// Attach makes c the coordinator whose affordances the desktop shows.
func (d *Desktop) Attach(c *pip.Coordinator) {
	d.coord = c
	c.Controls().SetView(d.chrome)
	c.Events().Subscribe(pip.ListenerFunc(func(pip.Event) { d.markDirty() }))
	d.markDirty()
}

// OnKey installs a hook consulted before the built-in key bindings. It
// returns true when it consumed the key.
func (d *Desktop) OnKey(fn func(ev *tcell.EventKey) bool) {
	d.onKey = fn
}

// PollInput forwards terminal events to the loop until ctx is done or the
// driver is finalised.
func (d *Desktop) PollInput(ctx context.Context) error {
	for {
		ev := d.driver.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		d.loop.Post(func() { d.HandleEvent(ev) })
	}
}

// ForwardRefresh turns app refresh requests into redraws.
func (d *Desktop) ForwardRefresh(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.refresh:
			d.loop.Post(d.markDirty)
		}
	}
}

// Close restores the terminal.
func (d *Desktop) Close() {
	d.driver.Fini()
}

// HandleEvent processes one terminal event. Must run on the loop.
func (d *Desktop) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		d.driver.Clear()
		d.metrics.Resize(cols, rows)
		d.canvas = NewCanvas(cols, rows, d.fg, d.bg)
		d.markDirty()
	case *tcell.EventKey:
		d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	}
}

func (d *Desktop) handleKey(ev *tcell.EventKey) {
	if d.onKey != nil && d.onKey(ev) {
		return
	}
	if ev.Key() == tcell.KeyCtrlC {
		d.quit()
		return
	}
	if ev.Key() == tcell.KeyEscape {
		if cancel, ok := d.pointer.Cancel(); ok && d.coord != nil {
			d.coord.Presenter().HandleDrag(cancel)
		}
		return
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q':
			d.quit()
			return
		case 'm':
			d.perform(ActionToggle)
			return
		case 'c':
			d.perform(ActionClose)
			return
		case 't':
			if d.coord != nil {
				d.coord.Controls().Tap()
			}
			return
		case 'b':
			d.perform(ActionBack)
			return
		}
	}
	if top, ok := d.stack.Top().(*AppScreen); ok {
		top.App().HandleKey(ev)
	}
}

func (d *Desktop) handleMouse(ev *tcell.EventMouse) {
	res := d.pointer.Feed(ev, d.draggable)
	switch res.Kind {
	case PointerDrag:
		if d.coord != nil {
			d.coord.Presenter().HandleDrag(res.Drag)
			d.markDirty()
		}
	case PointerClick:
		if action := d.chrome.HitTest(res.X, res.Y); action != ActionNone {
			d.perform(action)
			return
		}
		if d.coord != nil && d.coord.State() != pip.Closed {
			d.coord.Controls().Tap()
		}
	}
}

// draggable reports whether a press at (x, y) lands on the floating overlay
// away from its labels.
func (d *Desktop) draggable(x, y int) bool {
	if d.coord == nil || !d.coord.Presenter().Presented() {
		return false
	}
	if d.chrome.HitTest(x, y) != ActionNone {
		return false
	}
	hit, ok := d.root.HitTest(x, y)
	return ok && pip.Surface(hit) == d.coord.Presenter().Container()
}

func (d *Desktop) perform(action Action) {
	switch action {
	case ActionBack:
		if root := d.stack.RootController(); root != nil {
			root.Pop(true)
		}
		return
	case ActionNone:
		return
	}
	if d.coord == nil {
		return
	}
	var err error
	switch action {
	case ActionToggle:
		err = d.coord.ToggleMinimize()
	case ActionClose:
		err = d.coord.Close()
	}
	if err != nil {
		log.Printf("Desktop: %v", err)
	}
	d.markDirty()
}

func (d *Desktop) markDirty() {
	d.dirty = true
}

func (d *Desktop) frame(now time.Time) {
	if d.animator != nil && d.animator.Tick(now) {
		d.dirty = true
	}
	if d.dirty {
		d.Draw()
	}
}

// Draw composes and shows one frame. Must run on the loop.
func (d *Desktop) Draw() {
	d.dirty = false
	c := d.canvas
	c.Clear()
	d.chrome.Reset()

	body := CellRect{W: c.W, H: c.H}
	top := d.stack.Top()
	if !d.stack.NavigationHidden() {
		title := ""
		if top != nil {
			title = top.Title()
		}
		d.chrome.DrawNavigation(c, title, d.stack.Depth() > 1)
		body.Y, body.H = 1, c.H-1
	}

	if top != nil {
		if content, ok := top.Content().(*CellSurface); ok && content.Parent() == nil {
			content.SetFrame(ToPoints(body))
			content.Paint(c, geom.Position{}, 1, body)
		}
	}

	if d.coord != nil && d.coord.State() == pip.Embedded && top == d.coord.Screen() {
		primary, closer := d.coord.Affordances()
		d.chrome.DrawControls(c, body, primary, closer)
	}

	d.root.Paint(c)

	if d.coord != nil && d.coord.State() == pip.Floating && d.coord.Presenter().Presented() {
		if container, ok := d.coord.Presenter().Container().(*CellSurface); ok && container.Alpha() >= clickableAlpha {
			primary, closer := d.coord.Affordances()
			d.chrome.DrawControls(c, container.DisplayRect(geom.Position{}), primary, closer)
		}
	}

	c.Flush(d.driver)
}
