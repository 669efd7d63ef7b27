package tcellhost

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/pip"
)

type stubScreenDriver struct {
	width, height int
	initCalled    bool
	finiCalled    bool
	mouse         bool
	shows         int
	cells         map[[2]int]Cell
}

func newStubDriver(w, h int) *stubScreenDriver {
	return &stubScreenDriver{width: w, height: h, cells: make(map[[2]int]Cell)}
}

func (s *stubScreenDriver) Init() error {
	s.initCalled = true
	return nil
}

func (s *stubScreenDriver) Fini()                      { s.finiCalled = true }
func (s *stubScreenDriver) Size() (int, int)           { return s.width, s.height }
func (s *stubScreenDriver) SetStyle(style tcell.Style) {}
func (s *stubScreenDriver) HideCursor()                {}
func (s *stubScreenDriver) EnableMouse()               { s.mouse = true }
func (s *stubScreenDriver) Clear()                     {}
func (s *stubScreenDriver) Show()                      { s.shows++ }
func (s *stubScreenDriver) PollEvent() tcell.Event     { return nil }

func (s *stubScreenDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = Cell{Ch: mainc, Style: style}
}

func (s *stubScreenDriver) rune(x, y int) rune {
	return s.cells[[2]int{x, y}].Ch
}

func (s *stubScreenDriver) row(y int) string {
	out := make([]rune, s.width)
	for x := range out {
		out[x] = s.rune(x, y)
	}
	return string(out)
}

// fillApp renders every cell as the same rune.
type fillApp struct {
	title      string
	ch         rune
	cols, rows int
	resizes    int
	keys       []rune
}

func (a *fillApp) Run() error                     { return nil }
func (a *fillApp) Stop()                          {}
func (a *fillApp) GetTitle() string               { return a.title }
func (a *fillApp) SetRefreshNotifier(chan<- bool) {}
func (a *fillApp) HandleKey(ev *tcell.EventKey)   { a.keys = append(a.keys, ev.Rune()) }

func (a *fillApp) Resize(cols, rows int) {
	a.cols, a.rows = cols, rows
	a.resizes++
}

func (a *fillApp) Render() [][]Cell {
	buf := blankGrid(a.cols, a.rows)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x].Ch = a.ch
		}
	}
	return buf
}

// manualScheduler fires callbacks when the test advances virtual time.
type manualScheduler struct {
	now    time.Duration
	next   pip.CancelToken
	timers map[pip.CancelToken]*manualTimer
}

type manualTimer struct {
	at, period time.Duration
	fn         func()
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{timers: make(map[pip.CancelToken]*manualTimer)}
}

func (s *manualScheduler) ScheduleOnce(d time.Duration, fn func()) pip.CancelToken {
	s.next++
	s.timers[s.next] = &manualTimer{at: s.now + d, fn: fn}
	return s.next
}

func (s *manualScheduler) ScheduleRepeating(d time.Duration, fn func()) pip.CancelToken {
	s.next++
	s.timers[s.next] = &manualTimer{at: s.now + d, period: d, fn: fn}
	return s.next
}

func (s *manualScheduler) Cancel(tok pip.CancelToken) { delete(s.timers, tok) }

func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		var due []pip.CancelToken
		for tok, t := range s.timers {
			if t.at <= end {
				due = append(due, tok)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool { return s.timers[due[i]].at < s.timers[due[j]].at })
		tok := due[0]
		t := s.timers[tok]
		s.now = t.at
		if t.period > 0 {
			t.at += t.period
		} else {
			delete(s.timers, tok)
		}
		t.fn()
	}
	s.now = end
}
