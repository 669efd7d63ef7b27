package pip

import (
	"sort"
	"time"

	"github.com/framegrace/texelpip/geom"
)

// fakeLoop is a virtual-time scheduler and animator. Advance runs timers and
// animation completions in deadline order.
type fakeLoop struct {
	now    time.Time
	next   CancelToken
	timers map[CancelToken]*fakeTimer
	anims  []*fakeAnim
	seq    int
}

type fakeTimer struct {
	due    time.Time
	period time.Duration
	fn     func()
	seq    int
}

type fakeAnim struct {
	spec  AnimationSpec
	start time.Time
	step  func(float64)
	done  func()
	seq   int
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{
		now:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		timers: make(map[CancelToken]*fakeTimer),
	}
}

func (l *fakeLoop) Now() time.Time { return l.now }

func (l *fakeLoop) ScheduleOnce(delay time.Duration, fn func()) CancelToken {
	return l.add(delay, 0, fn)
}

func (l *fakeLoop) ScheduleRepeating(period time.Duration, fn func()) CancelToken {
	return l.add(period, period, fn)
}

func (l *fakeLoop) add(delay, period time.Duration, fn func()) CancelToken {
	l.next++
	l.seq++
	l.timers[l.next] = &fakeTimer{due: l.now.Add(delay), period: period, fn: fn, seq: l.seq}
	return l.next
}

func (l *fakeLoop) Cancel(token CancelToken) {
	delete(l.timers, token)
}

func (l *fakeLoop) Pending() int { return len(l.timers) }

func (l *fakeLoop) Animate(spec AnimationSpec, step func(float64), done func()) {
	l.seq++
	l.anims = append(l.anims, &fakeAnim{spec: spec, start: l.now, step: step, done: done, seq: l.seq})
}

func (l *fakeLoop) Running() int { return len(l.anims) }

type dueItem struct {
	at    time.Time
	seq   int
	token CancelToken
	anim  *fakeAnim
}

func (l *fakeLoop) earliest(limit time.Time) (dueItem, bool) {
	var items []dueItem
	for tok, t := range l.timers {
		if !t.due.After(limit) {
			items = append(items, dueItem{at: t.due, seq: t.seq, token: tok})
		}
	}
	for _, a := range l.anims {
		end := a.start.Add(a.spec.Duration)
		if !end.After(limit) {
			items = append(items, dueItem{at: end, seq: a.seq, anim: a})
		}
	}
	if len(items) == 0 {
		return dueItem{}, false
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.Before(items[j].at)
		}
		return items[i].seq < items[j].seq
	})
	return items[0], true
}

// Advance moves virtual time forward by d.
func (l *fakeLoop) Advance(d time.Duration) {
	limit := l.now.Add(d)
	for {
		item, ok := l.earliest(limit)
		if !ok {
			break
		}
		l.now = item.at
		if item.anim != nil {
			l.finish(item.anim)
			continue
		}
		t := l.timers[item.token]
		if t.period > 0 {
			t.due = t.due.Add(t.period)
		} else {
			delete(l.timers, item.token)
		}
		t.fn()
	}
	l.now = limit
	for _, a := range append([]*fakeAnim(nil), l.anims...) {
		p := float64(l.now.Sub(a.start)) / float64(a.spec.Duration)
		a.step(p)
	}
}

func (l *fakeLoop) finish(a *fakeAnim) {
	for i, x := range l.anims {
		if x == a {
			l.anims = append(l.anims[:i], l.anims[i+1:]...)
			break
		}
	}
	a.step(1)
	if a.done != nil {
		a.done()
	}
}

type testSurface struct {
	name     string
	frame    geom.Rect
	alpha    float64
	scale    float64
	radius   float64
	shadow   Shadow
	parent   *testSurface
	children []Surface
}

func newTestSurface(name string) *testSurface {
	return &testSurface{name: name, alpha: 1, scale: 1}
}

func (s *testSurface) Frame() geom.Rect           { return s.frame }
func (s *testSurface) SetFrame(f geom.Rect)       { s.frame = f }
func (s *testSurface) Alpha() float64             { return s.alpha }
func (s *testSurface) SetAlpha(a float64)         { s.alpha = a }
func (s *testSurface) Scale() float64             { return s.scale }
func (s *testSurface) SetScale(v float64)         { s.scale = v }
func (s *testSurface) CornerRadius() float64      { return s.radius }
func (s *testSurface) SetCornerRadius(r float64)  { s.radius = r }
func (s *testSurface) SetShadow(sh Shadow)        { s.shadow = sh }
func (s *testSurface) Children() []Surface        { return s.children }
func (s *testSurface) AddChild(child Surface) {
	c := child.(*testSurface)
	c.RemoveFromParent()
	c.parent = s
	s.children = append(s.children, c)
}
func (s *testSurface) RemoveFromParent() {
	if s.parent == nil {
		return
	}
	p := s.parent
	for i, c := range p.children {
		if c == Surface(s) {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	s.parent = nil
}

type fakeRoot struct {
	attached []Surface
	log      []string
}

func (r *fakeRoot) Attach(s Surface) {
	for _, a := range r.attached {
		if a == s {
			return
		}
	}
	r.attached = append(r.attached, s)
	r.log = append(r.log, "attach")
}

func (r *fakeRoot) Detach(s Surface) {
	for i, a := range r.attached {
		if a == s {
			r.attached = append(r.attached[:i], r.attached[i+1:]...)
			r.log = append(r.log, "detach")
			return
		}
	}
}

type fakeMetrics struct {
	bounds geom.Bounds
	scale  float64
}

func (m fakeMetrics) Bounds() geom.Bounds { return m.bounds }
func (m fakeMetrics) Scale() float64      { return m.scale }

type fakeScreen struct {
	id      string
	content Surface
}

func (s *fakeScreen) ScreenID() string { return s.id }
func (s *fakeScreen) Title() string    { return s.id }
func (s *fakeScreen) Content() Surface { return s.content }

// fakeController is a navigation stack (nav=true) or a modal controller.
type fakeController struct {
	nav       bool
	screens   []DetachableScreen
	presented *fakeController
	owner     *fakeHost
	modal     DetachableScreen
}

func (c *fakeController) IsNavigation() bool { return c.nav }

func (c *fakeController) Presented() (Controller, bool) {
	if c.presented == nil {
		return nil, false
	}
	return c.presented, true
}

func (c *fakeController) Push(s DetachableScreen, animated bool) {
	c.owner.ops = append(c.owner.ops, "push:"+s.ScreenID())
	c.screens = append(c.screens, s)
}

func (c *fakeController) Pop(animated bool) {
	c.owner.ops = append(c.owner.ops, "pop")
	if len(c.screens) > 1 {
		c.screens = c.screens[:len(c.screens)-1]
	}
}

func (c *fakeController) PopToRoot(animated bool) {
	c.owner.ops = append(c.owner.ops, "popToRoot")
	if len(c.screens) > 1 {
		c.screens = c.screens[:1]
	}
}

func (c *fakeController) Present(s DetachableScreen, animated bool) {
	c.owner.ops = append(c.owner.ops, "present:"+s.ScreenID())
	c.presented = &fakeController{owner: c.owner, modal: s}
}

func (c *fakeController) Dismiss(animated bool) {
	c.owner.ops = append(c.owner.ops, "dismiss")
	c.presented = nil
}

type fakeHost struct {
	root         *fakeController
	ops          []string
	navHidden    bool
	navHiddenLog []bool
}

func newFakeHost(nav bool, screens ...DetachableScreen) *fakeHost {
	h := &fakeHost{}
	h.root = &fakeController{nav: nav, owner: h, screens: screens}
	return h
}

func (h *fakeHost) Root() (Controller, bool) {
	if h.root == nil {
		return nil, false
	}
	return h.root, true
}

func (h *fakeHost) ContainerOf(s DetachableScreen) (Controller, Placement, bool) {
	if h.root == nil {
		return nil, 0, false
	}
	var parent *fakeController
	for c := h.root; c != nil; c = c.presented {
		for _, x := range c.screens {
			if x == s {
				return c, PlacementPushed, true
			}
		}
		if c.modal == s && parent != nil {
			return parent, PlacementPresented, true
		}
		parent = c
	}
	return nil, 0, false
}

func (h *fakeHost) SetNavigationHidden(hidden bool) {
	h.navHidden = hidden
	h.navHiddenLog = append(h.navHiddenLog, hidden)
}

func (h *fakeHost) top() DetachableScreen {
	c := h.root
	for c.presented != nil {
		c = c.presented
	}
	if c.modal != nil {
		return c.modal
	}
	if len(c.screens) == 0 {
		return nil
	}
	return c.screens[len(c.screens)-1]
}

type recordingListener struct {
	events []Event
}

func (r *recordingListener) OnEvent(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recordingListener) types() []EventType {
	out := make([]EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
