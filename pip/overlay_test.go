package pip

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/framegrace/texelpip/geom"
)

func near(a, b geom.Position) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func newPresenter(root *fakeRoot, loop *fakeLoop, scale float64) *OverlayPresenter {
	return NewOverlayPresenter(root, SurfaceFactoryFunc(func() Surface { return newTestSurface("overlay") }),
		fakeMetrics{bounds: geom.Bounds{Width: 400, Height: 800}, scale: scale}, loop, DefaultGeometry())
}

func TestPresentFromPlacesOverlayBottomRight(t *testing.T) {
	root := &fakeRoot{}
	loop := newFakeLoop()
	p := newPresenter(root, loop, 2)
	content := newTestSurface("content")

	if err := p.PresentFrom(&fakeScreen{id: "s", content: content}); err != nil {
		t.Fatalf("PresentFrom: %v", err)
	}
	frame := p.Frame()
	wantFrame := geom.Rect{Origin: geom.Position{X: 240, Y: 560}, Size: geom.Size{Width: 140, Height: 200}}
	if frame != wantFrame {
		t.Fatalf("frame = %+v, want %+v", frame, wantFrame)
	}
	if len(root.attached) != 1 || root.attached[0] != p.Container() {
		t.Fatalf("container not attached: %+v", root.attached)
	}
	if content.parent == nil || Surface(content.parent) != p.Container() {
		t.Fatal("content was not reparented into the overlay")
	}
	if content.scale != ContentScale {
		t.Fatalf("content scale = %v", content.scale)
	}
	displayed := geom.ScaleAboutCenter(content.frame, content.scale)
	local := geom.Rect{Size: frame.Size}
	if !near(displayed.Center(), local.Center()) || !near(geom.Position{X: displayed.Size.Width, Y: displayed.Size.Height}, geom.Position{X: local.Size.Width, Y: local.Size.Height}) {
		t.Fatalf("displayed center %+v, want %+v", displayed.Center(), local.Center())
	}
	if p.Container().Alpha() != 0 {
		t.Fatalf("overlay should start transparent, alpha = %v", p.Container().Alpha())
	}
	loop.Advance(FadeAnimation.Duration)
	if p.Container().Alpha() != 1 {
		t.Fatalf("alpha after fade = %v", p.Container().Alpha())
	}
}

func TestPresentFromWithoutContent(t *testing.T) {
	root := &fakeRoot{}
	p := newPresenter(root, newFakeLoop(), 1)
	err := p.PresentFrom(&fakeScreen{id: "empty"})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
	if p.Presented() || len(root.attached) != 0 {
		t.Fatal("presenter mutated state on failed present")
	}
}

func TestDismissDetachesOnlyAfterFade(t *testing.T) {
	root := &fakeRoot{}
	loop := newFakeLoop()
	p := newPresenter(root, loop, 1)
	content := newTestSurface("content")
	if err := p.PresentFrom(&fakeScreen{id: "s", content: content}); err != nil {
		t.Fatal(err)
	}
	loop.Advance(time.Second)

	p.Dismiss()
	if content.radius != 0 {
		t.Fatalf("corner radius not reset: %v", content.radius)
	}
	if loop.Running() != 1 {
		t.Fatalf("dismiss did not start a fade, running = %d", loop.Running())
	}
	loop.Advance(FadeAnimation.Duration / 2)
	if len(root.attached) != 1 || !p.Presented() {
		t.Fatal("overlay detached before fade completed")
	}
	if a := p.Container().Alpha(); a <= 0 || a >= 1 {
		t.Fatalf("mid-fade alpha = %v", a)
	}
	loop.Advance(FadeAnimation.Duration / 2)
	if len(root.attached) != 0 || p.Presented() {
		t.Fatal("overlay still attached after fade")
	}
	if got := root.log; len(got) != 2 || got[0] != "attach" || got[1] != "detach" {
		t.Fatalf("root log = %v", got)
	}
}

func TestDismissWithoutPresentIsNoop(t *testing.T) {
	loop := newFakeLoop()
	p := newPresenter(&fakeRoot{}, loop, 1)
	p.Dismiss()
	if loop.Running() != 0 {
		t.Fatal("dismiss animated with nothing presented")
	}
}

func TestRepresentDuringDismissKeepsOverlay(t *testing.T) {
	root := &fakeRoot{}
	loop := newFakeLoop()
	p := newPresenter(root, loop, 1)
	screen := &fakeScreen{id: "s", content: newTestSurface("content")}
	if err := p.PresentFrom(screen); err != nil {
		t.Fatal(err)
	}
	loop.Advance(time.Second)
	p.Dismiss()
	loop.Advance(100 * time.Millisecond)
	if err := p.PresentFrom(screen); err != nil {
		t.Fatal(err)
	}
	loop.Advance(time.Second)
	if !p.Presented() || len(root.attached) != 1 {
		t.Fatal("stale dismiss completion detached the re-presented overlay")
	}
}

func TestDismissDuringPresentFadeContinuesFromCurrentAlpha(t *testing.T) {
	root := &fakeRoot{}
	loop := newFakeLoop()
	p := newPresenter(root, loop, 1)
	if err := p.PresentFrom(&fakeScreen{id: "s", content: newTestSurface("content")}); err != nil {
		t.Fatal(err)
	}
	loop.Advance(100 * time.Millisecond)
	before := p.Container().Alpha()
	if before <= 0 || before >= 1 {
		t.Fatalf("present fade alpha = %v", before)
	}

	p.Dismiss()
	if a := p.Container().Alpha(); a != before {
		t.Fatalf("dismiss jumped alpha from %v to %v", before, a)
	}
	loop.Advance(FadeAnimation.Duration / 2)
	if a := p.Container().Alpha(); a >= before || a <= 0 {
		t.Fatalf("alpha mid dismiss = %v, want below %v", a, before)
	}
	loop.Advance(FadeAnimation.Duration)
	if p.Presented() || len(root.attached) != 0 {
		t.Fatal("overlay still attached after dismiss")
	}
}

func TestRepresentDuringDismissContinuesFromCurrentAlpha(t *testing.T) {
	loop := newFakeLoop()
	p := newPresenter(&fakeRoot{}, loop, 1)
	screen := &fakeScreen{id: "s", content: newTestSurface("content")}
	if err := p.PresentFrom(screen); err != nil {
		t.Fatal(err)
	}
	loop.Advance(time.Second)
	p.Dismiss()
	loop.Advance(100 * time.Millisecond)
	before := p.Container().Alpha()

	if err := p.PresentFrom(screen); err != nil {
		t.Fatal(err)
	}
	if a := p.Container().Alpha(); a != before {
		t.Fatalf("re-present jumped alpha from %v to %v", before, a)
	}
	loop.Advance(time.Second)
	if a := p.Container().Alpha(); a != 1 {
		t.Fatalf("alpha after re-present = %v", a)
	}
}
