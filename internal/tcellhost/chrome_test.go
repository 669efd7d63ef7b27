package tcellhost

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpip/pip"
)

func canvasRow(c *Canvas, y int) string {
	var b strings.Builder
	for x := 0; x < c.W; x++ {
		b.WriteRune(c.Get(x, y).Ch)
	}
	return b.String()
}

func TestDrawControlsRightAlignedAndClickable(t *testing.T) {
	ch := NewChrome()
	c := NewCanvas(40, 3, testFg, testBg)
	ch.DrawControls(c, CellRect{W: 40, H: 3}, pip.Affordance{Title: "Minimize"}, pip.Affordance{Title: "Close"})

	row := canvasRow(c, 0)
	if !strings.HasSuffix(row, " Minimize   Close ") {
		t.Fatalf("row = %q", row)
	}
	labels := ch.Labels()
	if len(labels) != 2 {
		t.Fatalf("labels = %+v", labels)
	}
	closeLabel := labels[0].Rect
	if got := ch.HitTest(closeLabel.X, 0); got != ActionClose {
		t.Fatalf("hit close = %v", got)
	}
	if got := ch.HitTest(labels[1].Rect.X+1, 0); got != ActionToggle {
		t.Fatalf("hit toggle = %v", got)
	}
	if got := ch.HitTest(0, 0); got != ActionNone {
		t.Fatalf("hit empty = %v", got)
	}
}

func TestDrawControlsTruncatesToWidth(t *testing.T) {
	ch := NewChrome()
	c := NewCanvas(12, 1, testFg, testBg)
	ch.DrawControls(c, CellRect{W: 12, H: 1}, pip.Affordance{Title: "Maximize", Icon: "⤢"}, pip.Affordance{Title: "Close"})
	for _, l := range ch.Labels() {
		if w := runewidth.StringWidth(l.Text); w > 4 {
			t.Fatalf("label %q is %d columns wide", l.Text, w)
		}
	}
}

func TestHiddenControlsAreNotClickable(t *testing.T) {
	ch := NewChrome()
	notified := 0
	ch.OnChange(func() { notified++ })
	ch.SetControlsAlpha(0.2)
	c := NewCanvas(40, 1, testFg, testBg)
	ch.DrawControls(c, CellRect{W: 40, H: 1}, pip.Affordance{Title: "Minimize"}, pip.Affordance{Title: "Close"})
	if len(ch.Labels()) != 0 {
		t.Fatalf("faint labels registered: %+v", ch.Labels())
	}
	ch.SetControlsAlpha(0)
	ch.Reset()
	ch.DrawControls(c, CellRect{W: 40, H: 1}, pip.Affordance{Title: "Minimize"}, pip.Affordance{Title: "Close"})
	if notified != 2 || len(ch.Labels()) != 0 {
		t.Fatalf("notified=%d labels=%d", notified, len(ch.Labels()))
	}
}

func TestDrawNavigationBackLabel(t *testing.T) {
	ch := NewChrome()
	c := NewCanvas(30, 2, testFg, testBg)
	ch.DrawNavigation(c, "Clock", true)
	row := canvasRow(c, 0)
	if !strings.HasPrefix(row, " ‹ Back") || !strings.Contains(row, "Clock") {
		t.Fatalf("nav row = %q", row)
	}
	if got := ch.HitTest(2, 0); got != ActionBack {
		t.Fatalf("hit back = %v", got)
	}
}

func TestParseColorReply(t *testing.T) {
	col, err := parseColorReply(11, []byte("\x1b]11;rgb:ffff/8080/0000\a"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r, g, b := col.RGB()
	if r != 0xff || g != 0x80 || b != 0 {
		t.Fatalf("colour = %d,%d,%d", r, g, b)
	}
	if _, err := parseColorReply(10, []byte("garbage")); err == nil {
		t.Fatal("expected error for garbage reply")
	}
}
