package clock

import (
	"strings"
	"testing"
	"time"
)

func TestClockRenderDimensions(t *testing.T) {
	app := NewClockApp().(*clockApp)
	app.Resize(20, 3)
	buf := app.Render()
	if len(buf) != 3 || len(buf[0]) != 20 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}
	app.Stop()
	app.Stop()
}

func TestClockRendersTimeAndUptime(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)
	app := newClockApp(func() time.Time { return now })
	app.tick()
	now = now.Add(90 * time.Second)
	app.Resize(24, 5)

	buf := app.Render()
	var lines []string
	for _, row := range buf {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
		lines = append(lines, b.String())
	}
	if !strings.Contains(lines[1], "Time: 09:30:15") {
		t.Fatalf("time row = %q", lines[1])
	}
	if !strings.Contains(lines[3], "Up 1m30s") {
		t.Fatalf("uptime row = %q", lines[3])
	}
}

func TestClockRunStopsAndRefreshes(t *testing.T) {
	app := NewClockApp().(*clockApp)
	refresh := make(chan bool, 1)
	app.SetRefreshNotifier(refresh)
	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	select {
	case <-refresh:
	case <-time.After(3 * time.Second):
		t.Fatal("clock never requested a refresh")
	}
	app.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if app.GetTitle() != "Clock" {
		t.Fatalf("title = %q", app.GetTitle())
	}
}
