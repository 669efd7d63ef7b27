package filescreen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpip/internal/tcellhost"
)

var _ tcellhost.App = (*App)(nil)

func rowText(row []tcellhost.Cell) string {
	var b strings.Builder
	for _, c := range row {
		b.WriteRune(c.Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDetectLanguageByExtension(t *testing.T) {
	d := detectLanguage("main.go", []byte("package main\n"))
	if d.name != "Go" || d.method != "extension" {
		t.Fatalf("got %+v", d)
	}
}

func TestDetectLanguageResolvesSharedExtensions(t *testing.T) {
	cases := []struct {
		name, content, want string
	}{
		{"conf.yaml", "a: 1\nb:\n  - x\n", "YAML"},
		{"notes.txt", "remember the milk\n", "Text"},
	}
	for _, tc := range cases {
		d := detectLanguage(tc.name, []byte(tc.content))
		if d.name != tc.want {
			t.Errorf("%s detected as %q (%s), want %q", tc.name, d.name, d.method, tc.want)
		}
	}
}

func TestDetectLanguageByFilename(t *testing.T) {
	d := detectLanguage("Makefile", []byte("all:\n\techo hi\n"))
	if d.name != "Makefile" || d.method != "filename" {
		t.Fatalf("got %+v", d)
	}
}

func TestDetectLanguageByShebang(t *testing.T) {
	d := detectLanguage("run", []byte("#!/usr/bin/env python3\nimport os\nprint('hello')\n"))
	if d.name != "Python" || d.method != "shebang" {
		t.Fatalf("got %+v", d)
	}
}

func TestDetectLanguageByClassifier(t *testing.T) {
	src := "import os\nclass MyApp:\n    def run(self):\n        pass\n"
	d := detectLanguage("", []byte(src))
	if d.name != "Python" || d.method != "classifier" {
		t.Fatalf("got %+v", d)
	}
}

func TestDetectLanguageEmpty(t *testing.T) {
	if d := detectLanguage("", nil); d.name != "" || d.method != "none" {
		t.Fatalf("got %+v", d)
	}
}

func TestHighlightSplitsLinesAndColours(t *testing.T) {
	lines := highlight("package main\n\nfunc main() {}\n", "Go", chromaStyle(""))
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := rowText(lines[0]); got != "package main" {
		t.Fatalf("line 0 = %q", got)
	}
	if len(lines[1]) != 0 {
		t.Fatalf("blank line has %d cells", len(lines[1]))
	}
	keyword := lines[0][0].Style
	ident := lines[0][len("package ")].Style
	if keyword == ident {
		t.Fatal("keyword and identifier share a style")
	}
}

func TestHighlightExpandsTabs(t *testing.T) {
	lines := highlight("\tx", "", chromaStyle(""))
	if got := rowText(lines[0]); got != "    x" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderNumbersAndScrolls(t *testing.T) {
	var src strings.Builder
	for i := 0; i < 20; i++ {
		src.WriteString("x = 1\n")
	}
	app := NewFromSource("a.py", []byte(src.String()))
	app.Resize(20, 5)

	buf := app.Render()
	if len(buf) != 5 || len(buf[0]) != 20 {
		t.Fatalf("render size %dx%d", len(buf[0]), len(buf))
	}
	if got := rowText(buf[0]); got != " 1 x = 1" {
		t.Fatalf("first row = %q", got)
	}

	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if app.Offset() != 2 {
		t.Fatalf("offset = %d", app.Offset())
	}
	if got := rowText(app.Render()[0]); got != " 3 x = 1" {
		t.Fatalf("scrolled row = %q", got)
	}

	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone))
	if app.Offset() != 15 {
		t.Fatalf("bottom offset = %d", app.Offset())
	}
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if app.Offset() != 0 {
		t.Fatalf("offset went negative: %d", app.Offset())
	}
}

func TestTitleIncludesLanguage(t *testing.T) {
	app := NewFromSource("main.go", []byte("package main\n"))
	if app.GetTitle() != "main.go (Go)" {
		t.Fatalf("title = %q", app.GetTitle())
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	app, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if app.Language() != "YAML" {
		t.Fatalf("language = %q", app.Language())
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunReturnsAfterStop(t *testing.T) {
	app := NewFromSource("x.txt", []byte("hi"))
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	app.Stop()
	app.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
