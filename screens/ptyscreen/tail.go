// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screens/ptyscreen/tail.go
// Summary: Bounded line buffer that strips terminal escape sequences.

package ptyscreen

import (
	"unicode/utf8"
)

type escState int

const (
	stNormal escState = iota
	stEscape
	stCSI
	stOSC
	stOSCEscape
)

// tail accumulates output into at most limit finished lines plus one partial.
type tail struct {
	limit   int
	lines   []string
	cur     []rune
	pending []byte
	state   escState
	// overwrite is set by a carriage return; the next printable rune
	// restarts the line.
	overwrite bool
}

func newTail(limit int) *tail {
	if limit <= 0 {
		limit = DefaultScrollback
	}
	return &tail{limit: limit}
}

func (t *tail) write(p []byte) {
	data := p
	if len(t.pending) > 0 {
		data = append(t.pending, p...)
		t.pending = nil
	}
	for len(data) > 0 {
		if !utf8.FullRune(data) {
			t.pending = append([]byte(nil), data...)
			return
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		t.feed(r)
	}
}

func (t *tail) feed(r rune) {
	switch t.state {
	case stEscape:
		switch r {
		case '[':
			t.state = stCSI
		case ']':
			t.state = stOSC
		default:
			t.state = stNormal
		}
		return
	case stCSI:
		if r >= 0x40 && r <= 0x7e {
			t.state = stNormal
		}
		return
	case stOSC:
		switch r {
		case 0x07:
			t.state = stNormal
		case 0x1b:
			t.state = stOSCEscape
		}
		return
	case stOSCEscape:
		if r == '\\' {
			t.state = stNormal
		} else {
			t.state = stOSC
		}
		return
	}

	switch r {
	case 0x1b:
		t.state = stEscape
	case '\n':
		t.finish()
	case '\r':
		t.overwrite = true
	case '\b':
		if len(t.cur) > 0 {
			t.cur = t.cur[:len(t.cur)-1]
		}
	case '\t':
		t.restart()
		for {
			t.cur = append(t.cur, ' ')
			if len(t.cur)%8 == 0 {
				break
			}
		}
	default:
		if r >= 0x20 && r != 0x7f {
			t.restart()
			t.cur = append(t.cur, r)
		}
	}
}

func (t *tail) restart() {
	if t.overwrite {
		t.cur = t.cur[:0]
		t.overwrite = false
	}
}

// finish closes the current line.
func (t *tail) finish() {
	t.push(string(t.cur))
	t.cur = t.cur[:0]
	t.overwrite = false
}

// flush closes the current line if it holds anything.
func (t *tail) flush() {
	if len(t.cur) > 0 {
		t.finish()
	}
}

func (t *tail) push(line string) {
	t.lines = append(t.lines, line)
	if over := len(t.lines) - t.limit; over > 0 {
		t.lines = append(t.lines[:0:0], t.lines[over:]...)
	}
}

func (t *tail) snapshot() []string {
	out := make([]string, len(t.lines), len(t.lines)+1)
	copy(out, t.lines)
	if len(t.cur) > 0 {
		out = append(out, string(t.cur))
	}
	return out
}
