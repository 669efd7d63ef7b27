// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/colors.go
// Summary: Queries the terminal's default foreground and background colours.
// Notes: Fading blends toward real colours, so the terminal defaults are
// resolved once at startup through OSC 10/11.

package tcellhost

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelpip/internal/effects"
)

// DetectDefaultColors asks the controlling terminal for its colours, falling
// back to the effects defaults when it does not answer.
func DetectDefaultColors() (tcell.Color, tcell.Color, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return effects.DefaultFg, effects.DefaultBg, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return effects.DefaultFg, effects.DefaultBg, fmt.Errorf("MakeRaw: %w", err)
	}
	defer term.Restore(int(tty.Fd()), oldState)

	query := func(code int) (tcell.Color, error) {
		seq := fmt.Sprintf("\x1b]%d;?\a", code)
		if _, err := tty.WriteString(seq); err != nil {
			return tcell.ColorDefault, err
		}
		resp := make([]byte, 0, 64)
		buf := make([]byte, 1)
		if err := tty.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
			return tcell.ColorDefault, err
		}
		for {
			n, err := tty.Read(buf)
			if err != nil {
				return tcell.ColorDefault, fmt.Errorf("read reply: %w", err)
			}
			resp = append(resp, buf[:n]...)
			if buf[0] == '\a' {
				break
			}
		}
		return parseColorReply(code, resp)
	}

	fg, err := query(10)
	if err != nil {
		fg = effects.DefaultFg
	}
	bg, err := query(11)
	if err != nil {
		bg = effects.DefaultBg
	}
	return fg, bg, nil
}

func parseColorReply(code int, resp []byte) (tcell.Color, error) {
	pattern := fmt.Sprintf(`\x1b\]%d;rgb:([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})`, code)
	m := regexp.MustCompile(pattern).FindStringSubmatch(string(resp))
	if len(m) != 4 {
		return tcell.ColorDefault, fmt.Errorf("unexpected reply: %q", resp)
	}
	channel := func(s string) int32 {
		v, _ := strconv.ParseInt(s, 16, 32)
		return int32(v >> 8)
	}
	return tcell.NewRGBColor(channel(m[1]), channel(m[2]), channel(m[3])), nil
}
