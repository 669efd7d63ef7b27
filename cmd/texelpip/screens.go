// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpip/screens.go
// Summary: Builds the screen shown in the overlay from command-line flags.

package main

import (
	"fmt"
	"strings"

	"github.com/framegrace/texelpip/internal/tcellhost"
	"github.com/framegrace/texelpip/screens/clock"
	"github.com/framegrace/texelpip/screens/filescreen"
	"github.com/framegrace/texelpip/screens/ptyscreen"
)

// newScreenApp returns the app for kind: clock, pty or file.
func newScreenApp(kind, command, file string) (tcellhost.App, error) {
	switch kind {
	case "", "clock":
		return clock.NewClockApp(), nil
	case "pty":
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return nil, fmt.Errorf("pty screen needs -cmd")
		}
		return ptyscreen.New(fields[0], fields[0], fields[1:]...), nil
	case "file":
		if file == "" {
			return nil, fmt.Errorf("file screen needs -file")
		}
		app, err := filescreen.Open(file)
		if err != nil {
			return nil, err
		}
		return app, nil
	default:
		return nil, fmt.Errorf("unknown screen %q", kind)
	}
}
