// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/errors.go
// Summary: Sentinel conditions reported by the overlay engine.
// Notes: None of these are fatal; callers may log and drop them.

package pip

import "errors"

var (
	// ErrNoContent is returned when a screen has no surface to float.
	ErrNoContent = errors.New("pip: screen has no content surface")
	// ErrHostUnavailable is returned when no host controller is reachable.
	ErrHostUnavailable = errors.New("pip: host unavailable")
	// ErrInvalidTransition is returned for operations not valid in the current state.
	ErrInvalidTransition = errors.New("pip: invalid transition")
	// ErrClosed is returned for any operation on a closed coordinator.
	ErrClosed = errors.New("pip: coordinator closed")
)
