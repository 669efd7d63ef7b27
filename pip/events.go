// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/events.go
// Summary: Broadcasts lifecycle transitions to interested listeners.
// Usage: Hosts subscribe journals, status lines or tests to a coordinator.

package pip

import (
	"sync"
	"time"

	"github.com/framegrace/texelpip/geom"
)

// EventType defines the type of an event.
type EventType int

const (
	EventMinimized EventType = iota
	EventMaximized
	EventClosed
	// EventSnapped fires when a drag snap animation settles.
	EventSnapped
	// EventControlsChanged fires when the affordances show or hide.
	EventControlsChanged
)

func (t EventType) String() string {
	switch t {
	case EventMinimized:
		return "minimized"
	case EventMaximized:
		return "maximized"
	case EventClosed:
		return "closed"
	case EventSnapped:
		return "snapped"
	case EventControlsChanged:
		return "controls"
	default:
		return "unknown"
	}
}

// Event represents a message passed through the system.
type Event struct {
	Type    EventType
	Payload interface{}
}

// TransitionPayload accompanies minimize, maximize and close events.
type TransitionPayload struct {
	ID       uint64
	ScreenID string
	From, To OverlayState
	At       time.Time
}

// SnapPayload accompanies EventSnapped.
type SnapPayload struct {
	ID   uint64
	Rest geom.Position
}

// ControlsPayload accompanies EventControlsChanged.
type ControlsPayload struct {
	ID      uint64
	Visible bool
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnEvent(event)
	}
}
