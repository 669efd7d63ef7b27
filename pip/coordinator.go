// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pip/coordinator.go
// Summary: Lifecycle state machine moving a screen between embedded, floating and closed.
// Usage: One Coordinator per detachable screen; the host routes affordance taps to it.
// Notes: Embedded -> Floating -> Embedded | Closed, Embedded -> Closed. Closed is terminal.
// Invalid transitions return an error but never change state.

package pip

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/framegrace/texelpip/geom"
)

var coordinatorIDs atomic.Uint64

// Options wires a Coordinator to its collaborators. Registry, Dispatcher,
// Clock and the delays are optional.
type Options struct {
	Screen        DetachableScreen
	Host          Host
	Root          RootSurface
	Surfaces      SurfaceFactory
	Metrics       DisplayMetrics
	Scheduler     Scheduler
	Animator      Animator
	Registry      *Registry
	Dispatcher    *EventDispatcher
	Customization Customization
	Geometry      Geometry
	Clock         func() time.Time

	MaximizeDelay     time.Duration
	ControlsHideDelay time.Duration
}

// Coordinator owns the presentation lifecycle of one screen.
type Coordinator struct {
	id         uint64
	screen     DetachableScreen
	host       Host
	scheduler  Scheduler
	registry   *Registry
	dispatcher *EventDispatcher
	clock      func() time.Time
	custom     Customization
	delay      time.Duration

	presenter *OverlayPresenter
	controls  *ControlVisibilityTimer

	state     OverlayState
	retention RetentionHandle
	// pendingMaximize is the delayed reattach issued by Maximize.
	pendingMaximize CancelToken
}

// NewCoordinator creates a coordinator in the Embedded state.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = NewEventDispatcher()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MaximizeDelay <= 0 {
		opts.MaximizeDelay = MaximizeDelay
	}
	c := &Coordinator{
		id:         coordinatorIDs.Add(1),
		screen:     opts.Screen,
		host:       opts.Host,
		scheduler:  opts.Scheduler,
		registry:   opts.Registry,
		dispatcher: opts.Dispatcher,
		clock:      opts.Clock,
		custom:     opts.Customization,
		delay:      opts.MaximizeDelay,
		state:      Embedded,
	}
	c.presenter = NewOverlayPresenter(opts.Root, opts.Surfaces, opts.Metrics, opts.Animator, opts.Geometry)
	c.presenter.Drag().OnSnap(func(rest geom.Position) {
		c.dispatcher.Broadcast(Event{Type: EventSnapped, Payload: SnapPayload{ID: c.id, Rest: rest}})
	})
	c.controls = NewControlVisibilityTimer(opts.Scheduler, opts.Animator, opts.Clock)
	if opts.ControlsHideDelay > 0 {
		c.controls.SetDelay(opts.ControlsHideDelay)
	}
	c.controls.OnChange(func(visible bool) {
		c.dispatcher.Broadcast(Event{Type: EventControlsChanged, Payload: ControlsPayload{ID: c.id, Visible: visible}})
	})
	return c
}

// ID returns the coordinator's registry id.
func (c *Coordinator) ID() uint64 { return c.id }

// Screen returns the screen this coordinator manages.
func (c *Coordinator) Screen() DetachableScreen { return c.screen }

// State returns the current presentation state.
func (c *Coordinator) State() OverlayState { return c.state }

// Retained reports whether the coordinator currently holds its retention handle.
func (c *Coordinator) Retained() bool { return c.retention.Valid() }

// Presenter returns the overlay presenter.
func (c *Coordinator) Presenter() *OverlayPresenter { return c.presenter }

// Controls returns the affordance visibility timer.
func (c *Coordinator) Controls() *ControlVisibilityTimer { return c.controls }

// Events returns the dispatcher lifecycle events are broadcast on.
func (c *Coordinator) Events() *EventDispatcher { return c.dispatcher }

// MaximizePending reports whether a delayed reattach is outstanding.
func (c *Coordinator) MaximizePending() bool { return c.pendingMaximize != 0 }

// Customization returns the current affordance configuration.
func (c *Coordinator) Customization() Customization { return c.custom }

// SetCustomization replaces the affordance configuration. Flags take effect
// on the next transition.
func (c *Coordinator) SetCustomization(custom Customization) {
	c.custom = custom
}

// Affordances returns the primary (minimize or maximize) and close
// affordances for the current state.
func (c *Coordinator) Affordances() (primary, closer Affordance) {
	if c.state == Floating {
		return c.custom.Maximize, c.custom.Close
	}
	return c.custom.Minimize, c.custom.Close
}

// Load is called once the screen is first shown: it hides the host's
// navigation chrome and starts the affordance auto-hide.
func (c *Coordinator) Load() {
	if c.state == Closed {
		return
	}
	c.host.SetNavigationHidden(true)
	c.controls.Load()
}

// ToggleMinimize is the single minimize/maximize affordance.
func (c *Coordinator) ToggleMinimize() error {
	if c.state == Floating {
		return c.Maximize()
	}
	return c.Minimize()
}

// Minimize floats the screen and removes it from the host stack. The
// coordinator retains itself so it survives being popped.
func (c *Coordinator) Minimize() error {
	if err := c.checkTransition("minimize", Embedded); err != nil {
		return err
	}
	if c.screen.Content() == nil {
		log.Printf("PiP: minimize of %q aborted: %v", c.screen.ScreenID(), ErrNoContent)
		return ErrNoContent
	}

	c.host.SetNavigationHidden(c.custom.HideNavigationWhileMinimized)
	if err := c.presenter.PresentFrom(c.screen); err != nil {
		log.Printf("PiP: minimize of %q aborted: %v", c.screen.ScreenID(), err)
		return err
	}
	c.detachFromHost()
	if !c.retention.Valid() {
		c.retention = c.registry.Retain(c)
	}
	c.transition(Floating, EventMinimized)
	return nil
}

// Maximize dismisses the overlay and, after the maximize delay, pushes the
// screen back onto the host stack.
func (c *Coordinator) Maximize() error {
	if err := c.checkTransition("maximize", Floating); err != nil {
		return err
	}
	if c.pendingMaximize != 0 {
		return nil
	}
	if _, ok := c.host.Root(); !ok {
		log.Printf("PiP: maximize of %q skipped: %v", c.screen.ScreenID(), ErrHostUnavailable)
		return ErrHostUnavailable
	}

	c.presenter.Dismiss()
	var token CancelToken
	token = c.scheduler.ScheduleOnce(c.delay, func() {
		if c.pendingMaximize != token {
			return
		}
		c.pendingMaximize = 0
		c.finishMaximize()
	})
	c.pendingMaximize = token
	return nil
}

func (c *Coordinator) finishMaximize() {
	if c.state != Floating {
		return
	}
	root, ok := c.host.Root()
	if !ok {
		// The host went away while the overlay was fading; float again.
		log.Printf("PiP: reattach of %q failed: %v", c.screen.ScreenID(), ErrHostUnavailable)
		if err := c.presenter.PresentFrom(c.screen); err != nil {
			log.Printf("PiP: re-present of %q failed: %v", c.screen.ScreenID(), err)
		}
		return
	}

	c.presenter.ResetContentTransform()
	attachTo(root, c.screen)
	c.host.SetNavigationHidden(true)
	c.transition(Embedded, EventMaximized)
}

// Close dismisses the overlay, releases the retention handle and removes the
// screen from the host stack. Closing twice is a no-op.
func (c *Coordinator) Close() error {
	if c.state == Closed {
		return ErrClosed
	}
	if c.pendingMaximize != 0 {
		c.scheduler.Cancel(c.pendingMaximize)
		c.pendingMaximize = 0
	}
	c.presenter.Dismiss()
	c.release()
	c.detachFromHost()
	c.controls.Stop()
	c.transition(Closed, EventClosed)
	return nil
}

func (c *Coordinator) release() {
	if c.registry.Release(c.retention) {
		log.Printf("PiP: released coordinator %d (%s)", c.id, c.screen.ScreenID())
	}
	c.retention = RetentionHandle{}
}

func (c *Coordinator) checkTransition(op string, want OverlayState) error {
	if c.state == Closed {
		return ErrClosed
	}
	if c.state != want {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, c.state)
	}
	return nil
}

func (c *Coordinator) transition(to OverlayState, ev EventType) {
	from := c.state
	c.state = to
	c.dispatcher.Broadcast(Event{Type: ev, Payload: TransitionPayload{
		ID:       c.id,
		ScreenID: c.screen.ScreenID(),
		From:     from,
		To:       to,
		At:       c.clock(),
	}})
}

// detachFromHost pops or dismisses the screen without destroying anything.
// It is a no-op when the screen is not in the host stack.
func (c *Coordinator) detachFromHost() {
	ctrl, placement, ok := c.host.ContainerOf(c.screen)
	if !ok {
		return
	}
	switch placement {
	case PlacementPushed:
		if c.custom.PopToRootOnClose {
			ctrl.PopToRoot(false)
		} else {
			ctrl.Pop(false)
		}
	case PlacementPresented:
		ctrl.Dismiss(false)
	}
}

// attachTo pushes screen onto root when it is a navigation stack, otherwise
// onto (or over) the topmost presented controller.
func attachTo(root Controller, screen DetachableScreen) {
	if root.IsNavigation() {
		root.Push(screen, true)
		return
	}
	top := root
	for {
		next, ok := top.Presented()
		if !ok {
			break
		}
		top = next
	}
	if top.IsNavigation() {
		top.Push(screen, true)
		return
	}
	top.Present(screen, true)
}
