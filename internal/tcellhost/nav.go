// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tcellhost/nav.go
// Summary: Navigation stack and modal presentation for the terminal desktop.
// Usage: Stack implements pip.Host; the desktop paints Stack.Top full screen.
// Notes: The root entry of a navigation controller is never popped. A screen
// that enters the stack takes its content surface back from any overlay.

package tcellhost

import (
	"log"

	"github.com/framegrace/texelpip/pip"
)

// Controller is a navigation stack or a controller presented modally.
type Controller struct {
	host      *Stack
	nav       bool
	screens   []pip.DetachableScreen
	modal     pip.DetachableScreen
	presented *Controller
}

// IsNavigation implements pip.Controller.
func (c *Controller) IsNavigation() bool { return c.nav }

// Presented implements pip.Controller.
func (c *Controller) Presented() (pip.Controller, bool) {
	if c.presented == nil {
		return nil, false
	}
	return c.presented, true
}

// Screens returns the pushed screens, root first.
func (c *Controller) Screens() []pip.DetachableScreen { return c.screens }

// Push implements pip.Controller.
func (c *Controller) Push(screen pip.DetachableScreen, animated bool) {
	if !c.nav {
		log.Printf("Nav: push of %q on a modal controller ignored", screen.ScreenID())
		return
	}
	reclaim(screen)
	c.screens = append(c.screens, screen)
	c.host.changed()
}

// Pop implements pip.Controller.
func (c *Controller) Pop(animated bool) {
	if len(c.screens) <= 1 {
		return
	}
	c.screens = c.screens[:len(c.screens)-1]
	c.host.changed()
}

// PopToRoot implements pip.Controller.
func (c *Controller) PopToRoot(animated bool) {
	if len(c.screens) <= 1 {
		return
	}
	c.screens = c.screens[:1]
	c.host.changed()
}

// Present implements pip.Controller. Presenting over a controller that
// already presents something stacks on the topmost one.
func (c *Controller) Present(screen pip.DetachableScreen, animated bool) {
	top := c
	for top.presented != nil {
		top = top.presented
	}
	reclaim(screen)
	top.presented = &Controller{host: c.host, modal: screen}
	c.host.changed()
}

// Dismiss implements pip.Controller: it removes what c presented.
func (c *Controller) Dismiss(animated bool) {
	if c.presented == nil {
		return
	}
	c.presented = nil
	c.host.changed()
}

func (c *Controller) top() pip.DetachableScreen {
	if c.modal != nil {
		return c.modal
	}
	if len(c.screens) == 0 {
		return nil
	}
	return c.screens[len(c.screens)-1]
}

// Stack implements pip.Host.
type Stack struct {
	root      *Controller
	navHidden bool
	onChange  func()
}

// NewStack creates a host whose root is a navigation controller holding
// the given screens, or a plain controller when nav is false.
func NewStack(nav bool, screens ...pip.DetachableScreen) *Stack {
	s := &Stack{}
	s.root = &Controller{host: s, nav: nav, screens: screens}
	return s
}

// OnChange registers a callback for any stack or chrome change.
func (s *Stack) OnChange(fn func()) {
	s.onChange = fn
}

// Root implements pip.Host.
func (s *Stack) Root() (pip.Controller, bool) {
	if s.root == nil {
		return nil, false
	}
	return s.root, true
}

// RootController returns the concrete root, or nil after Teardown.
func (s *Stack) RootController() *Controller { return s.root }

// Teardown drops the whole stack, after which Root reports unavailable.
func (s *Stack) Teardown() {
	s.root = nil
	s.changed()
}

// ContainerOf implements pip.Host.
func (s *Stack) ContainerOf(screen pip.DetachableScreen) (pip.Controller, pip.Placement, bool) {
	var parent *Controller
	for c := s.root; c != nil; c = c.presented {
		for _, x := range c.screens {
			if x == screen {
				return c, pip.PlacementPushed, true
			}
		}
		if c.modal == screen && parent != nil {
			return parent, pip.PlacementPresented, true
		}
		parent = c
	}
	return nil, 0, false
}

// SetNavigationHidden implements pip.Host.
func (s *Stack) SetNavigationHidden(hidden bool) {
	if s.navHidden == hidden {
		return
	}
	s.navHidden = hidden
	s.changed()
}

// NavigationHidden reports whether the navigation bar is hidden.
func (s *Stack) NavigationHidden() bool { return s.navHidden }

// Top returns the visible screen: the topmost modal, else the top of the
// navigation stack.
func (s *Stack) Top() pip.DetachableScreen {
	if s.root == nil {
		return nil
	}
	c := s.root
	for c.presented != nil {
		c = c.presented
	}
	return c.top()
}

// Depth is the number of pushed screens in the root controller.
func (s *Stack) Depth() int {
	if s.root == nil {
		return 0
	}
	return len(s.root.screens)
}

func (s *Stack) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// reclaim detaches the screen's content from whatever overlay held it.
func reclaim(screen pip.DetachableScreen) {
	if content := screen.Content(); content != nil {
		content.RemoveFromParent()
	}
}
