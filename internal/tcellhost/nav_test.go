package tcellhost

import (
	"testing"

	"github.com/framegrace/texelpip/pip"
)

func TestStackContainerOf(t *testing.T) {
	home := NewAppScreen("home", &fillApp{title: "Home"})
	detail := NewAppScreen("detail", &fillApp{title: "Detail"})
	modal := NewAppScreen("modal", &fillApp{title: "Modal"})
	stack := NewStack(true, home, detail)

	ctrl, placement, ok := stack.ContainerOf(detail)
	if !ok || placement != pip.PlacementPushed || ctrl != pip.Controller(stack.RootController()) {
		t.Fatalf("pushed lookup = %v %v %v", ctrl, placement, ok)
	}

	stack.RootController().Present(modal, false)
	ctrl, placement, ok = stack.ContainerOf(modal)
	if !ok || placement != pip.PlacementPresented || ctrl != pip.Controller(stack.RootController()) {
		t.Fatalf("presented lookup = %v %v %v", ctrl, placement, ok)
	}
	if stack.Top() != pip.DetachableScreen(modal) {
		t.Fatalf("top = %v", stack.Top())
	}
	ctrl.Dismiss(false)
	if stack.Top() != pip.DetachableScreen(detail) {
		t.Fatalf("top after dismiss = %v", stack.Top())
	}
	if _, _, ok := stack.ContainerOf(modal); ok {
		t.Fatal("dismissed modal still contained")
	}
}

func TestStackNeverPopsRoot(t *testing.T) {
	home := NewAppScreen("home", &fillApp{})
	a := NewAppScreen("a", &fillApp{})
	b := NewAppScreen("b", &fillApp{})
	stack := NewStack(true, home, a, b)
	root := stack.RootController()

	root.PopToRoot(false)
	if stack.Depth() != 1 || stack.Top() != pip.DetachableScreen(home) {
		t.Fatalf("depth after popToRoot = %d", stack.Depth())
	}
	root.Pop(false)
	if stack.Depth() != 1 {
		t.Fatal("root entry popped")
	}
}

func TestPushReclaimsFloatingContent(t *testing.T) {
	home := NewAppScreen("home", &fillApp{})
	screen := NewAppScreen("s", &fillApp{})
	stack := NewStack(true, home)
	changes := 0
	stack.OnChange(func() { changes++ })

	container := NewCellSurface(nil)
	container.AddChild(screen.Content())
	stack.RootController().Push(screen, true)

	if screen.Surface().Parent() != nil || len(container.Children()) != 0 {
		t.Fatal("content still inside the overlay container")
	}
	if changes != 1 {
		t.Fatalf("changes = %d", changes)
	}
}

func TestModalControllerRejectsPush(t *testing.T) {
	modal := NewAppScreen("m", &fillApp{})
	stack := NewStack(false)
	stack.RootController().Present(modal, false)
	presented, ok := stack.RootController().Presented()
	if !ok || presented.IsNavigation() {
		t.Fatal("expected a non-navigation presented controller")
	}
	presented.Push(NewAppScreen("x", &fillApp{}), false)
	if stack.Top() != pip.DetachableScreen(modal) {
		t.Fatal("push on a modal controller changed the top screen")
	}
}

func TestTeardownMakesRootUnavailable(t *testing.T) {
	stack := NewStack(true, NewAppScreen("home", &fillApp{}))
	stack.Teardown()
	if _, ok := stack.Root(); ok {
		t.Fatal("root still available after teardown")
	}
	if stack.Top() != nil || stack.Depth() != 0 {
		t.Fatal("empty stack reports screens")
	}
}

func TestNavigationHiddenNotifiesOnChange(t *testing.T) {
	stack := NewStack(true)
	changes := 0
	stack.OnChange(func() { changes++ })
	stack.SetNavigationHidden(true)
	stack.SetNavigationHidden(true)
	stack.SetNavigationHidden(false)
	if changes != 2 || stack.NavigationHidden() {
		t.Fatalf("changes=%d hidden=%v", changes, stack.NavigationHidden())
	}
}
