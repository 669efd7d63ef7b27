package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/framegrace/texelpip/pip"
)

var _ pip.Scheduler = (*Loop)(nil)

func startLoop(t *testing.T) (*Loop, func()) {
	t.Helper()
	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	return l, func() {
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v", err)
		}
	}
}

func TestScheduleOnceFiresOnLoop(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	fired := make(chan struct{})
	l.Post(func() {
		l.ScheduleOnce(5*time.Millisecond, func() { close(fired) })
	})
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback never ran")
	}

	pending := make(chan int)
	l.Post(func() { pending <- l.Pending() })
	if n := <-pending; n != 0 {
		t.Fatalf("one-shot timer still pending: %d", n)
	}
}

func TestCancelPreventsCallback(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	ran := make(chan struct{}, 1)
	l.Post(func() {
		tok := l.ScheduleOnce(10*time.Millisecond, func() { ran <- struct{}{} })
		l.Cancel(tok)
		l.Cancel(tok)
	})
	select {
	case <-ran:
		t.Fatal("cancelled callback ran")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestScheduleRepeatingUntilCancelled(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	ticks := make(chan int, 16)
	count := 0
	var tok pip.CancelToken
	l.Post(func() {
		tok = l.ScheduleRepeating(2*time.Millisecond, func() {
			count++
			ticks <- count
			if count == 3 {
				l.Cancel(tok)
			}
		})
	})
	deadline := time.After(2 * time.Second)
	for got := 0; got < 3; {
		select {
		case got = <-ticks:
		case <-deadline:
			t.Fatal("repeating callback stalled")
		}
	}
	select {
	case n := <-ticks:
		t.Fatalf("callback ran after cancel (tick %d)", n)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestFrameCallback(t *testing.T) {
	l := New(4)
	frames := make(chan time.Time, 4)
	l.OnFrame(time.Millisecond, func(now time.Time) {
		select {
		case frames <- now:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestPostAfterStopDoesNotBlock(t *testing.T) {
	l, stop := startLoop(t)
	stop()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			l.Post(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked on a stopped loop")
	}
}
