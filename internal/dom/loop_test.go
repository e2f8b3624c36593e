package dom

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/forkify/internal/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop(logger.New(logger.LevelOff, nil))
	var got []int
	for i := range 3 {
		l.Post(func() {
			got = append(got, i)
			if i == 0 {
				l.Post(func() { got = append(got, 10) })
			}
		})
	}
	if n := l.RunPending(); n != 4 {
		t.Fatalf("expected 4 tasks, got %d", n)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 10}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopTimers(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewLoop(logger.New(logger.LevelOff, nil), WithClock(clock.Now))

	var got []string
	l.SetTimeout(2*time.Second, func() { got = append(got, "late") })
	l.SetTimeout(time.Second, func() { got = append(got, "early") })
	stopped := l.SetTimeout(time.Second, func() { got = append(got, "stopped") })
	if !stopped.Stop() {
		t.Fatal("stop should report a pending timer")
	}

	if n := l.RunPending(); n != 0 {
		t.Fatalf("no timer is due yet, ran %d", n)
	}
	clock.Advance(time.Second)
	l.RunPending()
	clock.Advance(time.Second)
	l.RunPending()

	if diff := cmp.Diff([]string{"early", "late"}, got); diff != "" {
		t.Fatalf("timer order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := NewLoop(logger.New(logger.LevelOff, nil))
	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	l.RunPending()
	if !ran {
		t.Fatal("task after a panic should still run")
	}
}

func TestLoopRunAndDo(t *testing.T) {
	l := NewLoop(logger.New(logger.LevelOff, nil))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	value := 0
	if err := l.Do(ctx, func() { value = 42 }); err != nil {
		t.Fatal(err)
	}
	if value != 42 {
		t.Fatalf("expected 42, got %d", value)
	}

	fired := make(chan struct{})
	l.SetTimeout(10*time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
