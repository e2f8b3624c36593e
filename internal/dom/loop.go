package dom

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Loop runs tasks and timers one at a time on a single goroutine. Post and
// SetTimeout are safe to call from any goroutine; everything they schedule
// runs on the loop.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	timers []*Timer
	seq    uint64
	wake   chan struct{}
	now    func() time.Time
	log    *logger.Logger
}

// LoopOption configures a loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock used for timers.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

// NewLoop creates an idle loop.
func NewLoop(log *logger.Logger, opts ...LoopOption) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		now:  time.Now,
		log:  log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Timer is a pending SetTimeout callback.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	loop    *Loop
}

// Stop cancels the timer. It reports whether the callback had not run yet.
func (t *Timer) Stop() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// SetTimeout schedules fn to run on the loop after d.
func (l *Loop) SetTimeout(d time.Duration, fn func()) *Timer {
	l.mu.Lock()
	l.seq++
	t := &Timer{due: l.now().Add(d), seq: l.seq, fn: fn, loop: l}
	l.timers = append(l.timers, t)
	sort.SliceStable(l.timers, func(i, j int) bool {
		if l.timers[i].due.Equal(l.timers[j].due) {
			return l.timers[i].seq < l.timers[j].seq
		}
		return l.timers[i].due.Before(l.timers[j].due)
	})
	l.mu.Unlock()
	l.signal()
	return t
}

// Do runs fn on the loop and waits for it to finish. The loop must be
// running.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunPending runs every queued task and due timer, including ones they
// schedule, and returns how many ran. It never blocks.
func (l *Loop) RunPending() int {
	n := 0
	for {
		fn := l.next()
		if fn == nil {
			return n
		}
		l.run(fn)
		n++
	}
}

// Run processes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()

		var fire <-chan time.Time
		var tm *time.Timer
		if wait, ok := l.nextDue(); ok {
			tm = time.NewTimer(wait)
			fire = tm.C
		}

		select {
		case <-ctx.Done():
			if tm != nil {
				tm.Stop()
			}
			return ctx.Err()
		case <-l.wake:
		case <-fire:
		}
		if tm != nil {
			tm.Stop()
		}
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		return fn
	}
	now := l.now()
	for len(l.timers) > 0 && !l.timers[0].due.After(now) {
		t := l.timers[0]
		l.timers = l.timers[1:]
		if t.stopped {
			continue
		}
		t.stopped = true
		return t.fn
	}
	return nil
}

func (l *Loop) nextDue() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for len(l.timers) > 0 && l.timers[0].stopped {
		l.timers = l.timers[1:]
	}
	if len(l.timers) == 0 {
		return 0, false
	}
	return max(l.timers[0].due.Sub(l.now()), 0), true
}

// run executes a task. A panic is logged and aborts only that task.
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("uncaught panic in event loop task: %v", r)
		}
	}()
	fn()
}
