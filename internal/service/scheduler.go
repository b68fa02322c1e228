package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// Clock abstracts time so ticks can be driven by a fake clock in
// tests.  The real scheduler polls Clock.Now against each
// subscription's deadline.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

// Now returns the current UTC time.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// TickFunc is a scheduler callback.  Callbacks run serialised on
// the scheduler's goroutine, never in parallel with each other.
type TickFunc func(now time.Time)

type subscription struct {
	name  string
	every time.Duration
	fn    TickFunc
	next  time.Time
}

// Scheduler issues periodic ticks to subscribed components.  All
// subscriptions fire from a single loop in registration order, so a
// simulation tick and a timer refresh due at the same instant
// execute one after the other, never interleaved.
type Scheduler struct {
	clock Clock

	mu   sync.Mutex
	subs []*subscription
}

// NewScheduler returns a scheduler reading time from the given
// clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Subscribe registers a callback to fire every interval.  The first
// tick is due one interval after subscription.
func (s *Scheduler) Subscribe(name string, every time.Duration, fn TickFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, &subscription{
		name:  name,
		every: every,
		fn:    fn,
		next:  s.clock.Now().Add(every),
	})
}

// Advance fires every subscription whose deadline has passed at the
// given instant and reschedules it one interval out from now.  A
// subscription fires at most once per Advance; missed intervals are
// not replayed.  Returns the number of callbacks fired.
func (s *Scheduler) Advance(now time.Time) int {
	s.mu.Lock()
	var due []*subscription
	for _, sub := range s.subs {
		if !sub.next.After(now) {
			sub.next = now.Add(sub.every)
			due = append(due, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range due {
		sub.fn(now)
	}
	return len(due)
}

// Run drives the scheduler from the clock until the context is
// cancelled, checking deadlines at the given resolution.
func (s *Scheduler) Run(ctx context.Context, resolution time.Duration) {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: stopped")
			return
		case <-ticker.C:
			s.Advance(s.clock.Now())
		}
	}
}
