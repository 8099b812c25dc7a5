package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Scheduled functions only run when the clock is advanced, on the
// goroutine calling Advance.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	timers      []*MockTimer
	seq         int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// AfterFunc registers f to run once the clock reaches now+d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &MockTimer{
		clock:    c,
		deadline: c.CurrentTime.Add(d),
		delay:    d,
		seq:      c.seq,
		fn:       f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing due
// timers in deadline order. Timers scheduled by a firing timer also
// fire if they fall due within the window.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.CurrentTime.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.CurrentTime = target
			c.mu.Unlock()
			return
		}
		c.removeLocked(next)
		c.CurrentTime = next.deadline
		c.mu.Unlock()

		next.fn()
	}
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// PendingTimers returns the delays of timers that have not fired or been stopped
func (c *MockClock) PendingTimers() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	delays := make([]time.Duration, 0, len(c.timers))
	for _, t := range c.timers {
		delays = append(delays, t.delay)
	}
	return delays
}

func (c *MockClock) nextDueLocked(target time.Time) *MockTimer {
	due := make([]*MockTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.deadline.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0]
}

func (c *MockClock) removeLocked(t *MockTimer) bool {
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// MockTimer is a timer registered with a MockClock
type MockTimer struct {
	clock    *MockClock
	deadline time.Time
	delay    time.Duration
	seq      int
	fn       func()
}

// Stop removes the timer if it is still pending
func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.removeLocked(t)
}
