package app

import (
	"sync"
	"sync/atomic"
)

// InFlight counts downloads that are currently transferring.
// One counter is owned by the process and handed to every workflow.
// Listeners see changes in the order they happen.
type InFlight struct {
	count     atomic.Int64
	mu        sync.Mutex
	listeners []func(count int64)
}

// NewInFlight creates a counter starting at zero
func NewInFlight() *InFlight {
	return &InFlight{}
}

// OnChange registers fn to be called with the new count after every change.
// fn must not change the counter.
func (c *InFlight) OnChange(fn func(count int64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Inc marks one more download as running
func (c *InFlight) Inc() int64 {
	return c.add(1)
}

// Dec marks one download as finished
func (c *InFlight) Dec() int64 {
	return c.add(-1)
}

// Count returns the number of running downloads
func (c *InFlight) Count() int64 {
	if c == nil {
		return 0
	}
	return c.count.Load()
}

// add changes the count and notifies under one lock so the last
// notification always carries the current count
func (c *InFlight) add(delta int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.count.Add(delta)
	for _, fn := range c.listeners {
		fn(n)
	}
	return n
}
