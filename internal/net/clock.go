package net

import "sync"

// Clock is a Lamport clock stamping share messages.
type Clock struct {
	mu      sync.Mutex
	counter uint64
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Observe moves the clock past a timestamp received from a peer.
func (c *Clock) Observe(ts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts > c.counter {
		c.counter = ts
	}
}

func (c *Clock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter
}
