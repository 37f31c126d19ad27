package parallel

import "sync"

// ErrorCollector captures the first non-nil error reported by a group of
// concurrent workers. The zero value is ready to use. Subsequent errors are
// discarded, which matches the "first failure aborts the run" semantics of
// the summation orchestrator.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen. Nil errors are
// ignored, so workers can call it unconditionally on their return value.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first recorded error, or nil if none occurred.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
