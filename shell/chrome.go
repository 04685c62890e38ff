package shell

import "sync"

// DocTitle sets the document title shown by the host.
type DocTitle interface {
	Change(title string)
}

// Chrome holds the host chrome state.
type Chrome struct {
	mu    sync.RWMutex
	title string
}

// Change sets the document title.
func (c *Chrome) Change(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = title
}

// Current returns the document title.
func (c *Chrome) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.title
}
