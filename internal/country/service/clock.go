package service

import (
	"sync"
	"time"

	"countryref/internal/country/models"
)

// versionClock hands out strictly increasing version times at the precision
// the stores keep. Two writes in one process never share a CreatedAt, even
// when they share a request time.
type versionClock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *versionClock) next(now time.Time) time.Time {
	t := models.VersionTime(now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}
