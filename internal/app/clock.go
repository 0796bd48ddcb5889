package app

import (
	"time"

	"github.com/dshills/griddrop/internal/gesture"
)

// loopClock runs sensor timers on the event loop goroutine, so delayed
// activation touches the board from the same goroutine as pointer input.
type loopClock struct {
	post   func(fn func()) error
	onDrop func(error)
}

func (c loopClock) Now() time.Time {
	return time.Now()
}

func (c loopClock) AfterFunc(d time.Duration, fn func()) gesture.Timer {
	return time.AfterFunc(d, func() {
		if err := c.post(fn); err != nil && c.onDrop != nil {
			c.onDrop(err)
		}
	})
}
