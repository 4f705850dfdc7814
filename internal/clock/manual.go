package clock

import (
	"sync"
	"time"
)

// Manual is a Source advanced by hand.
type Manual struct {
	out  chan time.Duration
	done chan struct{}
	once sync.Once
}

func NewManual() *Manual {
	return &Manual{
		out:  make(chan time.Duration),
		done: make(chan struct{}),
	}
}

func (m *Manual) C() <-chan time.Duration { return m.out }

// Advance delivers d and blocks until it is received. It reports false once
// the source is stopped.
func (m *Manual) Advance(d time.Duration) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.out <- d:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manual) Stop() {
	m.once.Do(func() { close(m.done) })
}
