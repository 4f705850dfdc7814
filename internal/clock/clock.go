// Package clock drives the simulation at the rendering cadence.
//
// A Source delivers the elapsed time since its previous tick. [Ticker]
// reads the wall clock; [Manual] delivers fixed steps on demand so tests and
// headless runs are reproducible.
package clock

import (
	"sync"
	"time"
)

// DefaultRate is the nominal frame rate in ticks per second.
const DefaultRate = 60

type Source interface {
	C() <-chan time.Duration
	Stop()
}

// Period returns the duration of one tick at rate.
func Period(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultRate
	}
	return time.Second / time.Duration(rate)
}

// Ticks converts elapsed time into tick units at rate.
func Ticks(d time.Duration, rate int) float64 {
	return float64(d) / float64(Period(rate))
}

// Ticker is a wall-clock Source.
type Ticker struct {
	ticker *time.Ticker
	out    chan time.Duration
	done   chan struct{}
	once   sync.Once
}

func NewTicker(rate int) *Ticker {
	t := &Ticker{
		ticker: time.NewTicker(Period(rate)),
		out:    make(chan time.Duration, 1),
		done:   make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *Ticker) loop() {
	last := time.Now()
	for {
		select {
		case <-t.done:
			return
		case now := <-t.ticker.C:
			elapsed := now.Sub(last)
			last = now
			// a slow reader gets one tick covering all missed frames
			select {
			case pending := <-t.out:
				elapsed += pending
			default:
			}
			t.out <- elapsed
		}
	}
}

func (t *Ticker) C() <-chan time.Duration { return t.out }

func (t *Ticker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
