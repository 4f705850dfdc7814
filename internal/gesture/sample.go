package gesture

import (
	"fmt"
	"time"
)

// Action names a raw pointer sample.
type Action string

const (
	ActionDown  Action = "down"
	ActionMove  Action = "move"
	ActionUp    Action = "up"
	ActionLeave Action = "leave"
)

// Sample is one raw pointer reading on the horizontal axis.
type Sample struct {
	Action Action
	X      float64
	At     time.Time
}

// Feed dispatches a sample to the matching Tracker method.
func (t *Tracker) Feed(s Sample) (Event, bool, error) {
	switch s.Action {
	case ActionDown:
		return t.Down(s.X, s.At), true, nil
	case ActionMove:
		ev, ok := t.Move(s.X, s.At)
		return ev, ok, nil
	case ActionUp:
		ev, ok := t.Up(s.X, s.At)
		return ev, ok, nil
	case ActionLeave:
		ev, ok := t.Leave(s.X, s.At)
		return ev, ok, nil
	default:
		return Event{}, false, fmt.Errorf("unknown pointer action: %q", s.Action)
	}
}

// Flick builds a down/move/up script whose release velocity is px/ms in the
// given direction over the given number of evenly spaced moves.
func Flick(origin time.Time, velocity float64, direction int, moves int) []Sample {
	if moves < 1 {
		moves = 1
	}
	step := 10 * time.Millisecond
	dx := velocity * 10
	if direction < 0 {
		dx = -dx
	}

	samples := make([]Sample, 0, moves+2)
	samples = append(samples, Sample{Action: ActionDown, X: 0, At: origin})
	x := 0.0
	at := origin
	for i := 0; i < moves; i++ {
		x += dx
		at = at.Add(step)
		samples = append(samples, Sample{Action: ActionMove, X: x, At: at})
	}
	samples = append(samples, Sample{Action: ActionUp, X: x, At: at})
	return samples
}
