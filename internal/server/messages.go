package server

import (
	"encoding/json"
	"time"

	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

// Outbound message types.
const (
	typeInit          = "init"
	typeFrame         = "frame"
	typeGestureStart  = "gesture_start"
	typeGestureUpdate = "gesture_update"
	typeGestureEnd    = "gesture_end"
	typeSettle        = "settle"
	typeError         = "error"
)

// envelope is the wire format of every outbound message.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

type initData struct {
	Items    []string `json:"items"`
	TickRate int      `json:"tick_rate"`
}

type frameData struct {
	Angle float64 `json:"angle"`
}

type dragData struct {
	Velocity  float64 `json:"velocity"`
	Direction int     `json:"direction"`
	Offset    float64 `json:"offset"`
}

type windowData struct {
	Start int      `json:"start"`
	Items []string `json:"items"`
}

func newWindowData(w selection.Window) windowData {
	return windowData{Start: w.Start, Items: w.Items[:]}
}

type errorData struct {
	Message string `json:"message"`
}

// pointerEvent is an inbound client message. T is the client's timestamp
// in milliseconds; zero means "now".
type pointerEvent struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	T         float64 `json:"t"`
	Velocity  float64 `json:"velocity,omitempty"`
	Direction int     `json:"direction,omitempty"`
}

const typeFlick = "flick"

func (p pointerEvent) at() time.Time {
	if p.T == 0 || !wheel.Finite(p.T) {
		return time.Now()
	}
	return time.Unix(0, int64(p.T*float64(time.Millisecond)))
}

func (p pointerEvent) sample() gesture.Sample {
	return gesture.Sample{Action: gesture.Action(p.Type), X: p.X, At: p.at()}
}

// encode stamps the envelope with the server time it was produced at.
func encode(typ string, data any) ([]byte, error) {
	now := time.Now().UTC()
	return json.Marshal(envelope{Type: typ, Ts: &now, Data: data})
}
