package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
)

// session is one connected client and its wheel. It is the engine's
// renderer, so callbacks arrive from both the read pump and the tick loop.
type session struct {
	conn   *websocket.Conn
	engine *engine.Engine
	logger *log.Logger

	mu        sync.Mutex
	send      chan []byte
	closed    bool
	lastAngle float64
	sentFrame bool
}

func newSession(conn *websocket.Conn, sendBuf int, logger *log.Logger) *session {
	return &session{
		conn:   conn,
		send:   make(chan []byte, sendBuf),
		logger: logger,
	}
}

func (s *session) OnFrame(deg float64) {
	s.mu.Lock()
	if s.sentFrame && deg == s.lastAngle {
		s.mu.Unlock()
		return
	}
	s.lastAngle, s.sentFrame = deg, true
	s.mu.Unlock()

	s.enqueue(typeFrame, frameData{Angle: deg}, true)
}

func (s *session) OnGestureStart() { s.enqueue(typeGestureStart, nil, false) }

// OnGestureUpdate streams drag progress. Like frames, it is droppable.
func (s *session) OnGestureUpdate(v float64, dir wheel.Direction, offset float64) {
	s.enqueue(typeGestureUpdate, dragData{Velocity: v, Direction: int(dir), Offset: offset}, true)
}

func (s *session) OnGestureEnd(w selection.Window) {
	s.enqueue(typeGestureEnd, newWindowData(w), false)
}

func (s *session) OnSettle(deg float64) { s.enqueue(typeSettle, frameData{Angle: deg}, false) }

// enqueue never blocks. Frames are dropped when the queue is full; losing
// any other message closes the session.
func (s *session) enqueue(typ string, data any, droppable bool) {
	msg, err := encode(typ, data)
	if err != nil {
		s.logger.Error("encode failed", "type", typ, "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- msg:
	default:
		if droppable {
			return
		}
		s.logger.Warn("client too slow, disconnecting", "remote_addr", s.conn.RemoteAddr())
		s.closeLocked()
	}
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *session) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logClose("write", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logClose("ping", err)
				return
			}
		}
	}
}

// readPump feeds pointer events to the engine until the client goes away.
func (s *session) readPump(ctx context.Context) {
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for ctx.Err() == nil {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logClose("read", err)
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		var ev pointerEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.enqueue(typeError, errorData{Message: "malformed event: " + err.Error()}, false)
			continue
		}
		if err := s.handle(ev); err != nil {
			if errors.Is(err, wheel.ErrStopped) {
				return
			}
			s.enqueue(typeError, errorData{Message: err.Error()}, false)
		}
	}
}

func (s *session) handle(ev pointerEvent) error {
	if ev.Type == typeFlick {
		dir := wheel.Direction(ev.Direction)
		if dir != wheel.Left {
			dir = wheel.Right
		}
		_, err := s.engine.Flick(ev.Velocity, dir)
		return err
	}
	return s.engine.Feed(ev.sample())
}

func (s *session) logClose(op string, err error) {
	if errors.Is(err, websocket.ErrCloseSent) {
		return
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		s.logger.Debug("client closed", "op", op, "code", ce.Code, "reason", ce.Text)
		return
	}
	s.logger.Debug("connection ended", "op", op, "err", err)
}
