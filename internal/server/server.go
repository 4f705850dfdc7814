package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/engine"
)

const defaultSendBuf = 64

// Config controls per-connection behaviour.
type Config struct {
	Engine engine.Config
	// SendBuf is the per-client outbound queue size. Zero uses a default.
	SendBuf int
	// Clock builds the tick source for each connection. Nil uses a real
	// ticker at the engine's tick rate.
	Clock func(rate int) clock.Source
}

// Server hosts one independent wheel per websocket connection.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func New(cfg Config, logger *log.Logger) (*Server, error) {
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if cfg.SendBuf <= 0 {
		cfg.SendBuf = defaultSendBuf
	}
	if cfg.Clock == nil {
		cfg.Clock = func(rate int) clock.Source { return clock.NewTicker(rate) }
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Register mounts the websocket handler on mux at path.
func (s *Server) Register(mux *http.ServeMux, path string) {
	mux.HandleFunc(path, s.ServeHTTP)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}

	logger := s.logger.With("remote_addr", r.RemoteAddr)
	sess := newSession(conn, s.cfg.SendBuf, logger)
	eng, err := engine.New(s.cfg.Engine, sess, engine.WithLogger(logger))
	if err != nil {
		logger.Error("engine init failed", "err", err)
		_ = conn.Close()
		return
	}
	sess.engine = eng
	logger.Info("client connected")

	sess.enqueue(typeInit, initData{
		Items:    s.cfg.Engine.Catalog.Items(),
		TickRate: s.cfg.Engine.TickRate,
	}, false)

	// Pumps outlive the request context, which net/http cancels when
	// ServeHTTP returns.
	ctx, cancel := context.WithCancel(context.Background())
	go sess.writePump()
	go func() {
		if err := eng.Run(ctx, s.cfg.Clock(s.cfg.Engine.TickRate)); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("tick loop ended", "err", err)
		}
	}()
	go func() {
		sess.readPump(ctx)
		cancel()
		eng.Stop()
		sess.close()
		logger.Info("client disconnected", "ticks", eng.Ticks())
	}()
}

// ListenAndServe serves the wheel endpoint at /ws until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Register(mux, "/ws")
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		_ = srv.Shutdown(context.Background())
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
