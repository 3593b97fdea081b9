package tcp

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"golang.org/x/sync/semaphore"

	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/app/orch"
	"github.com/dkeye/Chat/internal/config"
	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

const serverFullMsg = "Server is full. Try again later."

// Server owns the listening socket and a bounded set of session slots.
// The accept loop never queues work: a connection past the slot limit
// is told the server is busy and closed right away.
type Server struct {
	cfg      *config.Config
	orch     *orch.Orchestrator
	registry *app.Registry

	listener net.Listener
	slots    *semaphore.Weighted
	sessions conc.WaitGroup
	running  atomic.Bool
}

func NewServer(cfg *config.Config, o *orch.Orchestrator, registry *app.Registry) *Server {
	return &Server{
		cfg:      cfg,
		orch:     o,
		registry: registry,
		slots:    semaphore.NewWeighted(cfg.MaxSessions),
	}
}

// Start binds the listening socket and launches the accept loop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.running.Store(true)
	s.sessions.Go(s.acceptLoop)
	log.Info().Str("module", "adapters.tcp").Str("addr", ln.Addr().String()).Msg("chat server started")
	return nil
}

// Addr reports the bound address; useful when the configured port is 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() {
				// listener closed during shutdown, expected
				return
			}
			log.Warn().Err(err).Str("module", "adapters.tcp").Msg("accept failed")
			continue
		}

		if !s.slots.TryAcquire(1) {
			ch := NewLineChannel(conn)
			_ = ch.WriteLine(serverFullMsg)
			ch.Close()
			log.Warn().Str("module", "adapters.tcp").Str("remote", conn.RemoteAddr().String()).Msg("connection refused, no free slots")
			continue
		}

		sid := core.SessionID(uuid.NewString())
		ch := NewLineChannel(conn)
		sess := NewSession(sid, ch, s.orch, s.cfg.LoginAttempts, s.cfg.LoginTimeout, domain.RoomName(s.cfg.DefaultRoom))
		s.registry.Bind(sid, ch)
		log.Info().Str("module", "adapters.tcp").Str("sid", string(sid)).Str("remote", conn.RemoteAddr().String()).Msg("connection accepted")

		s.sessions.Go(func() {
			defer s.slots.Release(1)
			defer s.registry.Unbind(sid)
			sess.Run()
		})
	}
}

// Stop closes the listener, force-disconnects every live session and
// waits for their goroutines up to the context deadline.
func (s *Server) Stop(ctx context.Context) {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	if err := s.listener.Close(); err != nil {
		log.Warn().Err(err).Str("module", "adapters.tcp").Msg("listener close failed")
	}

	closed := s.registry.CloseAll()
	log.Info().Str("module", "adapters.tcp").Int("sessions", closed).Msg("disconnecting live sessions")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if r := s.sessions.WaitAndRecover(); r != nil {
			log.Error().Str("module", "adapters.tcp").Str("panic", r.String()).Msg("session goroutine panicked")
		}
	}()

	select {
	case <-done:
		log.Info().Str("module", "adapters.tcp").Msg("all sessions drained")
	case <-ctx.Done():
		log.Warn().Str("module", "adapters.tcp").Msg("shutdown grace period expired")
	}
}
