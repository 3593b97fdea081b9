package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/core"
)

// Registry tracks every accepted connection, authenticated or not, so
// shutdown can force-disconnect sessions still in the login phase.
type Registry struct {
	mu       sync.Mutex
	channels map[core.SessionID]core.Channel
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[core.SessionID]core.Channel)}
}

func (r *Registry) Bind(sid core.SessionID, ch core.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[sid] = ch
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}

// CloseAll force-closes every live channel, unblocking its session's
// pending read. Channels are closed outside the lock; Close is idempotent.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	channels := make([]core.Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		channels = append(channels, ch)
	}
	r.mu.Unlock()

	for _, ch := range channels {
		ch.Close()
	}
	return len(channels)
}
