package core

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Chat/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	name domain.RoomName

	mu      sync.RWMutex
	members map[domain.Username]struct{}
	history []string
	cap     int
}

func NewRoomService(name domain.RoomName) RoomService {
	return &roomImpl{
		name:    name,
		members: make(map[domain.Username]struct{}),
		cap:     domain.HistoryCapacity,
	}
}

func (r *roomImpl) Name() domain.RoomName { return r.name }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) AddMember(user domain.Username) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[user] = struct{}{}
	log.Info().Str("module", "core.room").Str("room", string(r.name)).Str("user", string(user)).Msg("member added")
}

func (r *roomImpl) RemoveMember(user domain.Username) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, user)
	log.Info().Str("module", "core.room").Str("room", string(r.name)).Str("user", string(user)).Msg("member removed")
}

func (r *roomImpl) MembersSnapshot() []domain.Username {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.members)
}

// AppendHistory keeps at most cap lines, evicting the oldest first.
func (r *roomImpl) AppendHistory(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, line)
	if len(r.history) > r.cap {
		r.history = r.history[len(r.history)-r.cap:]
	}
}

// History returns up to the last n lines, oldest-first.
// n <= 0 returns everything retained.
func (r *roomImpl) History(n int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 || n > len(r.history) {
		n = len(r.history)
	}
	out := make([]string, n)
	copy(out, r.history[len(r.history)-n:])
	return out
}
