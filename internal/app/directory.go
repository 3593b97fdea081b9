package app

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrUserNotFound  = errors.New("user not found")
)

// Directory is the process-wide username -> session index.
// A username appears at most once; registration is an atomic
// check-and-insert, and the name is free again right after Unregister.
type Directory struct {
	mu       sync.RWMutex
	sessions map[domain.Username]core.MemberSession
}

func NewDirectory() *Directory {
	return &Directory{sessions: make(map[domain.Username]core.MemberSession)}
}

// TryRegister inserts the session under name, or fails with
// ErrUsernameTaken and no side effects. Racing callers with the same
// name see exactly one winner.
func (d *Directory) TryRegister(name domain.Username, sess core.MemberSession) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sessions[name]; ok {
		return ErrUsernameTaken
	}
	d.sessions[name] = sess
	log.Info().Str("module", "app.directory").Str("user", string(name)).Msg("registered user")
	return nil
}

func (d *Directory) Unregister(name domain.Username) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, name)
	log.Info().Str("module", "app.directory").Str("user", string(name)).Msg("unregistered user")
}

func (d *Directory) Get(name domain.Username) (core.MemberSession, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sess, ok := d.sessions[name]
	return sess, ok
}

func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}

// Names returns a sorted, weakly-consistent snapshot of registered usernames.
func (d *Directory) Names() []domain.Username {
	d.mu.RLock()
	names := lo.Keys(d.sessions)
	d.mu.RUnlock()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Snapshot returns the registered sessions at this instant.
func (d *Directory) Snapshot() []core.MemberSession {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Values(d.sessions)
}
