package core

import (
	"time"

	"github.com/dkeye/Chat/internal/domain"
)

type SessionID string

// Channel abstracts a bidirectional line-oriented text stream.
// Owned by the adapter; the adapter must Close() it. Close is
// idempotent and safe from any goroutine.
type Channel interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	SetReadDeadline(t time.Time) error
	Close()
}

// MemberSession binds an authenticated user and its transport endpoint.
// This is what the directory stores and broadcasts fan out to.
type MemberSession interface {
	User() domain.Username
	Channel() Channel
}

// RoomService is the core-facing API of a room.
// It owns the membership set and history but never touches transport resources.
type RoomService interface {
	Name() domain.RoomName
	MemberCount() int
	MembersSnapshot() []domain.Username

	AddMember(user domain.Username)
	RemoveMember(user domain.Username)

	AppendHistory(line string)
	History(n int) []string
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}

// RoomFactory hands out rooms by name. Rooms are created lazily and
// live for the whole server lifetime, even once empty.
type RoomFactory interface {
	GetOrCreate(name domain.RoomName) RoomService
	Names() []domain.RoomName
	List() []RoomInfo
}
