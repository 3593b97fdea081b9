// Package orch coordinates the user directory and the room registry.
// Sessions never touch either store directly; every cross-session
// effect goes through here.
package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

type Orchestrator struct {
	Directory *app.Directory
	Rooms     core.RoomFactory
}

func New(directory *app.Directory, rooms core.RoomFactory) *Orchestrator {
	return &Orchestrator{Directory: directory, Rooms: rooms}
}

// Login registers the session's username. ErrUsernameTaken means the
// caller should re-prompt; nothing was inserted.
func (o *Orchestrator) Login(sess core.MemberSession) error {
	return o.Directory.TryRegister(sess.User(), sess)
}

// Logout removes the session from the directory and tells everyone else.
func (o *Orchestrator) Logout(sess core.MemberSession) {
	o.Directory.Unregister(sess.User())
	o.GlobalNotice(sess.User(), domain.LeftChatNotice(sess.User()))
}

func (o *Orchestrator) deliver(name domain.Username, line string) {
	sess, ok := o.Directory.Get(name)
	if !ok {
		return
	}
	if err := sess.Channel().WriteLine(line); err != nil {
		log.Warn().Err(err).Str("module", "app.orch").Str("user", string(name)).Msg("delivery failed")
	}
}

// Join adds the session to the named room, leaving current first if set.
// Other members of the target room get a join notice; the joiner does not.
func (o *Orchestrator) Join(sess core.MemberSession, current core.RoomService, name domain.RoomName) core.RoomService {
	user := sess.User()
	if current != nil {
		o.Leave(user, current)
	}
	room := o.Rooms.GetOrCreate(name)
	room.AddMember(user)
	o.RoomNotice(room, user, domain.JoinedRoomNotice(user, name))
	return room
}

// Leave removes the user from the room and notifies remaining members.
func (o *Orchestrator) Leave(user domain.Username, room core.RoomService) {
	room.RemoveMember(user)
	o.RoomNotice(room, user, domain.LeftRoomNotice(user, room.Name()))
}

// RoomBroadcast formats a chat line, appends it to the room history and
// delivers it to every current member, the sender included.
func (o *Orchestrator) RoomBroadcast(room core.RoomService, from domain.Username, text string) {
	line := domain.RoomMessage(room.Name(), from, text)
	room.AppendHistory(line)
	for _, member := range room.MembersSnapshot() {
		o.deliver(member, line)
	}
}

// RoomNotice delivers line to every room member except the excluded one.
func (o *Orchestrator) RoomNotice(room core.RoomService, except domain.Username, line string) {
	for _, member := range room.MembersSnapshot() {
		if member == except {
			continue
		}
		o.deliver(member, line)
	}
}

// GlobalNotice delivers line to every directory entry except the excluded one.
func (o *Orchestrator) GlobalNotice(except domain.Username, line string) {
	for _, sess := range o.Directory.Snapshot() {
		if sess.User() == except {
			continue
		}
		if err := sess.Channel().WriteLine(line); err != nil {
			log.Warn().Err(err).Str("module", "app.orch").Str("user", string(sess.User())).Msg("delivery failed")
		}
	}
}

// Private delivers a direct message to a single recipient.
// Room state is never touched.
func (o *Orchestrator) Private(from, to domain.Username, text string) error {
	sess, ok := o.Directory.Get(to)
	if !ok {
		return app.ErrUserNotFound
	}
	return sess.Channel().WriteLine(domain.PrivateMessage(from, text))
}
