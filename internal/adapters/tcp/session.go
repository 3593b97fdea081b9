package tcp

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/app/orch"
	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

const (
	welcomePrompt  = "Welcome to Chat Server! Please enter your username:"
	namePrompt     = "Please enter your username:"
	loginSuccess   = "Login successful! Type /help for commands."
	loginFailed    = "Login failed. Disconnecting."
	nameTakenMsg   = "Username already taken. Please choose another:"
	nameInvalidMsg = "Invalid username. Please choose another:"
	goodbyeMsg     = "Goodbye!"
	noRoomMsg      = "You are not in a room."

	helpText = `Available commands:
/help - show this help
/list - list connected users
/rooms - list rooms
/join <room> - join a room
/leave - leave the current room
/pm <user> <message> - send a private message
/history [count] - show recent room messages (default 10)
/quit - disconnect`
)

var errAuthFailed = errors.New("authentication failed")

// Session drives one connection through
// CONNECTING -> AUTHENTICATING -> ACTIVE -> DISCONNECTED.
// All of its methods run on the session's own goroutine; other
// goroutines reach it only through the channel's WriteLine.
type Session struct {
	id   core.SessionID
	ch   core.Channel
	orch *orch.Orchestrator

	loginAttempts int
	loginTimeout  time.Duration
	defaultRoom   domain.RoomName

	username domain.Username
	room     core.RoomService
}

func NewSession(id core.SessionID, ch core.Channel, o *orch.Orchestrator, attempts int, timeout time.Duration, defaultRoom domain.RoomName) *Session {
	return &Session{
		id:            id,
		ch:            ch,
		orch:          o,
		loginAttempts: attempts,
		loginTimeout:  timeout,
		defaultRoom:   defaultRoom,
	}
}

func (s *Session) User() domain.Username { return s.username }
func (s *Session) Channel() core.Channel { return s.ch }

// Run blocks until the session disconnects. The channel is always
// closed and directory/room state cleaned up on the way out.
func (s *Session) Run() {
	defer s.ch.Close()
	defer s.cleanup()

	if err := s.authenticate(); err != nil {
		log.Info().Err(err).Str("module", "adapters.tcp").Str("sid", string(s.id)).Msg("login not completed")
		return
	}

	s.orch.GlobalNotice(s.username, domain.JoinedChatNotice(s.username))
	s.joinRoom(s.defaultRoom)

	s.readLoop()
}

// authenticate reads up to loginAttempts candidate usernames. Blank or
// whitespace-only input re-prompts without consuming an attempt; an
// invalid or already-taken name consumes one. The whole phase is
// bounded by a single read deadline.
func (s *Session) authenticate() error {
	if err := s.ch.WriteLine(welcomePrompt); err != nil {
		return err
	}
	if err := s.ch.SetReadDeadline(time.Now().Add(s.loginTimeout)); err != nil {
		return err
	}

	for attempts := 0; attempts < s.loginAttempts; {
		line, err := s.ch.ReadLine()
		if err != nil {
			return err
		}
		raw := strings.TrimSpace(line)
		if raw == "" {
			if err := s.ch.WriteLine(namePrompt); err != nil {
				return err
			}
			continue
		}

		name, err := domain.ParseUsername(raw)
		if err != nil {
			attempts++
			if err := s.ch.WriteLine(nameInvalidMsg); err != nil {
				return err
			}
			continue
		}

		s.username = name
		if err := s.orch.Login(s); err != nil {
			s.username = ""
			if !errors.Is(err, app.ErrUsernameTaken) {
				return err
			}
			attempts++
			if err := s.ch.WriteLine(nameTakenMsg); err != nil {
				return err
			}
			continue
		}

		if err := s.ch.SetReadDeadline(time.Time{}); err != nil {
			return err
		}
		return s.ch.WriteLine(loginSuccess)
	}

	_ = s.ch.WriteLine(loginFailed)
	return errAuthFailed
}

func (s *Session) readLoop() {
	for {
		line, err := s.ch.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, ErrChannelClosed) {
				log.Warn().Err(err).Str("module", "adapters.tcp").Str("user", string(s.username)).Msg("read failed")
			}
			return
		}
		if strings.HasPrefix(line, "/") {
			if quit := s.handleCommand(line); quit {
				return
			}
			continue
		}
		s.handleChat(line)
	}
}

// handleChat broadcasts a plain line to the current room. With no room
// joined the line is dropped on purpose; this is documented protocol
// behavior, not an error.
func (s *Session) handleChat(line string) {
	if s.room == nil {
		return
	}
	s.orch.RoomBroadcast(s.room, s.username, line)
}

// handleCommand reports true when the session should terminate.
func (s *Session) handleCommand(line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.reply(err.Error())
		return false
	}

	switch c := cmd.(type) {
	case HelpCommand:
		s.reply(helpText)
	case ListCommand:
		s.reply("Users: " + joinNames(s.orch.Directory.Names()))
	case RoomsCommand:
		s.reply("Rooms: " + joinRooms(s.orch.Rooms.Names()))
	case JoinCommand:
		s.joinRoom(domain.RoomName(c.Room))
	case LeaveCommand:
		if s.room == nil {
			s.reply(noRoomMsg)
			return false
		}
		left := s.room.Name()
		s.orch.Leave(s.username, s.room)
		s.room = nil
		s.reply(domain.LeftRoomConfirmation(left))
	case PrivateCommand:
		if err := s.orch.Private(s.username, domain.Username(c.To), c.Text); err != nil {
			s.reply("No such user: " + c.To)
		}
	case HistoryCommand:
		s.showHistory(c.Count)
	case QuitCommand:
		s.reply(goodbyeMsg)
		return true
	case UnknownCommand:
		s.reply("Unknown command: " + c.Name)
	}
	return false
}

func (s *Session) joinRoom(name domain.RoomName) {
	s.room = s.orch.Join(s, s.room, name)
	s.reply(domain.JoinedRoomConfirmation(name))
}

func (s *Session) showHistory(count int) {
	if s.room == nil {
		s.reply(noRoomMsg)
		return
	}
	lines := s.room.History(count)
	s.reply("--- " + string(s.room.Name()) + " history ---")
	for _, line := range lines {
		s.reply(line)
	}
	s.reply("--- end of history ---")
}

// reply writes to this session only; a broken channel already
// terminates the read loop, so write failures are just logged.
func (s *Session) reply(line string) {
	if err := s.ch.WriteLine(line); err != nil {
		log.Warn().Err(err).Str("module", "adapters.tcp").Str("sid", string(s.id)).Msg("reply failed")
	}
}

// cleanup runs exactly once when Run exits. Sessions that never
// authenticated hold no shared state.
func (s *Session) cleanup() {
	if s.username == "" {
		return
	}
	if s.room != nil {
		s.orch.Leave(s.username, s.room)
		s.room = nil
	}
	s.orch.Logout(s)
	log.Info().Str("module", "adapters.tcp").Str("user", string(s.username)).Msg("session disconnected")
}

func joinNames(names []domain.Username) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}

func joinRooms(names []domain.RoomName) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}
