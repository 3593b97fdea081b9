package tcp

import (
	"errors"
	"strings"

	"github.com/spf13/cast"
)

const defaultHistoryCount = 10

// Command is the closed set of client commands. ParseCommand is the
// only producer; sessions dispatch on the concrete type.
type Command interface{ isCommand() }

type (
	HelpCommand    struct{}
	ListCommand    struct{}
	RoomsCommand   struct{}
	JoinCommand    struct{ Room string }
	LeaveCommand   struct{}
	PrivateCommand struct{ To, Text string }
	HistoryCommand struct{ Count int }
	QuitCommand    struct{}
	UnknownCommand struct{ Name string }
)

func (HelpCommand) isCommand()    {}
func (ListCommand) isCommand()    {}
func (RoomsCommand) isCommand()   {}
func (JoinCommand) isCommand()    {}
func (LeaveCommand) isCommand()   {}
func (PrivateCommand) isCommand() {}
func (HistoryCommand) isCommand() {}
func (QuitCommand) isCommand()    {}
func (UnknownCommand) isCommand() {}

// Usage errors go straight back to the caller as a wire line.
var (
	errUsageJoin = errors.New("Usage: /join <room>")
	errUsagePM   = errors.New("Usage: /pm <user> <message>")
)

// ParseCommand turns a /-prefixed line into a Command. A malformed
// argument list yields a usage error and no command; an unrecognized
// name yields UnknownCommand, which is not an error.
func ParseCommand(line string) (Command, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "/help":
		return HelpCommand{}, nil
	case "/list":
		return ListCommand{}, nil
	case "/rooms":
		return RoomsCommand{}, nil
	case "/join":
		if rest == "" {
			return nil, errUsageJoin
		}
		room, _, _ := strings.Cut(rest, " ")
		return JoinCommand{Room: room}, nil
	case "/leave":
		return LeaveCommand{}, nil
	case "/pm":
		to, text, _ := strings.Cut(rest, " ")
		text = strings.TrimSpace(text)
		if to == "" || text == "" {
			return nil, errUsagePM
		}
		return PrivateCommand{To: to, Text: text}, nil
	case "/history":
		count, err := cast.ToIntE(rest)
		if err != nil || count <= 0 {
			// non-numeric or missing count silently falls back
			count = defaultHistoryCount
		}
		return HistoryCommand{Count: count}, nil
	case "/quit":
		return QuitCommand{}, nil
	default:
		return UnknownCommand{Name: name}, nil
	}
}
