package tcp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand_Variants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"help", "/help", HelpCommand{}},
		{"list", "/list", ListCommand{}},
		{"rooms", "/rooms", RoomsCommand{}},
		{"join", "/join random", JoinCommand{Room: "random"}},
		{"join extra tokens ignored", "/join random stuff", JoinCommand{Room: "random"}},
		{"leave", "/leave", LeaveCommand{}},
		{"pm", "/pm bob hello there", PrivateCommand{To: "bob", Text: "hello there"}},
		{"history default", "/history", HistoryCommand{Count: 10}},
		{"history explicit", "/history 25", HistoryCommand{Count: 25}},
		{"history non-numeric falls back", "/history lots", HistoryCommand{Count: 10}},
		{"history negative falls back", "/history -3", HistoryCommand{Count: 10}},
		{"quit", "/quit", QuitCommand{}},
		{"unknown", "/dance", UnknownCommand{Name: "/dance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"join without room", "/join"},
		{"join with spaces only", "/join   "},
		{"pm without message", "/pm bob"},
		{"pm without anything", "/pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.Error(t, err)
			require.Nil(t, cmd)
			require.Contains(t, err.Error(), "Usage:")
		})
	}
}
