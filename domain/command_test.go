package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Command
	}{
		{
			name:     "Plain text becomes a chat message",
			input:    "hello everyone",
			expected: ChatCommand{Text: "hello everyone"},
		},
		{
			name:     "Join with room name",
			input:    "/join general",
			expected: JoinCommand{Room: "general"},
		},
		{
			name:     "Join without room is malformed",
			input:    "/join",
			expected: MalformedCommand{Usage: "Usage: /join <room>"},
		},
		{
			name:     "Private message with multi word text",
			input:    "/pm bob see you at 5",
			expected: PMCommand{Target: "bob", Text: "see you at 5"},
		},
		{
			name:     "Private message without text is malformed",
			input:    "/pm bob",
			expected: MalformedCommand{Usage: "Usage: /pm <user> <message>"},
		},
		{
			name:     "Reply keeps target and text",
			input:    "/reply alice agreed",
			expected: ReplyCommand{Target: "alice", Text: "agreed"},
		},
		{
			name:     "Reply without arguments is malformed",
			input:    "/reply",
			expected: MalformedCommand{Usage: "Usage: /reply <user> <message>"},
		},
		{
			name:     "Search keyword may contain spaces",
			input:    "/search release notes",
			expected: SearchCommand{Keyword: "release notes"},
		},
		{
			name:     "Search without keyword is malformed",
			input:    "/search",
			expected: MalformedCommand{Usage: "Usage: /search <keyword>"},
		},
		{
			name:     "Undo matches exactly",
			input:    "/undo",
			expected: UndoCommand{},
		},
		{
			name:     "Undo with trailing text is a chat line",
			input:    "/undo please",
			expected: ChatCommand{Text: "/undo please"},
		},
		{
			name:     "Redo matches exactly",
			input:    "/redo",
			expected: RedoCommand{},
		},
		{
			name:     "History matches exactly",
			input:    "/history",
			expected: HistoryCommand{},
		},
		{
			name:     "Help matches exactly",
			input:    "/help",
			expected: HelpCommand{},
		},
		{
			name:     "Unknown slash command is a chat line",
			input:    "/shrug",
			expected: ChatCommand{Text: "/shrug"},
		},
		{
			name:     "Dispatch is case sensitive",
			input:    "/Join general",
			expected: ChatCommand{Text: "/Join general"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseInput(tt.input))
		})
	}
}

func TestMessage_Line_And_Echo(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 3, 1, 9, 45, 12, 0, time.Local)
	msg := Message{ID: 7, Sender: "alice", Text: "hi there", CreatedAt: at}

	req.Equal("[09:45:12][alice]: hi there", msg.Line())
	req.Equal("[09:45:12] You: hi there", msg.EchoLine())
}
