package domain

import "strings"

// Command is one parsed unit of client input.
type Command interface {
	command()
}

type JoinCommand struct{ Room string }

type PMCommand struct {
	Target string
	Text   string
}

type ReplyCommand struct {
	Target string
	Text   string
}

type UndoCommand struct{}

type RedoCommand struct{}

type HistoryCommand struct{}

type SearchCommand struct{ Keyword string }

type HelpCommand struct{}

// ChatCommand is any input that is not a recognized slash command.
type ChatCommand struct{ Text string }

// MalformedCommand is a recognized command missing required arguments.
type MalformedCommand struct{ Usage string }

func (JoinCommand) command()      {}
func (PMCommand) command()        {}
func (ReplyCommand) command()     {}
func (UndoCommand) command()      {}
func (RedoCommand) command()      {}
func (HistoryCommand) command()   {}
func (SearchCommand) command()    {}
func (HelpCommand) command()      {}
func (ChatCommand) command()      {}
func (MalformedCommand) command() {}

// ParseInput turns one input line into a typed Command.
// Dispatch is prefix-based and case-sensitive. Argument-less commands
// match exactly: "/undo extra" is a chat line, not an undo.
func ParseInput(line string) Command {
	if !strings.HasPrefix(line, "/") {
		return ChatCommand{Text: line}
	}
	name, rest, _ := strings.Cut(line, " ")
	switch name {
	case "/join":
		room := strings.TrimSpace(rest)
		if room == "" {
			return MalformedCommand{Usage: "Usage: /join <room>"}
		}
		return JoinCommand{Room: room}
	case "/pm":
		target, text, ok := strings.Cut(rest, " ")
		if !ok || target == "" || strings.TrimSpace(text) == "" {
			return MalformedCommand{Usage: "Usage: /pm <user> <message>"}
		}
		return PMCommand{Target: target, Text: text}
	case "/reply":
		target, text, ok := strings.Cut(rest, " ")
		if !ok || target == "" || strings.TrimSpace(text) == "" {
			return MalformedCommand{Usage: "Usage: /reply <user> <message>"}
		}
		return ReplyCommand{Target: target, Text: text}
	case "/search":
		if rest == "" {
			return MalformedCommand{Usage: "Usage: /search <keyword>"}
		}
		return SearchCommand{Keyword: rest}
	case "/undo":
		if rest == "" {
			return UndoCommand{}
		}
	case "/redo":
		if rest == "" {
			return RedoCommand{}
		}
	case "/history":
		if rest == "" {
			return HistoryCommand{}
		}
	case "/help":
		if rest == "" {
			return HelpCommand{}
		}
	}
	return ChatCommand{Text: line}
}
