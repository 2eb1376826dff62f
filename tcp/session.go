package tcp

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Session drives one connection through Connecting, Active and Closed.
// The first inbound line is the username, every following line is one
// command or chat message. There is no read deadline: a silent client
// keeps its goroutine until it disconnects.
type Session struct {
	id          domain.ConnID
	conn        net.Conn
	registry    contract.IRegistry
	chat        contract.IChatService
	sink        *LineSink
	log         *slog.Logger
	defaultRoom string
	username    string
}

func NewSession(log *slog.Logger, conn net.Conn, registry contract.IRegistry,
	chat contract.IChatService, defaultRoom string, bufferSize int) *Session {
	return &Session{
		id:          domain.ConnID(uuid.NewString()),
		conn:        conn,
		registry:    registry,
		chat:        chat,
		sink:        NewLineSink(bufferSize),
		log:         log,
		defaultRoom: defaultRoom,
	}
}

// Run blocks until the client disconnects.
func (s *Session) Run() {
	defer s.conn.Close()
	defer s.sink.Close()
	go s.sink.writeLoop(s.conn, s.log)

	reader := bufio.NewReader(s.conn)

	// Connecting: the first line is the username, as typed.
	username, err := readLine(reader)
	if err != nil {
		s.log.Debug("Connection closed before username", "remote", s.conn.RemoteAddr())
		return
	}
	s.username = username
	s.registry.Register(s.id, username, s.sink)
	s.registry.Join(s.id, s.defaultRoom)

	s.reply(fmt.Sprintf("%s Connected as '%s' to chat server. You are in room: %s",
		stampNow(), username, s.defaultRoom))
	s.notifyRoom(s.defaultRoom, fmt.Sprintf("%s %s joined the room", stampNow(), username))
	s.log.Info("Session active", "user", username, "room", s.defaultRoom)

	// Active: one line, one command.
	for {
		line, err := readLine(reader)
		if err != nil {
			s.closed()
			return
		}
		if line == "" {
			continue
		}
		s.handle(line)
	}
}

func (s *Session) handle(line string) {
	switch cmd := domain.ParseInput(line).(type) {
	case domain.JoinCommand:
		s.handleJoin(cmd)
	case domain.PMCommand:
		s.handlePM(cmd)
	case domain.ReplyCommand:
		s.handleReply(cmd)
	case domain.UndoCommand:
		if _, ok := s.chat.Undo(); ok {
			s.reply(stampNow() + " Last message undone.")
		} else {
			s.reply(stampNow() + " No message to undo.")
		}
	case domain.RedoCommand:
		if _, ok := s.chat.Redo(); ok {
			s.reply(stampNow() + " Message redone.")
		} else {
			s.reply(stampNow() + " Nothing to redo.")
		}
	case domain.HistoryCommand:
		s.handleHistory()
	case domain.SearchCommand:
		s.handleSearch(cmd)
	case domain.HelpCommand:
		s.reply(helpText())
	case domain.MalformedCommand:
		s.reply(stampNow() + " " + cmd.Usage)
	case domain.ChatCommand:
		// The echo comes back through the broadcast pipeline.
		s.chat.Send(s.username, cmd.Text)
	}
}

// handleJoin performs the membership move and emits leave/join notices
// to the rooms involved, plus a confirmation to the caller.
func (s *Session) handleJoin(cmd domain.JoinCommand) {
	oldRoom, newRoom, ok := s.registry.Join(s.id, cmd.Room)
	if !ok {
		return
	}
	s.notifyRoom(oldRoom, fmt.Sprintf("%s %s left the room", stampNow(), s.username))
	s.notifyRoom(newRoom, fmt.Sprintf("%s %s joined the room", stampNow(), s.username))
	s.reply(fmt.Sprintf("%s You joined room: %s", stampNow(), newRoom))
}

// handlePM delivers directly to one resolved connection, bypassing
// ledger and dispatcher.
func (s *Session) handlePM(cmd domain.PMCommand) {
	target, ok := s.registry.FindByUsername(cmd.Target)
	if !ok {
		s.reply(stampNow() + " User not found.")
		return
	}
	s.deliverTo(target, fmt.Sprintf("%s[PM from %s]: %s", stampNow(), s.username, cmd.Text))
	s.reply(fmt.Sprintf("%s[PM to %s]: %s", stampNow(), cmd.Target, cmd.Text))
}

// handleReply wraps the text with the target's name and sends it down
// the normal broadcast path: the whole room sees it.
func (s *Session) handleReply(cmd domain.ReplyCommand) {
	if _, ok := s.registry.FindByUsername(cmd.Target); !ok {
		s.reply(fmt.Sprintf("%s User '%s' not found.", stampNow(), cmd.Target))
		return
	}
	s.chat.Send(s.username, fmt.Sprintf("-> %s: %s", cmd.Target, cmd.Text))
}

func (s *Session) handleHistory() {
	messages := s.chat.History()
	if len(messages) == 0 {
		s.reply(stampNow() + " No message history available.")
		return
	}
	lines := lo.Map(messages, func(m domain.Message, _ int) string { return m.Line() })
	s.reply(stampNow() + " Message history:\n" + strings.Join(lines, "\n"))
}

func (s *Session) handleSearch(cmd domain.SearchCommand) {
	found := s.chat.Search(cmd.Keyword)
	if len(found) == 0 {
		s.reply(fmt.Sprintf("%s No messages found containing: '%s'", stampNow(), cmd.Keyword))
		return
	}
	lines := lo.Map(found, func(m domain.Message, _ int) string { return m.Line() })
	s.reply(fmt.Sprintf("%s Found %d message(s) containing '%s':\n%s",
		stampNow(), len(found), cmd.Keyword, strings.Join(lines, "\n")))
}

// closed handles the Closed transition: leave the room, notify the
// remaining members, forget the connection.
func (s *Session) closed() {
	room, ok := s.registry.Unregister(s.id)
	if !ok {
		return
	}
	s.notifyRoom(room, fmt.Sprintf("%s %s left the room", stampNow(), s.username))
	s.log.Info("Session closed", "user", s.username, "room", room)
}

// reply writes one (possibly multi-line) response to the caller.
func (s *Session) reply(text string) {
	if err := s.sink.Deliver(text + "\n"); err != nil {
		s.log.Debug("Reply dropped", "user", s.username, "error", err)
	}
}

// notifyRoom delivers a notice to every room member except this session.
func (s *Session) notifyRoom(room, notice string) {
	for _, member := range s.registry.Members(room) {
		if member.ID == s.id {
			continue
		}
		if err := member.Sink.Deliver(notice + "\n"); err != nil {
			s.log.Debug("Notice dropped", "recipient", member.Username, "error", err)
		}
	}
}

func (s *Session) deliverTo(member contract.Member, line string) {
	if err := member.Sink.Deliver(line + "\n"); err != nil {
		s.log.Debug("Direct line dropped", "recipient", member.Username, "error", err)
	}
}

// readLine returns one '\n'-terminated unit with the terminator and any
// trailing '\r' stripped.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func stampNow() string {
	return domain.Stamp(time.Now())
}

func helpText() string {
	return stampNow() + " Available commands:\n" +
		"/join <room>           - Join or create a chat room\n" +
		"/pm <user> <message>   - Send private message to a user\n" +
		"/reply <user> <msg>    - Reply publicly to a specific user in the room\n" +
		"/undo                  - Undo the last message\n" +
		"/redo                  - Redo the last undone message\n" +
		"/history               - Show message history\n" +
		"/search <keyword>      - Search for messages containing keyword\n" +
		"/quit                  - Exit the chat application\n" +
		"/help                  - Show this help message"
}
