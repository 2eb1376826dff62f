package runtime

import (
	"log/slog"
	"sync/atomic"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/ledger"
	"chat-relay/moderation"

	"github.com/abadojack/whatlanggo"
)

var _ contract.IChatService = (*ChatService)(nil)

// ChatService is the send pipeline shared by every session: moderation,
// id allocation, ledger append, undo/redo bookkeeping and the outgoing
// queue drained by the broadcast worker. The sub-steps of one send
// commit independently, there is no cross-structure transaction.
type ChatService struct {
	log       *slog.Logger
	ledger    *ledger.Ledger
	stacks    *ledger.UndoRedo
	moderator *moderation.Moderator
	outgoing  chan domain.Message
	counter   atomic.Int64
}

func NewChatService(log *slog.Logger, lg *ledger.Ledger, stacks *ledger.UndoRedo,
	moderator *moderation.Moderator, bufferSize int) *ChatService {
	return &ChatService{
		log:       log,
		ledger:    lg,
		stacks:    stacks,
		moderator: moderator,
		outgoing:  make(chan domain.Message, bufferSize),
	}
}

// Outgoing exposes the queue consumed by the broadcast worker.
func (s *ChatService) Outgoing() <-chan domain.Message {
	return s.outgoing
}

// Send runs one chat line through the pipeline and returns the stored
// message. Ids are allocated from a single global counter, so they are
// unique and strictly increasing across concurrent senders.
func (s *ChatService) Send(sender, text string) domain.Message {
	if s.moderator != nil {
		censored, found := s.moderator.Censor(text)
		if len(found) > 0 {
			info := whatlanggo.Detect(text)
			s.log.Warn("Censored words in message",
				"sender", sender,
				"words", found,
				"lang", info.Lang.Iso6391())
			text = censored
		}
	}

	msg := domain.Message{
		ID:        s.counter.Add(1),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.ledger.Append(msg)
	s.stacks.RecordSend(msg)
	s.enqueue(msg)
	return msg
}

// Undo removes the most recently sent message from the ledger,
// whichever session sent it.
func (s *ChatService) Undo() (domain.Message, bool) {
	msg, ok := s.stacks.Undo()
	if !ok {
		return domain.Message{}, false
	}
	s.ledger.RemoveByID(msg.ID)
	return msg, true
}

// Redo restores the most recently undone message, re-appends it to the
// ledger and puts it back on the broadcast queue.
func (s *ChatService) Redo() (domain.Message, bool) {
	msg, ok := s.stacks.Redo()
	if !ok {
		return domain.Message{}, false
	}
	s.ledger.Append(msg)
	s.enqueue(msg)
	return msg, true
}

func (s *ChatService) History() []domain.Message {
	return s.ledger.ListAll()
}

func (s *ChatService) Search(keyword string) []domain.Message {
	return s.ledger.Search(keyword)
}

func (s *ChatService) LedgerLen() int {
	return s.ledger.Len()
}

// enqueue never blocks the session: a full queue drops the item, the
// system is best-effort.
func (s *ChatService) enqueue(msg domain.Message) {
	select {
	case s.outgoing <- msg:
	default:
		s.log.Warn("Outgoing queue full, dropping message", "id", msg.ID, "sender", msg.Sender)
	}
}
