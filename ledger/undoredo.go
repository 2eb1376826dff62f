package ledger

import (
	"sync"

	"chat-relay/domain"
)

// UndoRedo is the pair of LIFO stacks behind /undo and /redo.
// Scope is global: any session can undo the most recently sent message,
// whoever sent it. Messages only ever move between the two stacks,
// their content is never mutated. The caller is responsible for the
// matching Ledger removal or re-append.
type UndoRedo struct {
	mu   sync.Mutex
	undo []domain.Message
	redo []domain.Message
}

func NewUndoRedo() *UndoRedo {
	return &UndoRedo{}
}

// RecordSend pushes a freshly sent message onto the undo stack and
// clears the redo stack.
func (u *UndoRedo) RecordSend(msg domain.Message) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.undo = append(u.undo, msg)
	u.redo = u.redo[:0]
}

// Undo moves the most recent message from the undo stack to the redo
// stack and returns it. Reports false when there is nothing to undo.
func (u *UndoRedo) Undo() (domain.Message, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.undo) == 0 {
		return domain.Message{}, false
	}
	msg := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.redo = append(u.redo, msg)
	return msg, true
}

// Redo moves the most recently undone message back to the undo stack
// and returns it. Reports false when there is nothing to redo.
func (u *UndoRedo) Redo() (domain.Message, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.redo) == 0 {
		return domain.Message{}, false
	}
	msg := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.undo = append(u.undo, msg)
	return msg, true
}
