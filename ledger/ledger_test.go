package ledger

import (
	"testing"
	"time"

	"chat-relay/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newMessage(id int64, sender, text string) domain.Message {
	return domain.Message{ID: id, Sender: sender, Text: text, CreatedAt: time.Now().UTC()}
}

func TestLedger_Append_And_ListAll_Keeps_Order(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger(10)

	// Given three appended messages
	ledger.Append(newMessage(1, "alice", "first"))
	ledger.Append(newMessage(2, "bob", "second"))
	ledger.Append(newMessage(3, "alice", "third"))

	// Then the snapshot preserves chronological order
	all := ledger.ListAll()
	req.Len(all, 3)
	req.Equal([]int64{1, 2, 3}, lo.Map(all, func(m domain.Message, _ int) int64 { return m.ID }))
}

func TestLedger_Evicts_Oldest_Beyond_Capacity(t *testing.T) {
	req := require.New(t)
	capacity := 1000
	ledger := NewLedger(capacity)

	// When one more message than the capacity is appended
	for i := 1; i <= capacity+1; i++ {
		ledger.Append(newMessage(int64(i), "alice", "filler"))
	}

	// Then the length stays at capacity and the first id is gone
	req.Equal(capacity, ledger.Len())
	all := ledger.ListAll()
	req.Equal(int64(2), all[0].ID)
	req.Equal(int64(capacity+1), all[len(all)-1].ID)
	ids := lo.Map(all, func(m domain.Message, _ int) int64 { return m.ID })
	req.NotContains(ids, int64(1))
}

func TestLedger_RemoveByID(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger(10)
	ledger.Append(newMessage(1, "alice", "keep"))
	ledger.Append(newMessage(2, "bob", "drop"))
	ledger.Append(newMessage(3, "alice", "keep too"))

	// When the middle entry is removed
	req.True(ledger.RemoveByID(2))

	// Then it is unlinked and the order of the rest is intact
	all := ledger.ListAll()
	req.Equal([]int64{1, 3}, lo.Map(all, func(m domain.Message, _ int) int64 { return m.ID }))

	// And removing an absent id reports false
	req.False(ledger.RemoveByID(2))
	req.False(ledger.RemoveByID(42))
}

func TestLedger_Search_Is_CaseSensitive_Ordered_Subsequence(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger(10)
	ledger.Append(newMessage(1, "alice", "deploy went fine"))
	ledger.Append(newMessage(2, "bob", "Deploy failed"))
	ledger.Append(newMessage(3, "alice", "redeploy tonight"))
	ledger.Append(newMessage(4, "bob", "lunch?"))

	// When searching a case-sensitive keyword
	found := ledger.Search("deploy")

	// Then exactly the containing entries come back, in original order
	req.Equal([]int64{1, 3}, lo.Map(found, func(m domain.Message, _ int) int64 { return m.ID }))

	// And the result is the subsequence of ListAll with matching text
	var expected []domain.Message
	for _, m := range ledger.ListAll() {
		if m.ID == 1 || m.ID == 3 {
			expected = append(expected, m)
		}
	}
	req.Equal(expected, found)

	req.Empty(ledger.Search("standup"))
}

func TestUndoRedo_Undo_Then_Redo_Returns_Same_Message(t *testing.T) {
	req := require.New(t)
	stacks := NewUndoRedo()
	msg := newMessage(7, "alice", "m1")
	stacks.RecordSend(msg)

	// When undoing then redoing
	undone, ok := stacks.Undo()
	req.True(ok)
	req.Equal(msg, undone)

	redone, ok := stacks.Redo()
	req.True(ok)

	// Then the same message comes back untouched
	req.Equal(msg, redone)
}

func TestUndoRedo_RecordSend_Clears_Redo(t *testing.T) {
	req := require.New(t)
	stacks := NewUndoRedo()
	stacks.RecordSend(newMessage(1, "alice", "first"))

	// Given one undone message waiting on the redo stack
	_, ok := stacks.Undo()
	req.True(ok)

	// When a new message is recorded
	stacks.RecordSend(newMessage(2, "bob", "second"))

	// Then there is nothing left to redo
	_, ok = stacks.Redo()
	req.False(ok)
}

func TestUndoRedo_Empty_Stacks(t *testing.T) {
	req := require.New(t)
	stacks := NewUndoRedo()

	_, ok := stacks.Undo()
	req.False(ok)
	_, ok = stacks.Redo()
	req.False(ok)
}

func TestUndoRedo_Undo_Pops_Most_Recent_First(t *testing.T) {
	req := require.New(t)
	stacks := NewUndoRedo()
	stacks.RecordSend(newMessage(1, "alice", "first"))
	stacks.RecordSend(newMessage(2, "bob", "second"))

	undone, ok := stacks.Undo()
	req.True(ok)
	req.Equal(int64(2), undone.ID)

	undone, ok = stacks.Undo()
	req.True(ok)
	req.Equal(int64(1), undone.ID)
}
