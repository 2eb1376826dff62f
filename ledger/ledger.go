// Package ledger holds the bounded, ordered, globally shared log of sent
// messages and the undo/redo stacks layered on top of it.
package ledger

import (
	"container/list"
	"strings"
	"sync"

	"chat-relay/domain"
)

const DefaultCapacity = 1000

// Ledger is a capacity-bounded chronological log. The id index gives O(1)
// unlink once a message is located, the list gives O(1) append and O(1)
// eviction of the oldest entry.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[int64]*list.Element
}

func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[int64]*list.Element),
	}
}

// Append inserts at the tail and evicts the head entry once the
// capacity is exceeded.
func (l *Ledger) Append(msg domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.index[msg.ID] = l.order.PushBack(msg)

	if l.order.Len() > l.capacity {
		head := l.order.Front()
		l.order.Remove(head)
		delete(l.index, head.Value.(domain.Message).ID)
	}
}

// RemoveByID unlinks one entry. Reports whether the id was present.
func (l *Ledger) RemoveByID(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	elem, ok := l.index[id]
	if !ok {
		return false
	}
	l.order.Remove(elem)
	delete(l.index, id)
	return true
}

// ListAll returns a chronological snapshot of the whole log.
func (l *Ledger) ListAll() []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshot(func(domain.Message) bool { return true })
}

// Search returns the chronological subsequence of entries whose text
// contains keyword. Matching is case-sensitive.
func (l *Ledger) Search(keyword string) []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshot(func(msg domain.Message) bool {
		return strings.Contains(msg.Text, keyword)
	})
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

// snapshot copies matching entries under the lock so readers always see
// a consistent view. Callers must hold l.mu.
func (l *Ledger) snapshot(keep func(domain.Message) bool) []domain.Message {
	var result []domain.Message
	for elem := l.order.Front(); elem != nil; elem = elem.Next() {
		msg := elem.Value.(domain.Message)
		if keep(msg) {
			result = append(result, msg)
		}
	}
	return result
}
