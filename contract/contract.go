//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Sink is the delivery side of one connection. Deliver must never block:
// a full outgoing buffer is reported as an error and the line is dropped.
type Sink interface {
	Deliver(line string) error
}

// Member is a snapshot of one connection inside a room.
type Member struct {
	ID       domain.ConnID
	Username string
	Sink     Sink
}

type IRegistry interface {
	Register(id domain.ConnID, username string, sink Sink)
	Unregister(id domain.ConnID) (string, bool)
	Join(id domain.ConnID, room string) (string, string, bool)
	FindByUsername(username string) (Member, bool)
	Members(room string) []Member
	RoomBySender(username string) (string, bool)
	Counts() (int, int)
}

type IChatService interface {
	Send(sender, text string) domain.Message
	Undo() (domain.Message, bool)
	Redo() (domain.Message, bool)
	History() []domain.Message
	Search(keyword string) []domain.Message
}
