package workers

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
)

// Ensure *BroadcastWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*BroadcastWorker)(nil)

// BroadcastWorker is the single background dispatcher: it blocks on the
// outgoing queue, resolves each message's room through the membership
// registry and fans the line out to every member. Delivery is
// best-effort, a failure for one recipient never aborts the loop.
type BroadcastWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	queue    <-chan domain.Message
}

func NewBroadcastWorker(log *slog.Logger, registry contract.IRegistry, queue <-chan domain.Message) *BroadcastWorker {
	return &BroadcastWorker{log: log, registry: registry, queue: queue}
}

// Run blocks on queue non-emptiness until the context is canceled.
// No polling interval: the channel wakes the worker on enqueue.
func (w *BroadcastWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case msg := <-w.queue:
			w.fanout(msg)
		}
	}
}

// fanout resolves the sender's room and writes to all its members.
// The sender's own connections receive the abbreviated echo line
// instead of the full broadcast form.
func (w *BroadcastWorker) fanout(msg domain.Message) {
	room, ok := w.registry.RoomBySender(msg.Sender)
	if !ok {
		w.log.Debug("Sender has no room, dropping message", "sender", msg.Sender, "id", msg.ID)
		return
	}

	for _, member := range w.registry.Members(room) {
		line := msg.Line()
		if member.Username == msg.Sender {
			line = msg.EchoLine()
		}
		if err := member.Sink.Deliver(line + "\n"); err != nil {
			w.log.Error("Delivery failed, skipping recipient",
				"room", room,
				"recipient", member.Username,
				"error", err)
		}
	}
}
