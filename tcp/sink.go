// Package tcp is the transport layer: listener, per-connection session
// loop and line delivery. One line, terminated by '\n', is one
// application-level unit in both directions.
package tcp

import (
	"bufio"
	"log/slog"
	"net"
	"sync"

	"chat-relay/errors"
)

// LineSink decouples delivery from socket writes: Deliver queues the
// payload, a dedicated writer goroutine flushes it to the connection.
// No shared-structure lock is ever held across socket I/O this way.
type LineSink struct {
	mu     sync.Mutex
	closed bool
	out    chan string
}

func NewLineSink(bufferSize int) *LineSink {
	return &LineSink{out: make(chan string, bufferSize)}
}

// Deliver queues one payload without blocking. A full buffer means a
// slow consumer: the line is dropped and an error reported, delivery
// is best-effort.
func (s *LineSink) Deliver(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrSessionClosed
	}
	select {
	case s.out <- line:
		return nil
	default:
		return errors.ErrSlowConsumer
	}
}

// Close is idempotent and safe against concurrent Deliver calls.
// Buffered lines are still drained by the writer before it exits.
func (s *LineSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.out)
	}
}

// writeLoop forwards queued payloads into the connection until the
// sink is closed or the socket dies.
func (s *LineSink) writeLoop(conn net.Conn, log *slog.Logger) {
	writer := bufio.NewWriter(conn)
	for line := range s.out {
		if _, err := writer.WriteString(line); err != nil {
			log.Debug("Write failed, abandoning writer", "error", err)
			return
		}
		if err := writer.Flush(); err != nil {
			log.Debug("Flush failed, abandoning writer", "error", err)
			return
		}
	}
}
