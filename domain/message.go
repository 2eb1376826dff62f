// Package domain contains core concepts of the chat system.
// This file defines Message values and wire-line formatting rules.
// Messages are immutable after creation.
package domain

import (
	"fmt"
	"time"
)

// TimeLayout is the prefix format of every server-to-client line.
const TimeLayout = "15:04:05"

// ConnID is an opaque per-session handle.
type ConnID string

// Message represents one sent chat line.
// IDs come from a single global counter and are strictly increasing.
type Message struct {
	ID        int64
	Sender    string
	Text      string
	CreatedAt time.Time
}

// Stamp renders the [HH:MM:SS] prefix for a given instant.
func Stamp(t time.Time) string {
	return "[" + t.Format(TimeLayout) + "]"
}

// Line is the fully formatted broadcast form delivered to room members.
func (m Message) Line() string {
	return fmt.Sprintf("%s[%s]: %s", Stamp(m.CreatedAt), m.Sender, m.Text)
}

// EchoLine is the abbreviated acknowledgment delivered to the sender
// instead of the full broadcast line.
func (m Message) EchoLine() string {
	return fmt.Sprintf("%s You: %s", Stamp(m.CreatedAt), m.Text)
}
