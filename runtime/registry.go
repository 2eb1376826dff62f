// Package runtime coordinates the shared state of the chat server:
// who is connected, which room they are in, and the send pipeline.
// It contains no transport logic.
package runtime

import (
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
)

var _ contract.IRegistry = (*Registry)(nil)

type Set map[domain.ConnID]struct{}

type entry struct {
	username string
	room     string
	sink     contract.Sink
}

// Registry is the membership store: connection -> username, connection
// -> current room, room -> member set. One mutex covers every mutation
// so a connection is never observed in two rooms at once. Rooms are
// created on first join and kept even when empty: room names are stable
// meeting points, not ephemeral resources.
type Registry struct {
	mu       sync.Mutex
	sessions map[domain.ConnID]*entry
	rooms    map[string]Set
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnID]*entry),
		rooms:    make(map[string]Set),
	}
}

// Register records a connection and its username. The connection
// belongs to no room until Join is called.
func (r *Registry) Register(id domain.ConnID, username string, sink contract.Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{username: username, sink: sink}
}

// Unregister forgets a connection and removes it from its room.
// It returns the vacated room so the caller can emit a leave notice.
func (r *Registry) Unregister(id domain.ConnID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	delete(r.sessions, id)
	if members, ok := r.rooms[e.room]; ok {
		delete(members, id)
	}
	return e.room, true
}

// Join moves a connection into a room, creating the room if absent.
// The removal from the old room and the insertion into the new one
// happen under the same critical section. Returns the old and new room
// names so the caller can emit leave/join notices.
func (r *Registry) Join(id domain.ConnID, room string) (string, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return "", "", false
	}

	oldRoom := e.room
	if members, ok := r.rooms[oldRoom]; ok {
		delete(members, id)
	}

	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(Set)
	}
	r.rooms[room][id] = struct{}{}
	e.room = room

	return oldRoom, room, true
}

// FindByUsername resolves a username to a connection with a linear
// scan. Usernames are not unique, the first match wins. Acceptable for
// the expected small population.
func (r *Registry) FindByUsername(username string) (contract.Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.sessions {
		if e.username == username {
			return contract.Member{ID: id, Username: e.username, Sink: e.sink}, true
		}
	}
	return contract.Member{}, false
}

// Members returns a snapshot of the connections currently in a room.
func (r *Registry) Members(room string) []contract.Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	var members []contract.Member
	for id := range r.rooms[room] {
		if e, ok := r.sessions[id]; ok {
			members = append(members, contract.Member{ID: id, Username: e.username, Sink: e.sink})
		}
	}
	return members
}

// RoomBySender scans room memberships for a connection whose registered
// username equals sender, the way the dispatcher resolves fan-out
// targets.
func (r *Registry) RoomBySender(sender string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room, members := range r.rooms {
		for id := range members {
			if e, ok := r.sessions[id]; ok && e.username == sender {
				return room, true
			}
		}
	}
	return "", false
}

// Counts reports the number of live sessions and known rooms, for telemetry.
func (r *Registry) Counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), len(r.rooms)
}
