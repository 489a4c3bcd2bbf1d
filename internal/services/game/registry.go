package game

import (
	"sync"

	"github.com/mcoot/linkgame/internal/dependencies/clock"
	"github.com/mcoot/linkgame/internal/model"
)

// entry owns one conversation's session. Its mutex serialises every command
// and the timeout callback for that conversation.
type entry struct {
	mu      sync.Mutex
	session *model.Session
	timer   clock.Timer
}

// stopTimer cancels a pending timeout, if any
func (e *entry) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// Registry maps conversations to their sessions. Sessions are created
// lazily on first use and are never shared between conversations.
type Registry struct {
	mu      sync.Mutex
	entries map[model.ConversationID]*entry
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[model.ConversationID]*entry),
	}
}

// acquire returns the entry for id, creating an Idle session if needed
func (r *Registry) acquire(id model.ConversationID) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		return e
	}
	e := &entry{
		session: &model.Session{
			ConversationID: id,
			State:          model.SessionStateIdle,
		},
	}
	r.entries[id] = e
	return e
}

// lookup returns the entry for id without creating one
func (r *Registry) lookup(id model.ConversationID) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return e, nil
}

// Len returns the number of known sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops every pending timeout
func (r *Registry) Close() {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
		e.stopTimer()
		e.mu.Unlock()
	}
}
