package app

import (
	"sync"

	"setgame/internal/ports"
)

// SessionRegistry maps user ids to the sink of their live connection.
type SessionRegistry struct {
	mu    sync.RWMutex
	sinks map[string]ports.SessionSink
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sinks: make(map[string]ports.SessionSink)}
}

// Register stores or replaces the sink for userID.
func (r *SessionRegistry) Register(userID string, sink ports.SessionSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[userID] = sink
}

// Unregister forgets userID only while it is still bound to sink, so a stale
// connection closing never evicts a newer one. A nil sink removes unconditionally.
func (r *SessionRegistry) Unregister(userID string, sink ports.SessionSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sinks[userID]
	if !ok {
		return false
	}
	if sink != nil && current != sink {
		return false
	}
	delete(r.sinks, userID)
	return true
}

// Lookup returns the sink registered for userID.
func (r *SessionRegistry) Lookup(userID string) (ports.SessionSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sinks[userID]
	return sink, ok
}

// Send delivers data to userID. Unknown users and failing sinks are ignored.
func (r *SessionRegistry) Send(userID string, data []byte) bool {
	sink, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	return sink.Deliver(data) == nil
}

// Broadcast sends data to each id and returns how many deliveries were accepted.
func (r *SessionRegistry) Broadcast(userIDs []string, data []byte) int {
	delivered := 0
	for _, id := range userIDs {
		if r.Send(id, data) {
			delivered++
		}
	}
	return delivered
}

// Len reports the number of registered sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}
