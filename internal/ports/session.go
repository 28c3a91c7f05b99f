package ports

// SessionSink delivers encoded events to one connected client.
// Implementations must not block the caller for longer than it takes to queue data.
type SessionSink interface {
	// Deliver hands data to the client's connection.
	// Returns an error when the connection is gone; callers treat delivery as best-effort.
	Deliver(data []byte) error
}
