package nakama

import (
	"github.com/heroiclabs/nakama-common/runtime"
)

// presenceSink delivers event envelopes to one match presence.
type presenceSink struct {
	dispatcher runtime.MatchDispatcher
	presence   runtime.Presence
}

func newPresenceSink(dispatcher runtime.MatchDispatcher, presence runtime.Presence) *presenceSink {
	return &presenceSink{dispatcher: dispatcher, presence: presence}
}

// Deliver sends data reliably on OpEvent.
func (s *presenceSink) Deliver(data []byte) error {
	return s.dispatcher.BroadcastMessage(OpEvent, data, []runtime.Presence{s.presence}, nil, true)
}
