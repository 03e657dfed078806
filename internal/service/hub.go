package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/citygrid/appeals-service/internal/domain"
)

// Channel is one live notification connection. A send error marks the
// channel dead; there is no retry.
type Channel interface {
	Send(data []byte) error
}

// Hub tracks the set of live notification channels and fans change events
// out to them. Membership is the only shared mutable state; the lock is
// held for membership changes only, never across a fan-out.
type Hub struct {
	mu       sync.Mutex
	channels map[Channel]struct{}
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[Channel]struct{}),
	}
}

func (h *Hub) Register(ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels[ch] = struct{}{}
}

// Unregister is a no-op when the channel is already gone: disconnect
// detection and broadcast-side pruning can race to remove the same channel.
func (h *Hub) Unregister(ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels, ch)
}

// Len reports the current number of registered channels.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels)
}

func (h *Hub) snapshot() []Channel {
	h.mu.Lock()
	defer h.mu.Unlock()
	chans := make([]Channel, 0, len(h.channels))
	for ch := range h.channels {
		chans = append(chans, ch)
	}
	return chans
}

// Broadcast serializes the event once and pushes it to every channel that
// was registered when the call started. Channels whose send fails are
// unregistered after the fan-out; failures never reach the caller.
func (h *Hub) Broadcast(event domain.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error(
			"Failed to encode change event",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return
	}

	var failed []Channel
	for _, ch := range h.snapshot() {
		if err := ch.Send(data); err != nil {
			slog.Debug(
				"Dropping notification channel after failed send",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
			failed = append(failed, ch)
		}
	}

	for _, ch := range failed {
		h.Unregister(ch)
	}
}
