package transport

import (
	"log/slog"
	"sync"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// Sink is the narrow interface the game engine publishes through. The engine
// emits structured events; rendering them for users is the subscriber's job.
type Sink interface {
	Publish(event model.Event)
}

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind starts losing events rather than stalling the engine.
const subscriberBuffer = 64

// Hub fans game events out to per-room subscribers. Publishing never blocks:
// a full subscriber buffer drops the event with a warning.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[model.RoomKey]map[chan model.Event]struct{}
	logger *slog.Logger
}

var _ Sink = (*Hub)(nil)

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomKey]map[chan model.Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers a listener for one room's events. The returned cancel
// function unregisters and closes the channel; it is safe to call once.
func (h *Hub) Subscribe(room model.RoomKey) (<-chan model.Event, func()) {
	ch := make(chan model.Event, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[chan model.Event]struct{})
		h.rooms[room] = subs
	}
	subs[ch] = struct{}{}
	total := len(subs)
	h.mu.Unlock()

	h.logger.Info("subscriber registered",
		slog.String("room", string(room)),
		slog.Int("total_subscribers", total),
	)

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.rooms[room]; ok {
			if _, present := subs[ch]; present {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(h.rooms, room)
				}
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of its room
func (h *Hub) Publish(event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.rooms[event.Room] {
		select {
		case ch <- event:
		default:
			h.logger.Warn("event dropped - subscriber buffer full",
				slog.String("room", string(event.Room)),
				slog.String("event_type", string(event.Type)),
			)
		}
	}
}

// SubscriberCount reports the number of listeners for a room
func (h *Hub) SubscriberCount(room model.RoomKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
