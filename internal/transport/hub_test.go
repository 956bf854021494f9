package transport

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func event(room model.RoomKey, t model.EventType) model.Event {
	return model.Event{Room: room, Type: t}
}

func (s *HubSuite) TestPublishDeliversToSubscriber() {
	ch, cancel := s.hub.Subscribe("lounge")
	defer cancel()

	s.hub.Publish(event("lounge", model.EventGameStarted))

	got := <-ch
	s.Equal(model.RoomKey("lounge"), got.Room)
	s.Equal(model.EventGameStarted, got.Type)
}

func (s *HubSuite) TestRoomsAreIsolated() {
	loungeCh, cancelLounge := s.hub.Subscribe("lounge")
	defer cancelLounge()
	denCh, cancelDen := s.hub.Subscribe("den")
	defer cancelDen()

	s.hub.Publish(event("lounge", model.EventTurnStarted))

	s.Len(loungeCh, 1)
	s.Empty(denCh)
}

func (s *HubSuite) TestAllSubscribersOfRoomReceive() {
	first, cancelFirst := s.hub.Subscribe("lounge")
	defer cancelFirst()
	second, cancelSecond := s.hub.Subscribe("lounge")
	defer cancelSecond()

	s.hub.Publish(event("lounge", model.EventWordAccepted))

	s.Len(first, 1)
	s.Len(second, 1)
}

func (s *HubSuite) TestCancelUnsubscribesAndClosesChannel() {
	ch, cancel := s.hub.Subscribe("lounge")
	s.Equal(1, s.hub.SubscriberCount("lounge"))

	cancel()
	s.Equal(0, s.hub.SubscriberCount("lounge"))

	_, open := <-ch
	s.False(open)

	// Publishing into an empty room must not panic.
	s.hub.Publish(event("lounge", model.EventGameOver))
}

func (s *HubSuite) TestCancelIsIdempotent() {
	_, cancel := s.hub.Subscribe("lounge")
	cancel()
	cancel()
	s.Equal(0, s.hub.SubscriberCount("lounge"))
}

func (s *HubSuite) TestSlowSubscriberDropsInsteadOfBlocking() {
	ch, cancel := s.hub.Subscribe("lounge")
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		s.hub.Publish(event("lounge", model.EventTurnStarted))
	}

	// The buffer holds exactly subscriberBuffer events; the rest were dropped
	// without Publish ever blocking.
	s.Len(ch, subscriberBuffer)
}

func (s *HubSuite) TestSubscriberCountUnknownRoom() {
	s.Equal(0, s.hub.SubscriberCount("nowhere"))
}
