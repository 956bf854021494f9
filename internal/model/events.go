package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the type of event
type EventType string

const (
	// Lobby events
	EventLobbyOpened  EventType = "lobby_opened"
	EventPlayerJoined EventType = "player_joined"
	EventGameStarted  EventType = "game_started"
	EventGameStopped  EventType = "game_stopped"

	// Turn events
	EventTurnStarted        EventType = "turn_started"
	EventWordAccepted       EventType = "word_accepted"
	EventPlayerEliminated   EventType = "player_eliminated"
	EventTurnSkipped        EventType = "turn_skipped"
	EventChallengeRebounded EventType = "challenge_rebounded"
	EventHintIssued         EventType = "hint_issued"
	EventGameOver           EventType = "game_over"
	EventGameCorrupted      EventType = "game_corrupted"
)

// Event is the structured turn-update record the engine emits for the
// transport layer to render. The engine never formats user-facing text.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Room      RoomKey
	PlayerID  PlayerID // The player who triggered or is affected
	Payload   any      // Type-specific data
}

// NewEvent constructs an event with a fresh unique ID
func NewEvent(t EventType, ts time.Time, room RoomKey, player PlayerID, payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: ts,
		Room:      room,
		PlayerID:  player,
		Payload:   payload,
	}
}

// LobbyOpenedPayload contains data for lobby opened events
type LobbyOpenedPayload struct {
	Owner Player
	Mode  Mode
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player     Player
	SeatNumber int
	Total      int
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players []Player
	Mode    Mode
	First   TurnInfo
}

// TurnStartedPayload contains data for turn started events
type TurnStartedPayload struct {
	Turn TurnInfo
}

// WordAcceptedPayload contains data for word accepted events
type WordAcceptedPayload struct {
	Word   string
	Streak int
}

// EliminationReason distinguishes why a player left the running game
type EliminationReason string

const (
	EliminatedByTimeout EliminationReason = "timeout"
	EliminatedByForfeit EliminationReason = "forfeit"
)

// PlayerEliminatedPayload contains data for elimination events
type PlayerEliminatedPayload struct {
	Reason    EliminationReason
	Remaining int
}

// TurnSkippedPayload contains data for skip-boost events
type TurnSkippedPayload struct {
	Next TurnInfo
}

// ChallengeReboundedPayload contains data for rebound-boost events
type ChallengeReboundedPayload struct {
	Next TurnInfo // Same challenge, next player
}

// HintIssuedPayload contains data for hint events
type HintIssuedPayload struct {
	Count int // Candidate words are returned to the caller, not broadcast
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Info GameOverInfo
}

// GameCorruptedPayload contains data for forced-reset events
type GameCorruptedPayload struct {
	Reason string
}
