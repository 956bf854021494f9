package model

import "time"

// RoomKey identifies the chat room that scopes one game instance
type RoomKey string

// Phase represents the lifecycle phase of a room's game
type Phase string

const (
	PhaseLobby   Phase = "lobby"   // Waiting for players to join
	PhaseRunning Phase = "running" // Turns in progress
	PhaseOver    Phase = "over"    // Finished, stopped, or never started
)

// Mode selects the challenge difficulty policy
type Mode string

const (
	ModeProgressive Mode = "progressive" // Length grows each completed round
	ModeRandomized  Mode = "randomized"  // Length uniform in [3,12] every turn
)

// GameConfig holds per-room settings chosen when the lobby opens
type GameConfig struct {
	Mode Mode
}

// DefaultGameConfig returns the default room configuration
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Mode: ModeProgressive,
	}
}

// TurnInfo describes the turn that is now live: who plays, what they must
// produce, and how long they have. Emitted with every turn prompt.
type TurnInfo struct {
	PlayerID    PlayerID
	DisplayName string
	Challenge   Challenge
	TimeLimit   time.Duration
	Round       int
}

// SubmitResult is the outcome of an accepted word submission. An accepted
// word never eliminates anyone, so it always carries the next turn.
type SubmitResult struct {
	Word     string
	PlayerID PlayerID
	Streak   int
	NextTurn *TurnInfo
}

// GameOverInfo reports the terminal state of a finished game
type GameOverInfo struct {
	Winner     *Player // nil when the game was stopped with no survivor
	Rounds     int
	WordsUsed  int
	Eliminated []PlayerID
}

// HintResult carries up to three candidate words for the live challenge
type HintResult struct {
	Challenge Challenge
	Words     []string
}

// Snapshot is a read-only copy of a game's externally visible state,
// safe to hand to the transport layer after the game mutex is released.
type Snapshot struct {
	Room       RoomKey
	Phase      Phase
	Mode       Mode
	Owner      PlayerID
	Players    []Player
	Eliminated []PlayerID
	Streaks    map[PlayerID]int
	Round      int
	UsedWords  int
	Current    *TurnInfo // nil unless phase is running
}
