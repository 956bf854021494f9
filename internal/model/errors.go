package model

import "errors"

// Common errors used across the application
var (
	// Room/lifecycle errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrLobbyAlreadyOpen    = errors.New("a lobby is already open")
	ErrGameInProgress      = errors.New("a game is already in progress")
	ErrNoLobbyOpen         = errors.New("no lobby is open")
	ErrNoGameRunning       = errors.New("no game is running")
	ErrAlreadyJoined       = errors.New("player has already joined")
	ErrInsufficientPlayers = errors.New("at least two players are required")

	// Turn errors
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrNotInGame     = errors.New("player is not in this game")

	// Word rejection reasons, in validation order
	ErrWrongLength  = errors.New("word has the wrong length")
	ErrWrongLetter  = errors.New("word starts with the wrong letter")
	ErrWordUsed     = errors.New("word was already used this game")
	ErrNotInLexicon = errors.New("word is not in the lexicon")

	// Economy errors
	ErrEntitlementExhausted = errors.New("no entitlement remaining")

	// Stats errors
	ErrStatsNotFound = errors.New("no stats recorded for player")

	// A game whose turn index can no longer reach a live player is
	// force-reset; this is fatal for that game only, never the registry.
	ErrGameCorrupt = errors.New("game state is corrupt")
)
