package model

import "time"

// PlayerID uniquely identifies a player across the system. It is opaque to
// the engine; the transport layer decides what goes in it (a chat user id).
type PlayerID string

// Player represents a seated game participant
type Player struct {
	ID          PlayerID
	DisplayName string
	JoinedAt    time.Time
}

// EntitlementKind identifies a consumable boost tracked by the economy store
type EntitlementKind string

const (
	EntitlementSkip    EntitlementKind = "skip"
	EntitlementHint    EntitlementKind = "hint"
	EntitlementRebound EntitlementKind = "rebound"
)
