package storage

import (
	"context"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// Storage is the persistence interface for the stats and economy
// collaborators. The game engine calls it as a side effect of transitions;
// write failures are logged and the game continues, because in-memory game
// state is authoritative for gameplay correctness.
type Storage interface {
	// Stats operations
	GetStats(ctx context.Context, id model.PlayerID) (*model.PlayerStats, error)
	RecordWordPlayed(ctx context.Context, id model.PlayerID, displayName, word string, streak int) error
	RecordForfeit(ctx context.Context, id model.PlayerID, penalty int) error
	RecordWin(ctx context.Context, id model.PlayerID, displayName string) error
	IncrementGamesPlayed(ctx context.Context, id model.PlayerID) error
	TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

	// Economy operations. ConsumeEntitlement is an atomic read-modify-write:
	// it either decrements a positive count or returns
	// model.ErrEntitlementExhausted without mutating anything.
	GetEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) (int, error)
	ConsumeEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) error
	GrantEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind, n int) error
	CreditPoints(ctx context.Context, id model.PlayerID, n int) error
}
