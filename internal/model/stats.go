package model

import "time"

// PlayerStats is the persistent per-player record kept by the stats store.
// Points earned before an elimination are retained; only an explicit forfeit
// carries a penalty.
type PlayerStats struct {
	PlayerID    PlayerID
	DisplayName string
	Wins        int
	GamesPlayed int
	WordsPlayed int
	BestStreak  int
	Points      int
	UpdatedAt   time.Time
}

// LeaderboardEntry is one row of the global leaderboard, ordered by wins
type LeaderboardEntry struct {
	PlayerID    PlayerID
	DisplayName string
	Wins        int
	Points      int
}
