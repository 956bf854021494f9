package redis

import (
	"fmt"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// Key prefix for all word-game data
const keyPrefix = "kurimu"

// statsKey returns the Redis key for a player's stats hash
func statsKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, id)
}

// inventoryKey returns the Redis key for a player's entitlement hash
func inventoryKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:inventory:%s", keyPrefix, id)
}

// leaderboardKey returns the Redis key for the wins-ordered sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// Stats hash field names
const (
	fieldDisplayName = "display_name"
	fieldWins        = "wins"
	fieldGamesPlayed = "games_played"
	fieldWordsPlayed = "words_played"
	fieldBestStreak  = "best_streak"
	fieldPoints      = "points"
	fieldUpdatedAt   = "updated_at"
)
