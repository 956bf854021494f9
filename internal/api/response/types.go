package response

import (
	"time"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
	}
}

// Challenge represents the live constraint for a turn
type Challenge struct {
	Length int    `json:"length"`
	Letter string `json:"letter"`
}

// ChallengeFromModel converts model.Challenge
func ChallengeFromModel(c model.Challenge) Challenge {
	return Challenge{
		Length: c.Length,
		Letter: string(c.Letter),
	}
}

// Turn represents a live turn prompt
type Turn struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Challenge   Challenge `json:"challenge"`
	TimeLimitMS int64     `json:"time_limit_ms"`
	Round       int       `json:"round"`
}

// TurnFromModel converts model.TurnInfo
func TurnFromModel(t model.TurnInfo) Turn {
	return Turn{
		PlayerID:    string(t.PlayerID),
		DisplayName: t.DisplayName,
		Challenge:   ChallengeFromModel(t.Challenge),
		TimeLimitMS: t.TimeLimit.Milliseconds(),
		Round:       t.Round,
	}
}

// Snapshot represents a room's game state
type Snapshot struct {
	Room       string         `json:"room"`
	Phase      string         `json:"phase"`
	Mode       string         `json:"mode"`
	Owner      string         `json:"owner,omitempty"`
	Players    []Player       `json:"players"`
	Eliminated []string       `json:"eliminated,omitempty"`
	Streaks    map[string]int `json:"streaks,omitempty"`
	Round      int            `json:"round"`
	UsedWords  int            `json:"used_words"`
	Current    *Turn          `json:"current_turn,omitempty"`
}

// SnapshotFromModel converts model.Snapshot
func SnapshotFromModel(s model.Snapshot) Snapshot {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p)
	}

	eliminated := make([]string, len(s.Eliminated))
	for i, id := range s.Eliminated {
		eliminated[i] = string(id)
	}

	streaks := make(map[string]int, len(s.Streaks))
	for id, streak := range s.Streaks {
		streaks[string(id)] = streak
	}

	var current *Turn
	if s.Current != nil {
		t := TurnFromModel(*s.Current)
		current = &t
	}

	return Snapshot{
		Room:       string(s.Room),
		Phase:      string(s.Phase),
		Mode:       string(s.Mode),
		Owner:      string(s.Owner),
		Players:    players,
		Eliminated: eliminated,
		Streaks:    streaks,
		Round:      s.Round,
		UsedWords:  s.UsedWords,
		Current:    current,
	}
}

// WordAccepted is the response after a successful word submission
type WordAccepted struct {
	Word     string `json:"word"`
	PlayerID string `json:"player_id"`
	Streak   int    `json:"streak"`
	NextTurn *Turn  `json:"next_turn,omitempty"`
}

// WordAcceptedFromModel converts model.SubmitResult
func WordAcceptedFromModel(r *model.SubmitResult) WordAccepted {
	resp := WordAccepted{
		Word:     r.Word,
		PlayerID: string(r.PlayerID),
		Streak:   r.Streak,
	}
	if r.NextTurn != nil {
		t := TurnFromModel(*r.NextTurn)
		resp.NextTurn = &t
	}
	return resp
}

// Hint carries candidate words for the live challenge
type Hint struct {
	Challenge Challenge `json:"challenge"`
	Words     []string  `json:"words"`
}

// HintFromModel converts model.HintResult
func HintFromModel(h *model.HintResult) Hint {
	return Hint{
		Challenge: ChallengeFromModel(h.Challenge),
		Words:     h.Words,
	}
}

// PlayerStats represents a player's lifetime record
type PlayerStats struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Wins        int       `json:"wins"`
	GamesPlayed int       `json:"games_played"`
	WordsPlayed int       `json:"words_played"`
	BestStreak  int       `json:"best_streak"`
	Points      int       `json:"points"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		PlayerID:    string(s.PlayerID),
		DisplayName: s.DisplayName,
		Wins:        s.Wins,
		GamesPlayed: s.GamesPlayed,
		WordsPlayed: s.WordsPlayed,
		BestStreak:  s.BestStreak,
		Points:      s.Points,
		UpdatedAt:   s.UpdatedAt,
	}
}

// LeaderboardEntry represents one row of the leaderboard
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
	Points      int    `json:"points"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts a slice of model.LeaderboardEntry
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			PlayerID:    string(e.PlayerID),
			DisplayName: e.DisplayName,
			Wins:        e.Wins,
			Points:      e.Points,
		}
	}
	return Leaderboard{Entries: out}
}

// Entitlement reports how many uses of a boost a player holds
type Entitlement struct {
	PlayerID string `json:"player_id"`
	Kind     string `json:"kind"`
	Count    int    `json:"count"`
}
