package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Snapshot:
		o.printSnapshot(v)
	case Turn:
		o.printTurn(v)
	case WordAccepted:
		o.printWordAccepted(v)
	case Hint:
		o.printHint(v)
	case PlayerStats:
		o.printStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Entitlement:
		o.printEntitlement(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Snapshot response type (matches API)
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

// Player response type
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Challenge response type
type Challenge struct {
	Length int    `json:"length"`
	Letter string `json:"letter"`
}

// Turn response type
type Turn struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Challenge   Challenge `json:"challenge"`
	TimeLimitMS int64     `json:"time_limit_ms"`
	Round       int       `json:"round"`
}

// WordAccepted response type
type WordAccepted struct {
	Word     string `json:"word"`
	PlayerID string `json:"player_id"`
	Streak   int    `json:"streak"`
	NextTurn *Turn  `json:"next_turn,omitempty"`
}

// Hint response type
type Hint struct {
	Challenge Challenge `json:"challenge"`
	Words     []string  `json:"words"`
}

// PlayerStats response type
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

// LeaderboardEntry response type
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
	Points      int    `json:"points"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Entitlement response type
type Entitlement struct {
	PlayerID string `json:"player_id"`
	Kind     string `json:"kind"`
	Count    int    `json:"count"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Printf("Room: %s\n", s.Room)
	fmt.Printf("Phase: %s  Mode: %s  Round: %d  Words used: %d\n", s.Phase, s.Mode, s.Round, s.UsedWords)

	eliminated := make(map[string]bool, len(s.Eliminated))
	for _, id := range s.Eliminated {
		eliminated[id] = true
	}

	fmt.Println("Players:")
	for _, p := range s.Players {
		marker := ""
		if p.ID == s.Owner {
			marker = " (owner)"
		}
		if eliminated[p.ID] {
			marker += " [out]"
		}
		fmt.Printf("  %s <%s>%s\n", displayName(p), p.ID, marker)
	}

	if s.Current != nil {
		fmt.Println("Current turn:")
		o.printTurn(*s.Current)
	}
}

func (o *Output) printTurn(t Turn) {
	limit := time.Duration(t.TimeLimitMS) * time.Millisecond
	fmt.Printf("  %s is up: %d letters starting with %q, %s to answer (round %d)\n",
		t.DisplayName, t.Challenge.Length, t.Challenge.Letter, limit, t.Round)
}

func (o *Output) printWordAccepted(w WordAccepted) {
	fmt.Printf("Accepted %q (streak %d)\n", w.Word, w.Streak)
	if w.NextTurn != nil {
		o.printTurn(*w.NextTurn)
	}
}

func (o *Output) printHint(h Hint) {
	fmt.Printf("Hints for %d letters starting with %q: %s\n",
		h.Challenge.Length, h.Challenge.Letter, strings.Join(h.Words, ", "))
}

func (o *Output) printStats(s PlayerStats) {
	fmt.Printf("Player: %s <%s>\n", s.DisplayName, s.PlayerID)
	fmt.Printf("  Wins: %d  Games: %d  Words: %d  Best streak: %d  Points: %d\n",
		s.Wins, s.GamesPlayed, s.WordsPlayed, s.BestStreak, s.Points)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	for i, e := range l.Entries {
		name := e.DisplayName
		if name == "" {
			name = e.PlayerID
		}
		fmt.Printf("%2d. %s  wins=%d points=%d\n", i+1, name, e.Wins, e.Points)
	}
}

func (o *Output) printEntitlement(e Entitlement) {
	fmt.Printf("%s has %d %s use(s)\n", e.PlayerID, e.Count, e.Kind)
}

func displayName(p Player) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}
