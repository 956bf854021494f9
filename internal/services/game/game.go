package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/C21MS0N/kurimu-words/internal/dependencies/clock"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/challenge"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
	"github.com/C21MS0N/kurimu-words/internal/services/scheduler"
	"github.com/C21MS0N/kurimu-words/internal/storage"
	"github.com/C21MS0N/kurimu-words/internal/transport"
)

// Rules holds the reward/penalty knobs the engine applies as side effects.
// Points earned before an elimination are retained; timeouts carry no
// penalty; only an explicit forfeit does.
type Rules struct {
	ForfeitPenalty int
	WordReward     int
	WinReward      int
	HintWords      int
}

// DefaultRules returns the default reward policy
func DefaultRules() Rules {
	return Rules{
		ForfeitPenalty: 5,
		WordReward:     1,
		WinReward:      10,
		HintWords:      3,
	}
}

// Deps bundles the collaborators shared by every game instance
type Deps struct {
	Lexicon   *lexicon.Service
	Generator *challenge.Generator
	Scheduler scheduler.Config
	Storage   storage.Storage
	Sink      transport.Sink
	Clock     clock.Clock
	Rules     Rules
	Logger    *slog.Logger
}

// Game is the per-room state machine. Every public operation takes the game
// mutex and runs one transition to completion, so a room's event stream is
// logically single-threaded even though many rooms run concurrently. The
// armed turn timer is owned exclusively by this struct; its callback
// re-acquires the mutex and re-validates the turn before acting.
type Game struct {
	key  model.RoomKey
	deps Deps

	mu             sync.Mutex
	phase          model.Phase
	mode           model.Mode
	owner          model.PlayerID
	players        []model.Player
	currentIdx     int
	eliminated     map[model.PlayerID]struct{}
	used           map[string]struct{}
	streaks        map[model.PlayerID]int
	rounds         int // completed full rotations
	turnSeq        int // monotonically increasing per started turn
	challenge      model.Challenge
	pendingRebound bool
	timer          *scheduler.TurnTimer
	lastActive     time.Time
}

// New creates a fresh game for a room. It starts in the Over phase; a lobby
// must be opened before anything else can happen.
func New(key model.RoomKey, deps Deps) *Game {
	return &Game{
		key:        key,
		deps:       deps,
		phase:      model.PhaseOver,
		eliminated: make(map[model.PlayerID]struct{}),
		used:       make(map[string]struct{}),
		streaks:    make(map[model.PlayerID]int),
		timer:      scheduler.NewTurnTimer(),
		lastActive: deps.Clock.Now(),
	}
}

// Key returns the room key this game is scoped to
func (g *Game) Key() model.RoomKey {
	return g.key
}

// OpenLobby resets the game and opens a lobby with the owner seated first.
// It fails if a lobby is already open or a game is running.
func (g *Game) OpenLobby(ctx context.Context, owner model.Player, cfg model.GameConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	switch g.phase {
	case model.PhaseLobby:
		return model.ErrLobbyAlreadyOpen
	case model.PhaseRunning:
		return model.ErrGameInProgress
	}

	g.resetLocked()
	g.phase = model.PhaseLobby
	g.mode = cfg.Mode
	if g.mode == "" {
		g.mode = model.ModeProgressive
	}
	owner.JoinedAt = g.deps.Clock.Now()
	g.owner = owner.ID
	g.players = []model.Player{owner}
	g.streaks[owner.ID] = 0

	g.deps.Logger.Info("lobby opened",
		slog.String("room", string(g.key)),
		slog.String("owner", string(owner.ID)),
		slog.String("mode", string(g.mode)),
	)
	g.emitLocked(model.EventLobbyOpened, owner.ID, model.LobbyOpenedPayload{Owner: owner, Mode: g.mode})
	return nil
}

// Join seats a player in the open lobby. Turn order is join order.
func (g *Game) Join(ctx context.Context, player model.Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseLobby {
		return model.ErrNoLobbyOpen
	}
	for _, p := range g.players {
		if p.ID == player.ID {
			return model.ErrAlreadyJoined
		}
	}

	player.JoinedAt = g.deps.Clock.Now()
	g.players = append(g.players, player)
	g.streaks[player.ID] = 0

	g.emitLocked(model.EventPlayerJoined, player.ID, model.PlayerJoinedPayload{
		Player:     player,
		SeatNumber: len(g.players),
		Total:      len(g.players),
	})
	return nil
}

// Begin starts the game: resets per-game counters, generates the first
// challenge, and arms the timer for the first player.
func (g *Game) Begin(ctx context.Context) (*model.TurnInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseLobby {
		return nil, model.ErrNoLobbyOpen
	}
	if len(g.players) < 2 {
		return nil, model.ErrInsufficientPlayers
	}

	g.phase = model.PhaseRunning
	g.currentIdx = 0
	g.rounds = 0
	g.turnSeq = 0
	g.used = make(map[string]struct{})
	g.eliminated = make(map[model.PlayerID]struct{})
	g.pendingRebound = false
	for _, p := range g.players {
		g.streaks[p.ID] = 0
	}

	turn := g.startTurnLocked(false)

	g.deps.Logger.Info("game started",
		slog.String("room", string(g.key)),
		slog.Int("players", len(g.players)),
		slog.String("mode", string(g.mode)),
	)
	g.emitLocked(model.EventGameStarted, g.players[0].ID, model.GameStartedPayload{
		Players: append([]model.Player(nil), g.players...),
		Mode:    g.mode,
		First:   *turn,
	})
	return turn, nil
}

// Stop cancels any armed timer and resets the game to Over. Authorization
// for who may stop a game is the transport layer's concern.
func (g *Game) Stop(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	wasActive := g.phase == model.PhaseRunning || g.phase == model.PhaseLobby
	g.resetLocked()
	if wasActive {
		g.deps.Logger.Info("game stopped", slog.String("room", string(g.key)))
		g.emitLocked(model.EventGameStopped, "", nil)
	}
	return nil
}

// Snapshot returns a copy of the externally visible state
func (g *Game) Snapshot() model.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := model.Snapshot{
		Room:      g.key,
		Phase:     g.phase,
		Mode:      g.mode,
		Owner:     g.owner,
		Players:   append([]model.Player(nil), g.players...),
		Streaks:   make(map[model.PlayerID]int, len(g.streaks)),
		Round:     g.rounds,
		UsedWords: len(g.used),
	}
	for id := range g.eliminated {
		snap.Eliminated = append(snap.Eliminated, id)
	}
	for id, streak := range g.streaks {
		snap.Streaks[id] = streak
	}
	if g.phase == model.PhaseRunning {
		turn := g.turnInfoLocked()
		snap.Current = &turn
	}
	return snap
}

// Phase returns the current lifecycle phase
func (g *Game) Phase() model.Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// LastActive reports when the game last processed an operation. The
// registry's idle sweep uses it.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// Close cancels any armed timer. Called when the registry drops the game.
func (g *Game) Close() {
	g.timer.Cancel()
}

// resetLocked clears all per-game state and cancels the live timer
func (g *Game) resetLocked() {
	g.timer.Cancel()
	g.phase = model.PhaseOver
	g.players = nil
	g.owner = ""
	g.currentIdx = 0
	g.rounds = 0
	g.turnSeq = 0
	g.eliminated = make(map[model.PlayerID]struct{})
	g.used = make(map[string]struct{})
	g.streaks = make(map[model.PlayerID]int)
	g.challenge = model.Challenge{}
	g.pendingRebound = false
}

func (g *Game) touchLocked() {
	g.lastActive = g.deps.Clock.Now()
}

func (g *Game) currentPlayerLocked() model.Player {
	return g.players[g.currentIdx]
}

func (g *Game) isEliminatedLocked(id model.PlayerID) bool {
	_, out := g.eliminated[id]
	return out
}

func (g *Game) turnInfoLocked() model.TurnInfo {
	current := g.currentPlayerLocked()
	return model.TurnInfo{
		PlayerID:    current.ID,
		DisplayName: current.DisplayName,
		Challenge:   g.challenge,
		TimeLimit:   g.deps.Scheduler.TurnTime(g.rounds),
		Round:       g.rounds,
	}
}

func (g *Game) emitLocked(t model.EventType, player model.PlayerID, payload any) {
	if g.deps.Sink == nil {
		return
	}
	g.deps.Sink.Publish(model.NewEvent(t, g.deps.Clock.Now(), g.key, player, payload))
}
