package registry

import (
	"log/slog"
	"sync"
	"time"

	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/game"
)

// Config holds the idle-sweep settings
type Config struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// DefaultConfig returns the default sweep settings
func DefaultConfig() Config {
	return Config{
		IdleTTL:       30 * time.Minute,
		SweepInterval: 5 * time.Minute,
	}
}

// Registry owns one Game per room key. GetOrCreate guarantees at most one
// instance per key even under concurrent first access, and a background
// sweep drops games that have sat in the Over phase beyond the idle TTL so
// memory stays bounded.
type Registry struct {
	mu    sync.Mutex
	games map[model.RoomKey]*game.Game

	deps   game.Deps
	cfg    Config
	logger *slog.Logger
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Registry and starts its sweep loop
func New(deps game.Deps, cfg Config, logger *slog.Logger) *Registry {
	r := &Registry{
		games:  make(map[model.RoomKey]*game.Game),
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
	if cfg.SweepInterval > 0 {
		r.wg.Add(1)
		go r.sweepLoop()
	}
	return r
}

// GetOrCreate returns the room's game, creating it on first access
func (r *Registry) GetOrCreate(key model.RoomKey) *game.Game {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.games[key]; ok {
		return g
	}
	g := game.New(key, r.deps)
	r.games[key] = g
	r.logger.Info("game created", slog.String("room", string(key)))
	return g
}

// Get returns the room's game if one exists
func (r *Registry) Get(key model.RoomKey) (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[key]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return g, nil
}

// Remove drops the room's game, cancelling any armed timer
func (r *Registry) Remove(key model.RoomKey) {
	r.mu.Lock()
	g, ok := r.games[key]
	if ok {
		delete(r.games, key)
	}
	r.mu.Unlock()

	if ok {
		g.Close()
		r.logger.Info("game removed", slog.String("room", string(key)))
	}
}

// Len reports the number of live games
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Close stops the sweeper and cancels every game's timer
func (r *Registry) Close() {
	close(r.done)
	r.wg.Wait()

	r.mu.Lock()
	games := make([]*game.Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	r.games = make(map[model.RoomKey]*game.Game)
	r.mu.Unlock()

	for _, g := range games {
		g.Close()
	}
}

func (r *Registry) sweepLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep removes games that are idle, finished, and past the TTL. Games in
// the Lobby or Running phase are never swept.
func (r *Registry) Sweep() int {
	cutoff := r.deps.Clock.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []*game.Game
	for key, g := range r.games {
		if g.Phase() == model.PhaseOver && g.LastActive().Before(cutoff) {
			stale = append(stale, g)
			delete(r.games, key)
		}
	}
	r.mu.Unlock()

	for _, g := range stale {
		g.Close()
		r.logger.Info("idle game swept", slog.String("room", string(g.Key())))
	}
	return len(stale)
}
