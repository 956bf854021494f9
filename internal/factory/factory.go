package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/C21MS0N/kurimu-words/internal/config"
	"github.com/C21MS0N/kurimu-words/internal/dependencies/clock"
	"github.com/C21MS0N/kurimu-words/internal/dependencies/random"
	"github.com/C21MS0N/kurimu-words/internal/services/challenge"
	"github.com/C21MS0N/kurimu-words/internal/services/game"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
	"github.com/C21MS0N/kurimu-words/internal/services/registry"
	"github.com/C21MS0N/kurimu-words/internal/services/scheduler"
	"github.com/C21MS0N/kurimu-words/internal/storage"
	"github.com/C21MS0N/kurimu-words/internal/storage/memory"
	redisstorage "github.com/C21MS0N/kurimu-words/internal/storage/redis"
	sqlitestorage "github.com/C21MS0N/kurimu-words/internal/storage/sqlite"
	"github.com/C21MS0N/kurimu-words/internal/transport"
)

// Storage backend names
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Lexicon   *lexicon.Service
	Generator *challenge.Generator
	Hub       *transport.Hub
	Registry  *registry.Registry

	// closeStorage is non-nil when the backend owns a connection
	closeStorage func() error
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		store        storage.Storage
		closeStorage func() error
	)
	switch cfg.StorageKind {
	case "", StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closeStorage = redisStore.Close
	case StorageTypeSQLite:
		sqliteStore, err := sqlitestorage.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
		closeStorage = sqliteStore.Close
	default:
		return nil, errors.New("invalid storage kind: must be 'memory', 'redis' or 'sqlite'")
	}

	clk := clock.New()
	rnd := random.New()
	lex := lexicon.Load(cfg.DictionaryPath, logger)

	app := newWithDependencies(cfg, store, lex, clk, rnd, logger)
	app.closeStorage = closeStorage
	return app, nil
}

// newWithDependencies wires an App from explicit collaborators (useful for testing)
func newWithDependencies(cfg config.Config, store storage.Storage, lex *lexicon.Service, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	generator := challenge.NewGenerator(lex, clk, rnd, logger)
	hub := transport.NewHub(logger)

	deps := game.Deps{
		Lexicon:   lex,
		Generator: generator,
		Scheduler: scheduler.Config{
			Base:      cfg.TurnBase,
			Floor:     cfg.TurnFloor,
			Decrement: cfg.TurnDecrement,
		},
		Storage: store,
		Sink:    hub,
		Clock:   clk,
		Rules: game.Rules{
			ForfeitPenalty: cfg.ForfeitPenalty,
			WordReward:     cfg.WordReward,
			WinReward:      cfg.WinReward,
			HintWords:      cfg.HintWords,
		},
		Logger: logger,
	}

	reg := registry.New(deps, registry.Config{
		IdleTTL:       cfg.IdleTTL,
		SweepInterval: cfg.SweepInterval,
	}, logger)

	return &App{
		Storage:   store,
		Clock:     clk,
		Random:    rnd,
		Lexicon:   lex,
		Generator: generator,
		Hub:       hub,
		Registry:  reg,
	}
}

// Close stops the registry and releases the storage backend
func (a *App) Close() error {
	a.Registry.Close()
	if a.closeStorage != nil {
		return a.closeStorage()
	}
	return nil
}
