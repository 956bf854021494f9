package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/C21MS0N/kurimu-words/internal/config"
	"github.com/C21MS0N/kurimu-words/internal/dependencies/mocks"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
	"github.com/C21MS0N/kurimu-words/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestConfig returns a config suited to tests: in-memory storage, generous
// turn times so timers never fire mid-test, and no background sweeper.
func TestConfig() config.Config {
	return config.Config{
		TurnBase:       time.Hour,
		TurnFloor:      time.Minute,
		TurnDecrement:  0,
		ForfeitPenalty: 5,
		WordReward:     1,
		WinReward:      10,
		HintWords:      3,
		IdleTTL:        30 * time.Minute,
		SweepInterval:  0,
		StorageKind:    StorageTypeMemory,
	}
}

// NewTestApp creates an App wired with mocked dependencies and a small
// deterministic word list
func NewTestApp() *TestApp {
	cfg := TestConfig()
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lex := lexicon.New(testWords(), "test")

	app := newWithDependencies(cfg, store, lex, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// testWords is a small fixed lexicon covering lengths 3 through 5 for the
// letters tests exercise
func testWords() []string {
	return []string{
		"ant", "ape", "arc", "ask", "axe",
		"bat", "bee", "bog", "bun",
		"cat", "cob", "cup",
		"dog", "dot", "dug",
		"worm", "wasp", "wolf", "wren",
		"acre", "aunt", "away",
		"bark", "bell", "bolt",
		"crab", "crow",
		"apple", "amber", "angle",
		"badge", "beach", "bison",
		"cabin", "cedar", "chalk",
	}
}
