package game

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/C21MS0N/kurimu-words/internal/dependencies/mocks"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/challenge"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
	"github.com/C21MS0N/kurimu-words/internal/services/scheduler"
	"github.com/C21MS0N/kurimu-words/internal/storage/memory"
)

// captureSink records published events for assertions
type captureSink struct {
	mu     sync.Mutex
	events []model.Event
}

func (s *captureSink) Publish(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *captureSink) types() []model.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

func (s *captureSink) has(t model.EventType) bool {
	for _, got := range s.types() {
		if got == t {
			return true
		}
	}
	return false
}

type GameSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	sink    *captureSink
	game    *Game
	ctx     context.Context

	alice model.Player
	bob   model.Player
	carol model.Player
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.sink = &captureSink{}
	s.ctx = context.Background()

	s.alice = model.Player{ID: "alice", DisplayName: "Alice"}
	s.bob = model.Player{ID: "bob", DisplayName: "Bob"}
	s.carol = model.Player{ID: "carol", DisplayName: "Carol"}

	s.game = New("room-1", s.deps(scheduler.Config{
		// Generous times so timers never fire unless a test wants them to
		Base:      time.Hour,
		Floor:     time.Minute,
		Decrement: 0,
	}))
}

func (s *GameSuite) deps(sched scheduler.Config) Deps {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lex := lexicon.New([]string{
		"ant", "ape", "arc", "ash", "axe",
		"bat", "bee", "bog", "bun",
		"acre", "aunt", "away",
		"bark", "bell",
		"apple", "amber", "angle",
	}, "test")
	return Deps{
		Lexicon:   lex,
		Generator: challenge.NewGenerator(lex, s.clock, s.random, logger),
		Scheduler: sched,
		Storage:   s.storage,
		Sink:      s.sink,
		Clock:     s.clock,
		Rules:     DefaultRules(),
		Logger:    logger,
	}
}

// openAndJoin opens a lobby for alice and seats the given extra players
func (s *GameSuite) openAndJoin(extra ...model.Player) {
	s.Require().NoError(s.game.OpenLobby(s.ctx, s.alice, model.DefaultGameConfig()))
	for _, p := range extra {
		s.Require().NoError(s.game.Join(s.ctx, p))
	}
}

// Lobby tests

func (s *GameSuite) TestOpenLobbySeatsOwner() {
	err := s.game.OpenLobby(s.ctx, s.alice, model.DefaultGameConfig())
	s.Require().NoError(err)

	snap := s.game.Snapshot()
	s.Equal(model.PhaseLobby, snap.Phase)
	s.Equal(model.ModeProgressive, snap.Mode)
	s.Equal(model.PlayerID("alice"), snap.Owner)
	s.Require().Len(snap.Players, 1)
	s.Equal(model.PlayerID("alice"), snap.Players[0].ID)
	s.True(s.sink.has(model.EventLobbyOpened))
}

func (s *GameSuite) TestOpenLobbyTwiceFails() {
	s.openAndJoin()

	err := s.game.OpenLobby(s.ctx, s.bob, model.DefaultGameConfig())
	s.ErrorIs(err, model.ErrLobbyAlreadyOpen)
}

func (s *GameSuite) TestOpenLobbyWhileRunningFails() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	err = s.game.OpenLobby(s.ctx, s.carol, model.DefaultGameConfig())
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *GameSuite) TestJoinWithoutLobbyFails() {
	err := s.game.Join(s.ctx, s.bob)
	s.ErrorIs(err, model.ErrNoLobbyOpen)
}

func (s *GameSuite) TestJoinTwiceFails() {
	s.openAndJoin(s.bob)

	err := s.game.Join(s.ctx, s.bob)
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

func (s *GameSuite) TestJoinOrderIsTurnOrder() {
	s.openAndJoin(s.bob, s.carol)

	snap := s.game.Snapshot()
	s.Equal(model.PlayerID("alice"), snap.Players[0].ID)
	s.Equal(model.PlayerID("bob"), snap.Players[1].ID)
	s.Equal(model.PlayerID("carol"), snap.Players[2].ID)
}

// Begin tests

func (s *GameSuite) TestBeginRequiresTwoPlayers() {
	s.openAndJoin()

	_, err := s.game.Begin(s.ctx)
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *GameSuite) TestBeginWithoutLobbyFails() {
	_, err := s.game.Begin(s.ctx)
	s.ErrorIs(err, model.ErrNoLobbyOpen)
}

func (s *GameSuite) TestBeginStartsFirstTurn() {
	s.openAndJoin(s.bob)

	turn, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.PlayerID("alice"), turn.PlayerID)
	s.Equal(3, turn.Challenge.Length)
	s.Equal('a', turn.Challenge.Letter)
	s.Equal(0, turn.Round)
	s.Equal(time.Hour, turn.TimeLimit)
	s.Equal(model.PhaseRunning, s.game.Phase())
	s.True(s.sink.has(model.EventGameStarted))
	// The first turn rides inside the started event
	s.False(s.sink.has(model.EventTurnStarted))
}

// Submission validation tests

func (s *GameSuite) TestSubmitOutOfTurn() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "bob", "ant")
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *GameSuite) TestSubmitWithoutGameFails() {
	_, err := s.game.SubmitWord(s.ctx, "alice", "ant")
	s.ErrorIs(err, model.ErrNoGameRunning)
}

func (s *GameSuite) TestValidationOrder() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	// Wrong length wins over wrong letter
	_, err = s.game.SubmitWord(s.ctx, "alice", "bark")
	s.ErrorIs(err, model.ErrWrongLength)

	// Right length, wrong letter
	_, err = s.game.SubmitWord(s.ctx, "alice", "bat")
	s.ErrorIs(err, model.ErrWrongLetter)

	// Right shape, not a word
	_, err = s.game.SubmitWord(s.ctx, "alice", "aaa")
	s.ErrorIs(err, model.ErrNotInLexicon)
}

func (s *GameSuite) TestRejectionLeavesTurnLive() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "alice", "zzz")
	s.Require().Error(err)

	// Same player can retry and succeed
	result, err := s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)
	s.Equal("ant", result.Word)
}

func (s *GameSuite) TestSubmitNormalizesInput() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	result, err := s.game.SubmitWord(s.ctx, "alice", "  ANT ")
	s.Require().NoError(err)
	s.Equal("ant", result.Word)
}

func (s *GameSuite) TestAcceptedWordAdvancesTurn() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	result, err := s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	s.Equal(1, result.Streak)
	s.Require().NotNil(result.NextTurn)
	s.Equal(model.PlayerID("bob"), result.NextTurn.PlayerID)

	snap := s.game.Snapshot()
	s.Equal(1, snap.UsedWords)
	s.True(s.sink.has(model.EventWordAccepted))
	s.True(s.sink.has(model.EventTurnStarted))
}

func (s *GameSuite) TestUsedWordsSharedAcrossPlayers() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	// Bob's challenge is the same shape; the word alice used is burned
	_, err = s.game.SubmitWord(s.ctx, "bob", "ant")
	s.ErrorIs(err, model.ErrWordUsed)
}

func (s *GameSuite) TestAcceptedWordRecordsStats() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, stats.WordsPlayed)
	s.Equal(1, stats.BestStreak)
	s.Equal(1, stats.Points)
}

func (s *GameSuite) TestProgressiveLengthGrowsAfterFullRotation() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	// Round 0: both answer 3-letter 'a' words
	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)
	result, err := s.game.SubmitWord(s.ctx, "bob", "ape")
	s.Require().NoError(err)

	// Wrapped back to alice: round 1, length 4
	s.Equal(model.PlayerID("alice"), result.NextTurn.PlayerID)
	s.Equal(1, result.NextTurn.Round)
	s.Equal(4, result.NextTurn.Challenge.Length)

	result, err = s.game.SubmitWord(s.ctx, "alice", "acre")
	s.Require().NoError(err)
	s.Equal(2, result.Streak)
	s.Equal(4, result.NextTurn.Challenge.Length)
}

// Forfeit and elimination tests

func (s *GameSuite) TestForfeitOutOfTurn() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	err = s.game.Forfeit(s.ctx, "bob")
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *GameSuite) TestForfeitAppliesPenalty() {
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "alice", 10))

	s.openAndJoin(s.bob, s.carol)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.game.Forfeit(s.ctx, "alice"))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(5, stats.Points)
}

func (s *GameSuite) TestForfeitEliminatesAndAdvances() {
	s.openAndJoin(s.bob, s.carol)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.game.Forfeit(s.ctx, "alice"))

	snap := s.game.Snapshot()
	s.Equal(model.PhaseRunning, snap.Phase)
	s.Contains(snap.Eliminated, model.PlayerID("alice"))
	s.Equal(model.PlayerID("bob"), snap.Current.PlayerID)
	s.True(s.sink.has(model.EventPlayerEliminated))
}

func (s *GameSuite) TestEliminatedPlayerSkippedOnLaterRotations() {
	s.openAndJoin(s.bob, s.carol)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.game.Forfeit(s.ctx, "alice"))

	// bob plays, then carol; the wrap must skip alice and land on bob
	_, err = s.game.SubmitWord(s.ctx, "bob", "ant")
	s.Require().NoError(err)
	result, err := s.game.SubmitWord(s.ctx, "carol", "ape")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("bob"), result.NextTurn.PlayerID)
	s.Equal(1, result.NextTurn.Round)
}

func (s *GameSuite) TestLastOpponentEliminationEndsGame() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.game.Forfeit(s.ctx, "alice"))

	s.Equal(model.PhaseOver, s.game.Phase())
	s.True(s.sink.has(model.EventGameOver))

	// Winner credited exactly once
	stats, err := s.storage.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, stats.Wins)
	s.Equal(10, stats.Points)
	s.Equal(1, stats.GamesPlayed)

	// Loser still counted as having played
	stats, err = s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(0, stats.Wins)
	s.Equal(1, stats.GamesPlayed)
}

func (s *GameSuite) TestEliminationResetsStreak() {
	s.openAndJoin(s.bob, s.carol)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	// bob forfeits; later alice's streak survives, bob's is zeroed
	s.Require().NoError(s.game.Forfeit(s.ctx, "bob"))

	snap := s.game.Snapshot()
	s.Equal(1, snap.Streaks["alice"])
	s.Equal(0, snap.Streaks["bob"])
}

// Timer tests

func (s *GameSuite) TestStaleTimerFireIsDiscarded() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	// Capture the first turn's identity, then let alice answer in time
	staleSeq := s.game.turnSeq
	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	// A late fire for the superseded turn must be a no-op
	s.game.onTimerFired("alice", staleSeq)

	snap := s.game.Snapshot()
	s.Equal(model.PhaseRunning, snap.Phase)
	s.Empty(snap.Eliminated)
	s.Equal(model.PlayerID("bob"), snap.Current.PlayerID)
}

func (s *GameSuite) TestTimerFireForWrongPlayerIsDiscarded() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.game.onTimerFired("bob", s.game.turnSeq)

	snap := s.game.Snapshot()
	s.Empty(snap.Eliminated)
	s.Equal(model.PlayerID("alice"), snap.Current.PlayerID)
}

func (s *GameSuite) TestTimeoutEliminatesAndFindsWinner() {
	s.game = New("room-timeout", s.deps(scheduler.Config{
		Base:      15 * time.Millisecond,
		Floor:     5 * time.Millisecond,
		Decrement: 0,
	}))
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return s.game.Phase() == model.PhaseOver
	}, 2*time.Second, 5*time.Millisecond)

	stats, err := s.storage.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, stats.Wins)

	// Timeouts carry no points penalty
	stats, err = s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(0, stats.Points)
}

// Boost tests

func (s *GameSuite) TestSkipWithoutEntitlement() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.ApplySkip(s.ctx, "alice")
	s.ErrorIs(err, model.ErrEntitlementExhausted)

	// Rejection leaves the turn untouched
	snap := s.game.Snapshot()
	s.Equal(model.PlayerID("alice"), snap.Current.PlayerID)
}

func (s *GameSuite) TestSkipPassesTurn() {
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "alice", model.EntitlementSkip, 1))

	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	turn, err := s.game.ApplySkip(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("bob"), turn.PlayerID)

	snap := s.game.Snapshot()
	s.Empty(snap.Eliminated)
	s.True(s.sink.has(model.EventTurnSkipped))

	count, err := s.storage.GetEntitlement(s.ctx, "alice", model.EntitlementSkip)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *GameSuite) TestSkipOutOfTurn() {
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "bob", model.EntitlementSkip, 1))

	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.ApplySkip(s.ctx, "bob")
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *GameSuite) TestReboundPreservesChallengeForOneTurn() {
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "alice", model.EntitlementRebound, 1))

	s.openAndJoin(s.bob, s.carol)
	// First letter draw: 1 -> 'b'
	s.random.QueueIntn(1)
	first, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)
	s.Equal('b', first.Challenge.Letter)

	// The challenge bounces to bob unchanged
	turn, err := s.game.ApplyRebound(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("bob"), turn.PlayerID)
	s.True(turn.Challenge.Equal(first.Challenge))
	s.True(s.sink.has(model.EventChallengeRebounded))

	// After bob answers, carol's challenge regenerates (letter draw
	// exhausted, so 'a')
	result, err := s.game.SubmitWord(s.ctx, "bob", "bat")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("carol"), result.NextTurn.PlayerID)
	s.Equal('a', result.NextTurn.Challenge.Letter)
}

func (s *GameSuite) TestHintReturnsUnusedCandidates() {
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "bob", model.EntitlementHint, 1))

	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.SubmitWord(s.ctx, "alice", "ant")
	s.Require().NoError(err)

	hint, err := s.game.ApplyHint(s.ctx, "bob")
	s.Require().NoError(err)

	s.LessOrEqual(len(hint.Words), DefaultRules().HintWords)
	s.NotEmpty(hint.Words)
	for _, w := range hint.Words {
		s.NotEqual("ant", w)
		s.Len(w, hint.Challenge.Length)
	}

	// Hint does not advance the turn
	snap := s.game.Snapshot()
	s.Equal(model.PlayerID("bob"), snap.Current.PlayerID)
	s.True(s.sink.has(model.EventHintIssued))
}

func (s *GameSuite) TestHintWithoutEntitlement() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = s.game.ApplyHint(s.ctx, "alice")
	s.ErrorIs(err, model.ErrEntitlementExhausted)
}

// Stop tests

func (s *GameSuite) TestStopRunningGame() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.game.Stop(s.ctx))

	snap := s.game.Snapshot()
	s.Equal(model.PhaseOver, snap.Phase)
	s.Empty(snap.Players)
	s.True(s.sink.has(model.EventGameStopped))
}

func (s *GameSuite) TestStopOpenLobbyEmitsStopped() {
	s.openAndJoin(s.bob)

	s.Require().NoError(s.game.Stop(s.ctx))

	snap := s.game.Snapshot()
	s.Equal(model.PhaseOver, snap.Phase)
	s.Empty(snap.Players)
	s.True(s.sink.has(model.EventGameStopped))
}

func (s *GameSuite) TestStopIdleGameIsQuiet() {
	s.Require().NoError(s.game.Stop(s.ctx))
	s.False(s.sink.has(model.EventGameStopped))
}

func (s *GameSuite) TestStoppedRoomCanReopen() {
	s.openAndJoin(s.bob)
	_, err := s.game.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.game.Stop(s.ctx))

	s.Require().NoError(s.game.OpenLobby(s.ctx, s.bob, model.GameConfig{Mode: model.ModeRandomized}))

	snap := s.game.Snapshot()
	s.Equal(model.PhaseLobby, snap.Phase)
	s.Equal(model.ModeRandomized, snap.Mode)
	s.Equal(model.PlayerID("bob"), snap.Owner)
	s.Equal(0, snap.UsedWords)
}
