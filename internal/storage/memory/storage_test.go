package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetStatsUnknownPlayer() {
	_, err := s.storage.GetStats(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestRecordWordPlayed() {
	s.Require().NoError(s.storage.RecordWordPlayed(s.ctx, "alice", "Alice", "ant", 1))
	s.Require().NoError(s.storage.RecordWordPlayed(s.ctx, "alice", "Alice", "ape", 2))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, stats.WordsPlayed)
	s.Equal(2, stats.BestStreak)
	s.Equal("Alice", stats.DisplayName)
}

func (s *StorageSuite) TestBestStreakNeverDecreases() {
	s.Require().NoError(s.storage.RecordWordPlayed(s.ctx, "alice", "Alice", "ant", 5))
	s.Require().NoError(s.storage.RecordWordPlayed(s.ctx, "alice", "Alice", "ape", 1))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(5, stats.BestStreak)
}

func (s *StorageSuite) TestRecordWinAndGamesPlayed() {
	s.Require().NoError(s.storage.RecordWin(s.ctx, "alice", "Alice"))
	s.Require().NoError(s.storage.IncrementGamesPlayed(s.ctx, "alice"))
	s.Require().NoError(s.storage.IncrementGamesPlayed(s.ctx, "alice"))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, stats.Wins)
	s.Equal(2, stats.GamesPlayed)
}

func (s *StorageSuite) TestForfeitPenaltyClampsAtZero() {
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "alice", 3))
	s.Require().NoError(s.storage.RecordForfeit(s.ctx, "alice", 5))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(0, stats.Points)
}

func (s *StorageSuite) TestCreditPoints() {
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "alice", 10))
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "alice", 1))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(11, stats.Points)
}

func (s *StorageSuite) TestTopPlayersOrdering() {
	s.Require().NoError(s.storage.RecordWin(s.ctx, "bob", "Bob"))
	s.Require().NoError(s.storage.RecordWin(s.ctx, "bob", "Bob"))
	s.Require().NoError(s.storage.RecordWin(s.ctx, "alice", "Alice"))
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "alice", 50))
	s.Require().NoError(s.storage.RecordWin(s.ctx, "carol", "Carol"))
	s.Require().NoError(s.storage.CreditPoints(s.ctx, "carol", 10))

	entries, err := s.storage.TopPlayers(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	// Wins first, points break ties
	s.Equal(model.PlayerID("bob"), entries[0].PlayerID)
	s.Equal(model.PlayerID("alice"), entries[1].PlayerID)
	s.Equal(model.PlayerID("carol"), entries[2].PlayerID)
}

func (s *StorageSuite) TestTopPlayersLimit() {
	s.Require().NoError(s.storage.RecordWin(s.ctx, "alice", "Alice"))
	s.Require().NoError(s.storage.RecordWin(s.ctx, "bob", "Bob"))

	entries, err := s.storage.TopPlayers(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *StorageSuite) TestEntitlementLifecycle() {
	count, err := s.storage.GetEntitlement(s.ctx, "alice", model.EntitlementSkip)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "alice", model.EntitlementSkip, 2))

	s.Require().NoError(s.storage.ConsumeEntitlement(s.ctx, "alice", model.EntitlementSkip))
	s.Require().NoError(s.storage.ConsumeEntitlement(s.ctx, "alice", model.EntitlementSkip))

	err = s.storage.ConsumeEntitlement(s.ctx, "alice", model.EntitlementSkip)
	s.ErrorIs(err, model.ErrEntitlementExhausted)
}

func (s *StorageSuite) TestEntitlementKindsAreIndependent() {
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "alice", model.EntitlementSkip, 1))

	err := s.storage.ConsumeEntitlement(s.ctx, "alice", model.EntitlementHint)
	s.ErrorIs(err, model.ErrEntitlementExhausted)
}

func (s *StorageSuite) TestConcurrentConsumeNeverOverdraws() {
	const grants = 10
	const attempts = 50
	s.Require().NoError(s.storage.GrantEntitlement(s.ctx, "alice", model.EntitlementSkip, grants))

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.storage.ConsumeEntitlement(s.ctx, "alice", model.EntitlementSkip)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	s.Equal(grants, succeeded)

	count, err := s.storage.GetEntitlement(s.ctx, "alice", model.EntitlementSkip)
	s.Require().NoError(err)
	s.Equal(0, count)
}
