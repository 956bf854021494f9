package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/storage"
)

// Storage is the in-memory implementation of the stats/economy interface.
// It is the default backend: the engine treats persistence as best-effort,
// so a process-lifetime store is a valid deployment.
type Storage struct {
	mu sync.RWMutex

	stats     map[model.PlayerID]*model.PlayerStats
	inventory map[model.PlayerID]map[model.EntitlementKind]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		stats:     make(map[model.PlayerID]*model.PlayerStats),
		inventory: make(map[model.PlayerID]map[model.EntitlementKind]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// statsLocked returns the player's record, creating it if absent
func (s *Storage) statsLocked(id model.PlayerID) *model.PlayerStats {
	st, ok := s.stats[id]
	if !ok {
		st = &model.PlayerStats{PlayerID: id}
		s.stats[id] = st
	}
	return st
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, id model.PlayerID) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stats[id]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	copied := *st
	return &copied, nil
}

func (s *Storage) RecordWordPlayed(ctx context.Context, id model.PlayerID, displayName, word string, streak int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statsLocked(id)
	st.DisplayName = displayName
	st.WordsPlayed++
	if streak > st.BestStreak {
		st.BestStreak = streak
	}
	st.UpdatedAt = time.Now()
	return nil
}

func (s *Storage) RecordForfeit(ctx context.Context, id model.PlayerID, penalty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statsLocked(id)
	st.Points -= penalty
	if st.Points < 0 {
		st.Points = 0
	}
	st.UpdatedAt = time.Now()
	return nil
}

func (s *Storage) RecordWin(ctx context.Context, id model.PlayerID, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statsLocked(id)
	st.DisplayName = displayName
	st.Wins++
	st.UpdatedAt = time.Now()
	return nil
}

func (s *Storage) IncrementGamesPlayed(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statsLocked(id)
	st.GamesPlayed++
	st.UpdatedAt = time.Now()
	return nil
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.stats))
	for _, st := range s.stats {
		entries = append(entries, model.LeaderboardEntry{
			PlayerID:    st.PlayerID,
			DisplayName: st.DisplayName,
			Wins:        st.Wins,
			Points:      st.Points,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Economy operations

func (s *Storage) GetEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory[id][kind], nil
}

func (s *Storage) ConsumeEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inventory[id][kind] <= 0 {
		return model.ErrEntitlementExhausted
	}
	s.inventory[id][kind]--
	return nil
}

func (s *Storage) GrantEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventory[id]
	if !ok {
		inv = make(map[model.EntitlementKind]int)
		s.inventory[id] = inv
	}
	inv[kind] += n
	return nil
}

func (s *Storage) CreditPoints(ctx context.Context, id model.PlayerID, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statsLocked(id)
	st.Points += n
	st.UpdatedAt = time.Now()
	return nil
}
