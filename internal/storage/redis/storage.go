package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/storage"
)

// Storage is a Redis-backed implementation of the stats/economy interface.
// Stats live in per-player hashes, the leaderboard in a wins-ordered sorted
// set, and entitlements in per-player hashes mutated with HINCRBY so
// consumption is an atomic read-modify-write.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) GetStats(ctx context.Context, id model.PlayerID) (*model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrStatsNotFound
	}
	return statsFromFields(id, fields), nil
}

func statsFromFields(id model.PlayerID, fields map[string]string) *model.PlayerStats {
	st := &model.PlayerStats{
		PlayerID:    id,
		DisplayName: fields[fieldDisplayName],
		Wins:        atoi(fields[fieldWins]),
		GamesPlayed: atoi(fields[fieldGamesPlayed]),
		WordsPlayed: atoi(fields[fieldWordsPlayed]),
		BestStreak:  atoi(fields[fieldBestStreak]),
		Points:      atoi(fields[fieldPoints]),
	}
	if raw := fields[fieldUpdatedAt]; raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			st.UpdatedAt = time.Unix(unix, 0).UTC()
		}
	}
	return st
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (s *Storage) RecordWordPlayed(ctx context.Context, id model.PlayerID, displayName, word string, streak int) error {
	key := statsKey(id)

	// Track best streak with a read-check, then apply the rest in one
	// pipeline. A lost race on best_streak only under-reports by one turn
	// and corrects itself next write.
	best, err := s.client.HGet(ctx, key, fieldBestStreak).Int()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, fieldDisplayName, displayName, fieldUpdatedAt, time.Now().Unix())
	pipe.HIncrBy(ctx, key, fieldWordsPlayed, 1)
	if streak > best {
		pipe.HSet(ctx, key, fieldBestStreak, streak)
	}
	s.applyTTL(ctx, pipe, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) RecordForfeit(ctx context.Context, id model.PlayerID, penalty int) error {
	key := statsKey(id)
	points, err := s.client.HIncrBy(ctx, key, fieldPoints, int64(-penalty)).Result()
	if err != nil {
		return err
	}
	if points < 0 {
		// Clamp at zero rather than going negative
		if err := s.client.HSet(ctx, key, fieldPoints, 0).Err(); err != nil {
			return err
		}
	}
	return s.client.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix()).Err()
}

func (s *Storage) RecordWin(ctx context.Context, id model.PlayerID, displayName string) error {
	key := statsKey(id)
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, fieldDisplayName, displayName, fieldUpdatedAt, time.Now().Unix())
	pipe.HIncrBy(ctx, key, fieldWins, 1)
	pipe.ZIncrBy(ctx, leaderboardKey(), 1, string(id))
	s.applyTTL(ctx, pipe, key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) IncrementGamesPlayed(ctx context.Context, id model.PlayerID) error {
	key := statsKey(id)
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, fieldGamesPlayed, 1)
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	s.applyTTL(ctx, pipe, key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		id := model.PlayerID(m.Member.(string))
		entry := model.LeaderboardEntry{
			PlayerID: id,
			Wins:     int(m.Score),
		}
		fields, err := s.client.HGetAll(ctx, statsKey(id)).Result()
		if err == nil && len(fields) > 0 {
			entry.DisplayName = fields[fieldDisplayName]
			entry.Points = atoi(fields[fieldPoints])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Economy operations

func (s *Storage) GetEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) (int, error) {
	n, err := s.client.HGet(ctx, inventoryKey(id), string(kind)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Storage) ConsumeEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) error {
	key := inventoryKey(id)
	left, err := s.client.HIncrBy(ctx, key, string(kind), -1).Result()
	if err != nil {
		return err
	}
	if left < 0 {
		// Went below zero: undo and reject
		if err := s.client.HIncrBy(ctx, key, string(kind), 1).Err(); err != nil {
			return err
		}
		return model.ErrEntitlementExhausted
	}
	return nil
}

func (s *Storage) GrantEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind, n int) error {
	return s.client.HIncrBy(ctx, inventoryKey(id), string(kind), int64(n)).Err()
}

func (s *Storage) CreditPoints(ctx context.Context, id model.PlayerID, n int) error {
	key := statsKey(id)
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, fieldPoints, int64(n))
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	s.applyTTL(ctx, pipe, key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) applyTTL(ctx context.Context, pipe redis.Pipeliner, key string) {
	if s.cfg.StatsTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.StatsTTL)
	}
}
