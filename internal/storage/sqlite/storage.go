package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	player_id    TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	wins         INTEGER NOT NULL DEFAULT 0,
	games_played INTEGER NOT NULL DEFAULT 0,
	words_played INTEGER NOT NULL DEFAULT 0,
	best_streak  INTEGER NOT NULL DEFAULT 0,
	points       INTEGER NOT NULL DEFAULT 0,
	updated_at   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory (
	player_id TEXT NOT NULL,
	kind      TEXT NOT NULL,
	count     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (player_id, kind)
);
`

// Storage persists stats and economy state in SQLite. Single-writer WAL mode
// is plenty for one process owning all game state.
type Storage struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite store at path and applies the schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func nowUnix() int64 {
	return time.Now().Unix()
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, id model.PlayerID) (*model.PlayerStats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT display_name, wins, games_played, words_played, best_streak, points, updated_at
		FROM leaderboard WHERE player_id = ?`, string(id))

	st := &model.PlayerStats{PlayerID: id}
	var updatedAt int64
	err := row.Scan(&st.DisplayName, &st.Wins, &st.GamesPlayed, &st.WordsPlayed,
		&st.BestStreak, &st.Points, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrStatsNotFound
	}
	if err != nil {
		return nil, err
	}
	st.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return st, nil
}

func (s *Storage) RecordWordPlayed(ctx context.Context, id model.PlayerID, displayName, word string, streak int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (player_id, display_name, words_played, best_streak, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			display_name = excluded.display_name,
			words_played = words_played + 1,
			best_streak  = MAX(best_streak, excluded.best_streak),
			updated_at   = excluded.updated_at`,
		string(id), displayName, streak, nowUnix())
	return err
}

func (s *Storage) RecordForfeit(ctx context.Context, id model.PlayerID, penalty int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (player_id, points, updated_at)
		VALUES (?, 0, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			points     = MAX(0, points - ?),
			updated_at = excluded.updated_at`,
		string(id), nowUnix(), penalty)
	return err
}

func (s *Storage) RecordWin(ctx context.Context, id model.PlayerID, displayName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (player_id, display_name, wins, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			display_name = excluded.display_name,
			wins         = wins + 1,
			updated_at   = excluded.updated_at`,
		string(id), displayName, nowUnix())
	return err
}

func (s *Storage) IncrementGamesPlayed(ctx context.Context, id model.PlayerID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (player_id, games_played, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			games_played = games_played + 1,
			updated_at   = excluded.updated_at`,
		string(id), nowUnix())
	return err
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, display_name, wins, points
		FROM leaderboard
		ORDER BY wins DESC, points DESC, player_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var id string
		if err := rows.Scan(&id, &e.DisplayName, &e.Wins, &e.Points); err != nil {
			return nil, err
		}
		e.PlayerID = model.PlayerID(id)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Economy operations

func (s *Storage) GetEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) (int, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT count FROM inventory WHERE player_id = ? AND kind = ?`,
		string(id), string(kind))

	var count int
	err := row.Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Storage) ConsumeEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind) error {
	// The count > 0 predicate makes the decrement an atomic
	// read-modify-write: zero rows affected means nothing was consumed.
	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory SET count = count - 1
		WHERE player_id = ? AND kind = ? AND count > 0`,
		string(id), string(kind))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrEntitlementExhausted
	}
	return nil
}

func (s *Storage) GrantEntitlement(ctx context.Context, id model.PlayerID, kind model.EntitlementKind, n int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (player_id, kind, count)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id, kind) DO UPDATE SET count = count + ?`,
		string(id), string(kind), n, n)
	return err
}

func (s *Storage) CreditPoints(ctx context.Context, id model.PlayerID, n int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (player_id, points, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			points     = points + ?,
			updated_at = excluded.updated_at`,
		string(id), n, nowUnix(), n)
	return err
}
