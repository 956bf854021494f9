package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// SubmitWord races the current player's answer against the armed timer.
// Whichever transition takes the game mutex first wins; the loser is
// detected as stale and discarded. Rejections carry the specific reason and
// leave the turn, the timer, and all counters untouched so the player can
// retry without penalty.
func (g *Game) SubmitWord(ctx context.Context, playerID model.PlayerID, word string) (*model.SubmitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseRunning {
		return nil, model.ErrNoGameRunning
	}
	current := g.currentPlayerLocked()
	if current.ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != g.challenge.Length {
		return nil, model.ErrWrongLength
	}
	if rune(word[0]) != g.challenge.Letter {
		return nil, model.ErrWrongLetter
	}
	if _, taken := g.used[word]; taken {
		return nil, model.ErrWordUsed
	}
	if !g.deps.Lexicon.Contains(word) {
		return nil, model.ErrNotInLexicon
	}

	// Accepted: supersede the timer before any externally visible effect
	g.timer.Cancel()
	g.used[word] = struct{}{}
	g.streaks[playerID]++
	streak := g.streaks[playerID]

	g.recordWordPlayed(ctx, current, word, streak)

	g.emitLocked(model.EventWordAccepted, playerID, model.WordAcceptedPayload{
		Word:   word,
		Streak: streak,
	})

	turn, err := g.nextTurnLocked()
	if err != nil {
		return nil, err
	}
	g.emitLocked(model.EventTurnStarted, turn.PlayerID, model.TurnStartedPayload{Turn: *turn})

	return &model.SubmitResult{
		Word:     word,
		PlayerID: playerID,
		Streak:   streak,
		NextTurn: turn,
	}, nil
}

// Forfeit eliminates the current player at their own request. The same
// current-player guard that protects against stale timers makes this a no-op
// for anyone whose turn it is not.
func (g *Game) Forfeit(ctx context.Context, playerID model.PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseRunning {
		return model.ErrNoGameRunning
	}
	if g.currentPlayerLocked().ID != playerID {
		return model.ErrNotPlayerTurn
	}

	g.timer.Cancel()
	if g.deps.Rules.ForfeitPenalty > 0 {
		if err := g.deps.Storage.RecordForfeit(ctx, playerID, g.deps.Rules.ForfeitPenalty); err != nil {
			g.deps.Logger.Warn("forfeit record failed",
				slog.String("room", string(g.key)),
				slog.String("player", string(playerID)),
				slog.String("error", err.Error()),
			)
		}
	}
	return g.eliminateLocked(ctx, playerID, model.EliminatedByForfeit)
}

// onTimerFired is the timeout callback scheduled at arm time. It runs on the
// timer goroutine, so it re-acquires the game mutex and verifies that the
// turn it was armed for is still live: a submission that crossed the wire
// first has already cancelled or superseded this turn, and the callback must
// no-op rather than double-eliminate.
func (g *Game) onTimerFired(playerID model.PlayerID, seq int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != model.PhaseRunning ||
		g.currentPlayerLocked().ID != playerID ||
		g.turnSeq != seq {
		g.deps.Logger.Debug("stale timer fire discarded",
			slog.String("room", string(g.key)),
			slog.String("player", string(playerID)),
			slog.Int("seq", seq),
			slog.Int("current_seq", g.turnSeq),
		)
		return
	}

	g.touchLocked()
	g.deps.Logger.Info("turn timed out",
		slog.String("room", string(g.key)),
		slog.String("player", string(playerID)),
		slog.Int("round", g.rounds),
	)
	// Timeouts carry no points penalty
	_ = g.eliminateLocked(context.Background(), playerID, model.EliminatedByTimeout)
}

// eliminateLocked removes the current player from play, resets their streak,
// and either finishes the game or hands the turn to the next alive player.
func (g *Game) eliminateLocked(ctx context.Context, playerID model.PlayerID, reason model.EliminationReason) error {
	g.eliminated[playerID] = struct{}{}
	g.streaks[playerID] = 0

	g.emitLocked(model.EventPlayerEliminated, playerID, model.PlayerEliminatedPayload{
		Reason:    reason,
		Remaining: len(g.players) - len(g.eliminated),
	})

	if len(g.eliminated) >= len(g.players)-1 {
		g.finishLocked(ctx)
		return nil
	}

	turn, err := g.nextTurnLocked()
	if err != nil {
		return err
	}
	g.emitLocked(model.EventTurnStarted, turn.PlayerID, model.TurnStartedPayload{Turn: *turn})
	return nil
}

// finishLocked transitions to Over exactly once, announces the winner, and
// fires the games-played increment for every roster member.
func (g *Game) finishLocked(ctx context.Context) {
	g.timer.Cancel()
	g.phase = model.PhaseOver

	var winner *model.Player
	for i := range g.players {
		if !g.isEliminatedLocked(g.players[i].ID) {
			w := g.players[i]
			winner = &w
			break
		}
	}

	for _, p := range g.players {
		if err := g.deps.Storage.IncrementGamesPlayed(ctx, p.ID); err != nil {
			g.deps.Logger.Warn("games-played increment failed",
				slog.String("room", string(g.key)),
				slog.String("player", string(p.ID)),
				slog.String("error", err.Error()),
			)
		}
	}
	if winner != nil {
		if err := g.deps.Storage.RecordWin(ctx, winner.ID, winner.DisplayName); err != nil {
			g.deps.Logger.Warn("win record failed",
				slog.String("room", string(g.key)),
				slog.String("player", string(winner.ID)),
				slog.String("error", err.Error()),
			)
		}
		if g.deps.Rules.WinReward > 0 {
			if err := g.deps.Storage.CreditPoints(ctx, winner.ID, g.deps.Rules.WinReward); err != nil {
				g.deps.Logger.Warn("win reward credit failed",
					slog.String("room", string(g.key)),
					slog.String("player", string(winner.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	info := model.GameOverInfo{
		Winner:    winner,
		Rounds:    g.rounds,
		WordsUsed: len(g.used),
	}
	for id := range g.eliminated {
		info.Eliminated = append(info.Eliminated, id)
	}

	var winnerID model.PlayerID
	if winner != nil {
		winnerID = winner.ID
	}
	g.deps.Logger.Info("game over",
		slog.String("room", string(g.key)),
		slog.String("winner", string(winnerID)),
		slog.Int("rounds", g.rounds),
		slog.Int("words_used", len(g.used)),
	)
	g.emitLocked(model.EventGameOver, winnerID, model.GameOverPayload{Info: info})
}

// nextTurnLocked advances to the next alive player and starts their turn. A
// pending rebound suppresses challenge regeneration for exactly this one
// advancement.
func (g *Game) nextTurnLocked() (*model.TurnInfo, error) {
	if err := g.advanceLocked(); err != nil {
		g.forceCorruptLocked(err.Error())
		return nil, err
	}
	keep := g.pendingRebound
	g.pendingRebound = false
	return g.startTurnLocked(keep), nil
}

// advanceLocked steps the turn index past eliminated players, counting a
// completed round every time the index wraps to zero. The scan is bounded by
// roster size so it terminates even if the elimination set is inconsistent.
func (g *Game) advanceLocked() error {
	n := len(g.players)
	for i := 0; i < n; i++ {
		g.currentIdx = (g.currentIdx + 1) % n
		if g.currentIdx == 0 {
			g.rounds++
		}
		if !g.isEliminatedLocked(g.players[g.currentIdx].ID) {
			return nil
		}
	}
	return model.ErrGameCorrupt
}

// startTurnLocked issues the turn's challenge (unless preserved by a
// rebound), bumps the turn sequence, and arms the timer. The captured
// (player, seq) pair is what the fired callback validates against.
func (g *Game) startTurnLocked(keepChallenge bool) *model.TurnInfo {
	if !keepChallenge {
		g.challenge = g.deps.Generator.Generate(g.mode, g.rounds, g.used)
	}
	g.turnSeq++

	turn := g.turnInfoLocked()
	playerID := turn.PlayerID
	seq := g.turnSeq
	g.timer.Arm(turn.TimeLimit, func() {
		g.onTimerFired(playerID, seq)
	})
	return &turn
}

// forceCorruptLocked is the invariant-violation escape hatch: the game is
// reset to Over and the failure surfaced, without touching other rooms.
func (g *Game) forceCorruptLocked(reason string) {
	g.timer.Cancel()
	g.phase = model.PhaseOver
	g.deps.Logger.Error("game force-reset",
		slog.String("room", string(g.key)),
		slog.String("reason", reason),
	)
	g.emitLocked(model.EventGameCorrupted, "", model.GameCorruptedPayload{Reason: reason})
}

// recordWordPlayed persists the accepted word and its reward, best-effort
func (g *Game) recordWordPlayed(ctx context.Context, player model.Player, word string, streak int) {
	if err := g.deps.Storage.RecordWordPlayed(ctx, player.ID, player.DisplayName, word, streak); err != nil {
		g.deps.Logger.Warn("word record failed",
			slog.String("room", string(g.key)),
			slog.String("player", string(player.ID)),
			slog.String("error", err.Error()),
		)
	}
	if g.deps.Rules.WordReward > 0 {
		if err := g.deps.Storage.CreditPoints(ctx, player.ID, g.deps.Rules.WordReward); err != nil {
			g.deps.Logger.Warn("word reward credit failed",
				slog.String("room", string(g.key)),
				slog.String("player", string(player.ID)),
				slog.String("error", err.Error()),
			)
		}
	}
}
