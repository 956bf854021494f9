package game

import (
	"context"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// Boost handlers. Each consumes one entitlement through the economy store's
// atomic read-modify-write before mutating anything, so an exhausted
// entitlement is a pure rejection: the turn does not advance and the timer
// stays armed. The engine never caches entitlement counts across turns.

// ApplySkip passes the current turn without elimination or streak reset. The
// next player gets a freshly generated challenge.
func (g *Game) ApplySkip(ctx context.Context, playerID model.PlayerID) (*model.TurnInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseRunning {
		return nil, model.ErrNoGameRunning
	}
	if g.currentPlayerLocked().ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	if err := g.deps.Storage.ConsumeEntitlement(ctx, playerID, model.EntitlementSkip); err != nil {
		return nil, err
	}

	g.timer.Cancel()
	turn, err := g.nextTurnLocked()
	if err != nil {
		return nil, err
	}
	g.emitLocked(model.EventTurnSkipped, playerID, model.TurnSkippedPayload{Next: *turn})
	g.emitLocked(model.EventTurnStarted, turn.PlayerID, model.TurnStartedPayload{Turn: *turn})
	return turn, nil
}

// ApplyRebound passes the turn while preserving the live challenge for
// exactly the next player; the turn after that regenerates normally.
func (g *Game) ApplyRebound(ctx context.Context, playerID model.PlayerID) (*model.TurnInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseRunning {
		return nil, model.ErrNoGameRunning
	}
	if g.currentPlayerLocked().ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	if err := g.deps.Storage.ConsumeEntitlement(ctx, playerID, model.EntitlementRebound); err != nil {
		return nil, err
	}

	g.timer.Cancel()
	g.pendingRebound = true
	turn, err := g.nextTurnLocked()
	if err != nil {
		return nil, err
	}
	g.emitLocked(model.EventChallengeRebounded, playerID, model.ChallengeReboundedPayload{Next: *turn})
	g.emitLocked(model.EventTurnStarted, turn.PlayerID, model.TurnStartedPayload{Turn: *turn})
	return turn, nil
}

// ApplyHint returns up to Rules.HintWords unused candidates for the live
// challenge. It does not advance the turn and does not touch the timer.
func (g *Game) ApplyHint(ctx context.Context, playerID model.PlayerID) (*model.HintResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.phase != model.PhaseRunning {
		return nil, model.ErrNoGameRunning
	}
	if g.currentPlayerLocked().ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	if err := g.deps.Storage.ConsumeEntitlement(ctx, playerID, model.EntitlementHint); err != nil {
		return nil, err
	}

	words := g.deps.Lexicon.Candidates(g.challenge.Length, g.challenge.Letter, g.used, g.deps.Rules.HintWords)
	g.emitLocked(model.EventHintIssued, playerID, model.HintIssuedPayload{Count: len(words)})

	return &model.HintResult{
		Challenge: g.challenge,
		Words:     words,
	}, nil
}
