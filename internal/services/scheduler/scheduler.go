package scheduler

import (
	"sync"
	"time"
)

// Config holds the turn-time formula parameters. The produced limit is
// strictly non-increasing as rounds complete.
type Config struct {
	Base      time.Duration
	Floor     time.Duration
	Decrement time.Duration
}

// DefaultConfig returns the default turn timing
func DefaultConfig() Config {
	return Config{
		Base:      30 * time.Second,
		Floor:     8 * time.Second,
		Decrement: 2 * time.Second,
	}
}

// TurnTime returns max(Floor, Base - roundsCompleted*Decrement)
func (c Config) TurnTime(roundsCompleted int) time.Duration {
	d := c.Base - time.Duration(roundsCompleted)*c.Decrement
	if d < c.Floor {
		return c.Floor
	}
	return d
}

// TurnTimer is the single cancellable timeout a game owns. At most one timer
// is armed at any instant: Arm cancels the previous one before scheduling.
// Cancel is idempotent and safe against a timer that already fired.
//
// The timer itself knows nothing about turns. Callers capture the expected
// player and turn sequence in the callback and must re-validate them under
// the game's own lock when it fires, because a fire racing a cancellation can
// still run after Cancel returns.
type TurnTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTurnTimer creates an idle TurnTimer
func NewTurnTimer() *TurnTimer {
	return &TurnTimer{}
}

// Arm schedules fn to run after d, superseding any previously armed timeout
func (t *TurnTimer) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, fn)
}

// Cancel stops the armed timeout if any. Calling it redundantly, or after
// the timer fired, is a no-op.
func (t *TurnTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
