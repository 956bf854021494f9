package model

import "time"

// Challenge length bounds. Progressive mode caps at MaxProgressiveLength;
// the lexicon indexes nothing outside [MinWordLength, MaxWordLength].
const (
	MinWordLength         = 3
	MaxWordLength         = 20
	MaxProgressiveLength  = 15
	MaxRandomizedLength   = 12
)

// Challenge is the (length, first letter) constraint the current player
// must satisfy. Exactly one challenge is live while a game is running.
type Challenge struct {
	Length   int
	Letter   rune // lowercase a-z
	IssuedAt time.Time
}

// Equal reports whether two challenges pose the same constraint,
// ignoring issue time.
func (c Challenge) Equal(other Challenge) bool {
	return c.Length == other.Length && c.Letter == other.Letter
}
