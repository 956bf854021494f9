package challenge

import (
	"log/slog"

	"github.com/C21MS0N/kurimu-words/internal/dependencies/clock"
	"github.com/C21MS0N/kurimu-words/internal/dependencies/random"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
)

// maxAttempts bounds the solvability retry loop. Uniform sampling can land on
// shapes with zero dictionary coverage (length 15 starting with 'q'); an
// unwinnable turn is a correctness bug, so every generated challenge is
// checked against the lexicon before being issued.
const maxAttempts = 200

// Fallback shape returned when every attempt lacked an unused candidate
const (
	fallbackLength = 3
	fallbackLetter = 'a'
)

// Generator produces solvable (length, letter) challenges
type Generator struct {
	lexicon *lexicon.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewGenerator creates a challenge Generator
func NewGenerator(lex *lexicon.Service, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Generator {
	return &Generator{
		lexicon: lex,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Generate picks a challenge for the coming turn. Progressive mode grows the
// length with completed rounds; randomized mode draws it uniformly. Both draw
// the letter uniformly from a-z. The result is guaranteed to have at least
// one lexicon candidate outside used, unless the bounded retry exhausts, in
// which case the safe fallback shape is returned.
func (g *Generator) Generate(mode model.Mode, roundsCompleted int, used map[string]struct{}) model.Challenge {
	now := g.clock.Now()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		length := g.pickLength(mode, roundsCompleted)
		letter := rune('a' + g.random.Intn(26))
		if g.lexicon.HasCandidate(length, letter, used) {
			return model.Challenge{Length: length, Letter: letter, IssuedAt: now}
		}
	}

	g.logger.Warn("challenge generation exhausted retries, using fallback",
		slog.String("mode", string(mode)),
		slog.Int("rounds_completed", roundsCompleted),
	)
	return model.Challenge{Length: fallbackLength, Letter: fallbackLetter, IssuedAt: now}
}

func (g *Generator) pickLength(mode model.Mode, roundsCompleted int) int {
	if mode == model.ModeRandomized {
		span := model.MaxRandomizedLength - model.MinWordLength + 1
		return model.MinWordLength + g.random.Intn(span)
	}
	length := model.MinWordLength + roundsCompleted
	if length > model.MaxProgressiveLength {
		length = model.MaxProgressiveLength
	}
	return length
}
