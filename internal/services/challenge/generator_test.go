package challenge

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/C21MS0N/kurimu-words/internal/dependencies/mocks"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/lexicon"
)

type GeneratorSuite struct {
	suite.Suite
	lexicon   *lexicon.Service
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.lexicon = lexicon.New([]string{
		"ant", "ape", "bat", "cat",
		"acre", "bark", "crab",
		"apple", "badge", "cabin",
		"anchor", "basket", "cavern",
	}, "test")
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.generator = NewGenerator(s.lexicon, s.clock, s.random, discardLogger())
}

func (s *GeneratorSuite) TestProgressiveLengthGrowsWithRounds() {
	for rounds, wantLength := range map[int]int{0: 3, 1: 4, 2: 5, 3: 6} {
		// letter draw: 0 -> 'a'
		s.random.Reset()
		s.random.QueueIntn(0)

		c := s.generator.Generate(model.ModeProgressive, rounds, nil)
		s.Equal(wantLength, c.Length, "rounds=%d", rounds)
		s.Equal('a', c.Letter)
	}
}

func (s *GeneratorSuite) TestProgressiveLengthCapped() {
	lex := lexicon.New([]string{"unconstitutional"}, "test") // 16 letters, above the cap
	gen := NewGenerator(lex, s.clock, s.random, discardLogger())

	c := gen.Generate(model.ModeProgressive, 50, nil)
	// No 15-letter candidate exists, so the retry loop exhausts and the
	// fallback shape comes back
	s.Equal(3, c.Length)
	s.Equal('a', c.Letter)
}

func (s *GeneratorSuite) TestProgressiveCapWithCandidate() {
	lex := lexicon.New([]string{"acknowledgments"}, "test") // exactly 15 letters
	gen := NewGenerator(lex, s.clock, s.random, discardLogger())
	s.random.QueueIntn(0)

	c := gen.Generate(model.ModeProgressive, 50, nil)
	s.Equal(model.MaxProgressiveLength, c.Length)
}

func (s *GeneratorSuite) TestRandomizedLengthFromRandom() {
	// length draw 2 -> 5, letter draw 1 -> 'b'
	s.random.QueueIntn(2, 1)

	c := s.generator.Generate(model.ModeRandomized, 9, nil)
	s.Equal(5, c.Length)
	s.Equal('b', c.Letter)
}

func (s *GeneratorSuite) TestRetriesUntilSolvable() {
	// First attempt lands on 'z' with no candidates, second on 'c'
	s.random.QueueIntn(25, 2)

	c := s.generator.Generate(model.ModeProgressive, 0, nil)
	s.Equal(3, c.Length)
	s.Equal('c', c.Letter)
}

func (s *GeneratorSuite) TestUsedWordsMakeShapeUnsolvable() {
	used := map[string]struct{}{"cat": {}}
	// Attempt 'c' (exhausted by used), then 'b'
	s.random.QueueIntn(2, 1)

	c := s.generator.Generate(model.ModeProgressive, 0, used)
	s.Equal('b', c.Letter)
}

func (s *GeneratorSuite) TestFallbackWhenNothingSolvable() {
	used := map[string]struct{}{
		"ant": {}, "ape": {}, "bat": {}, "cat": {},
	}

	c := s.generator.Generate(model.ModeProgressive, 0, used)
	s.Equal(3, c.Length)
	s.Equal('a', c.Letter)
}

func (s *GeneratorSuite) TestIssuedAtFromClock() {
	s.random.QueueIntn(0)

	c := s.generator.Generate(model.ModeProgressive, 0, nil)
	s.Equal(s.clock.CurrentTime, c.IssuedAt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
