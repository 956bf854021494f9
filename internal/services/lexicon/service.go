package lexicon

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// indexKey addresses the candidate bucket for one challenge shape
type indexKey struct {
	length int
	letter rune
}

// Service is the read-only word index. It maps (length, first letter) to the
// words satisfying that challenge for O(1) candidate lookup. Construction
// happens once at startup; afterwards the index is safe for concurrent reads
// from every game without locking.
type Service struct {
	words  map[string]struct{}
	byKey  map[indexKey][]string
	source string
}

// Load builds a lexicon from a newline-delimited word list. A missing or
// unreadable file is not an error: the built-in fallback set is used and the
// condition is logged at Warn.
func Load(path string, logger *slog.Logger) *Service {
	file, err := os.Open(path)
	if err != nil {
		logger.Warn("word list unavailable, using fallback set",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return New(fallbackWords, "fallback")
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("word list read failed, using fallback set",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return New(fallbackWords, "fallback")
	}

	svc := New(words, path)
	logger.Info("lexicon loaded",
		slog.String("path", path),
		slog.Int("words", svc.WordCount()),
	)
	return svc
}

// New builds a lexicon directly from a word slice (useful for testing).
// Words are lowercased; entries that are not purely a-z or fall outside
// [MinWordLength, MaxWordLength] are dropped.
func New(words []string, source string) *Service {
	s := &Service{
		words:  make(map[string]struct{}, len(words)),
		byKey:  make(map[indexKey][]string),
		source: source,
	}
	for _, raw := range words {
		word := strings.ToLower(strings.TrimSpace(raw))
		if !usable(word) {
			continue
		}
		if _, dup := s.words[word]; dup {
			continue
		}
		s.words[word] = struct{}{}
		key := indexKey{length: len(word), letter: rune(word[0])}
		s.byKey[key] = append(s.byKey[key], word)
	}
	return s
}

func usable(word string) bool {
	if len(word) < model.MinWordLength || len(word) > model.MaxWordLength {
		return false
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Contains reports whether the word is in the lexicon. The index holds only
// lowercase words; callers normalize before lookup.
func (s *Service) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Candidates returns up to limit words of the given length starting with the
// given letter that are not in used. limit <= 0 means no limit. The result
// may be empty.
func (s *Service) Candidates(length int, letter rune, used map[string]struct{}, limit int) []string {
	bucket := s.byKey[indexKey{length: length, letter: letter}]
	var out []string
	for _, word := range bucket {
		if _, taken := used[word]; taken {
			continue
		}
		out = append(out, word)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// HasCandidate reports whether at least one unused word matches the shape
func (s *Service) HasCandidate(length int, letter rune, used map[string]struct{}) bool {
	return len(s.Candidates(length, letter, used, 1)) > 0
}

// WordCount returns the number of indexed words
func (s *Service) WordCount() int {
	return len(s.words)
}

// Source reports where the lexicon came from ("fallback" or the file path)
func (s *Service) Source() string {
	return s.source
}
