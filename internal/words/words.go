// internal/words/words.go
//
// Word pool and random word source for the game engine.
//
// Responsibilities:
//   - Hold the preloaded pool of playable words, grouped by length.
//   - Pick a uniformly random word of a requested length (Source.Pick).
//   - Fall back to a fixed default word when the pool has none of that length.
//
// Constraints:
//   • Pool words are lowercase a–z and keyed by their exact length.
//   • A Pool is read-only once built and may be shared freely.
//   • Source serializes access to its random generator.

package words

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// MinLength and MaxLength bound the lengths kept by the list loaders.
	MinLength = 5
	MaxLength = 8
)

// ErrEmptyPool is returned by loaders that produced no usable words.
var ErrEmptyPool = errors.New("words: pool is empty")

// defaults are the documented fallbacks used when the pool has no word of a length.
var defaults = map[int]string{
	5: "hello",
	6: "python",
	7: "program",
	8: "treasure",
}

// Pool maps a word length to the words of exactly that length.
type Pool map[int][]string

// NewPool builds a pool from raw words. Entries are trimmed and lowercased;
// anything that is not purely a–z is dropped, as are duplicates.
// Order of first appearance is preserved within each length.
func NewPool(list []string) Pool {
	p := make(Pool)
	seen := make(map[string]struct{}, len(list))
	for _, raw := range list {
		w := strings.ToLower(strings.TrimSpace(raw))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		p[len(w)] = append(p[len(w)], w)
	}
	return p
}

// Words returns the words of the given length. The slice must not be modified.
func (p Pool) Words(length int) []string { return p[length] }

// Size returns the total number of words in the pool.
func (p Pool) Size() int {
	n := 0
	for _, ws := range p {
		n += len(ws)
	}
	return n
}

// Counts returns the number of words per length.
func (p Pool) Counts() map[int]int {
	out := make(map[int]int, len(p))
	for l, ws := range p {
		out[l] = len(ws)
	}
	return out
}

// Lengths returns the lengths present in the pool, ascending.
func (p Pool) Lengths() []int {
	out := make([]int, 0, len(p))
	for l, ws := range p {
		if len(ws) > 0 {
			out = append(out, l)
		}
	}
	sort.Ints(out)
	return out
}

// within keeps only the lengths in [MinLength, MaxLength].
func (p Pool) within() Pool {
	out := make(Pool, len(p))
	for l, ws := range p {
		if l >= MinLength && l <= MaxLength {
			out[l] = ws
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Default returns the fallback word for a length: a fixed word for 5–8
// letters, otherwise the alphabet repeated to the requested length.
func Default(length int) string {
	if w, ok := defaults[length]; ok {
		return w
	}
	if length <= 0 {
		return ""
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	return strings.Repeat(alphabet, length/len(alphabet)+1)[:length]
}

// Source picks random words from a Pool.
type Source struct {
	pool Pool

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewSource returns a Source over pool. A nil rng is replaced by one seeded
// from the clock; pass a seeded generator for reproducible picks.
func NewSource(pool Pool, rng *rand.Rand) *Source {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Source{pool: pool, rng: rng}
}

// Pick returns a uniformly random word of the given length, or Default(length)
// when the pool has none. It never fails.
func (s *Source) Pick(length int) string {
	ws := s.pool[length]
	if len(ws) == 0 {
		return Default(length)
	}
	s.mu.Lock()
	i := s.rng.Intn(len(ws))
	s.mu.Unlock()
	return ws[i]
}

// Pool exposes the underlying pool.
func (s *Source) Pool() Pool { return s.pool }
