// Package daily selects one deterministic word per UTC date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordgame/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source picks the same word for every caller on a given date.
// It satisfies game.WordSource.
type Source struct {
	pool words.Pool
	salt string
	now  func() time.Time
}

// NewSource returns a daily Source over pool. A nil now uses time.Now.
func NewSource(pool words.Pool, salt string, now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{pool: pool, salt: salt, now: now}
}

// Pick returns today's word of the given length, or words.Default(length)
// when the pool has none.
func (s *Source) Pick(length int) string {
	ws := s.pool.Words(length)
	if len(ws) == 0 {
		return words.Default(length)
	}
	return ws[WordIndex(s.now(), s.salt, len(ws))]
}

// Date returns the date key the next Pick will use.
func (s *Source) Date() string { return DateKey(s.now()) }
