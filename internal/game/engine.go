// internal/game/engine.go
//
// Core game engine for a single player.
// Responsibilities:
//   - Draw a secret word from a WordSource at the start of every round.
//   - Edit the in-progress guess (append/remove letters) and submit it.
//   - Track lifecycle: not_started → playing ⇄ paused → won/lost.
//
// Notes:
//   - Guard-rejected operations are silent no-ops; every operation reports
//     whether it took effect instead of returning an error.
//   - An Engine is not safe for concurrent use; callers serialize access.
//   - Any same-length run of letters is a valid submission (no dictionary).
package game

import "strings"

const (
	MaxAttempts       = 6
	DefaultWordLength = 5
	MinWordLength     = 5
	MaxWordLength     = 8
)

// WordSource supplies the secret word for a new round.
// Implementations must return a word of exactly the requested length.
type WordSource interface {
	Pick(length int) string
}

// Engine owns all mutable state of one game.
type Engine struct {
	source     WordSource
	secret     string
	wordLength int
	guess      []byte
	attempts   []string
	phase      Phase
	forfeit    bool
}

// New constructs an engine in PhaseNotStarted.
// A wordLength outside [MinWordLength, MaxWordLength] falls back to DefaultWordLength.
func New(source WordSource, wordLength int) *Engine {
	if !ValidWordLength(wordLength) {
		wordLength = DefaultWordLength
	}
	e := &Engine{source: source, wordLength: wordLength}
	e.reset()
	return e
}

// ValidWordLength reports whether n is a supported word length.
func ValidWordLength(n int) bool {
	return n >= MinWordLength && n <= MaxWordLength
}

// reset clears all round state without drawing a word.
func (e *Engine) reset() {
	e.secret = ""
	e.guess = make([]byte, 0, e.wordLength)
	e.attempts = make([]string, 0, MaxAttempts)
	e.phase = PhaseNotStarted
	e.forfeit = false
}

// newRound replaces the round state wholesale and enters PhasePlaying.
func (e *Engine) newRound() {
	e.reset()
	e.secret = strings.ToLower(e.source.Pick(e.wordLength))
	e.phase = PhasePlaying
}

// Begin starts a round from not_started/won/lost. From paused it resumes
// the current round without drawing a new word; from playing it does nothing.
func (e *Engine) Begin() bool {
	switch e.phase {
	case PhaseNotStarted, PhaseWon, PhaseLost:
		e.newRound()
		return true
	case PhasePaused:
		e.phase = PhasePlaying
		return true
	}
	return false
}

// Restart always starts a new round, whatever the current phase.
func (e *Engine) Restart() bool {
	e.newRound()
	return true
}

// Pause toggles between playing and paused.
func (e *Engine) Pause() bool {
	switch e.phase {
	case PhasePlaying:
		e.phase = PhasePaused
		return true
	case PhasePaused:
		e.phase = PhasePlaying
		return true
	}
	return false
}

// Resume leaves paused; it is a no-op in every other phase.
func (e *Engine) Resume() bool {
	if e.phase != PhasePaused {
		return false
	}
	e.phase = PhasePlaying
	return true
}

// End forfeits the current round. The phase becomes PhaseLost.
func (e *Engine) End() bool {
	if e.phase != PhasePlaying && e.phase != PhasePaused {
		return false
	}
	e.phase = PhaseLost
	e.forfeit = true
	return true
}

// AppendLetter adds one ASCII letter, lowercased, to the guess buffer.
func (e *Engine) AppendLetter(c rune) bool {
	if e.phase != PhasePlaying || len(e.guess) >= e.wordLength {
		return false
	}
	switch {
	case c >= 'a' && c <= 'z':
	case c >= 'A' && c <= 'Z':
		c += 'a' - 'A'
	default:
		return false
	}
	e.guess = append(e.guess, byte(c))
	return true
}

// RemoveLetter drops the last letter of the guess buffer.
func (e *Engine) RemoveLetter() bool {
	if e.phase != PhasePlaying || len(e.guess) == 0 {
		return false
	}
	e.guess = e.guess[:len(e.guess)-1]
	return true
}

// Submit moves a complete guess into the attempts and evaluates the round.
//
// State transitions:
//   - Attempt equals the secret → PhaseWon.
//   - Else if MaxAttempts attempts have been made → PhaseLost.
func (e *Engine) Submit() bool {
	if e.phase != PhasePlaying || len(e.guess) != e.wordLength {
		return false
	}
	attempt := string(e.guess)
	e.attempts = append(e.attempts, attempt)
	e.guess = e.guess[:0]

	if attempt == e.secret {
		e.phase = PhaseWon
	} else if len(e.attempts) >= MaxAttempts {
		e.phase = PhaseLost
	}
	return true
}

// Press routes a named key the way a keyboard handler would:
// enter/numpadenter/return submits, backspace removes, a single letter appends.
// Keys are ignored while paused or after the round is over. The first
// recognized key in not_started begins the round before it is applied.
func (e *Engine) Press(key string) bool {
	k := strings.ToLower(key)
	isEnter := k == "enter" || k == "numpadenter" || k == "return"
	isBackspace := k == "backspace"
	isLetter := len(k) == 1 && k[0] >= 'a' && k[0] <= 'z'
	if !isEnter && !isBackspace && !isLetter {
		return false
	}

	began := false
	switch e.phase {
	case PhasePaused, PhaseWon, PhaseLost:
		return false
	case PhaseNotStarted:
		began = e.Begin()
	}

	var applied bool
	switch {
	case isLetter:
		applied = e.AppendLetter(rune(k[0]))
	case isEnter:
		applied = e.Submit()
	case isBackspace:
		applied = e.RemoveLetter()
	}
	return applied || began
}

// SetWordLength changes the word length and starts a new round.
// Unsupported lengths are rejected and leave the engine untouched.
func (e *Engine) SetWordLength(n int) bool {
	if !ValidWordLength(n) {
		return false
	}
	e.wordLength = n
	e.newRound()
	return true
}

// Phase reports the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// WordLength reports the configured guess length.
func (e *Engine) WordLength() int { return e.wordLength }

// CurrentGuess returns the in-progress guess.
func (e *Engine) CurrentGuess() string { return string(e.guess) }

// Attempts returns a copy of the submitted guesses, oldest first.
func (e *Engine) Attempts() []string {
	return append([]string(nil), e.attempts...)
}

// Answer returns the secret word once the round is over.
func (e *Engine) Answer() (string, bool) {
	if !e.phase.Over() {
		return "", false
	}
	return e.secret, true
}

// Snapshot returns the full current state with feedback for every attempt.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:        e.phase,
		WordLength:   e.wordLength,
		MaxAttempts:  MaxAttempts,
		CurrentGuess: string(e.guess),
		Attempts:     make([]Attempt, 0, len(e.attempts)),
		Remaining:    MaxAttempts - len(e.attempts),
		Forfeit:      e.forfeit,
	}
	for _, a := range e.attempts {
		s.Attempts = append(s.Attempts, Attempt{Word: a, Marks: Score(a, e.secret)})
	}
	if answer, ok := e.Answer(); ok {
		s.Answer = answer
	}
	return s
}
