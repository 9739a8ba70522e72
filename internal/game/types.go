// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - Mark: per-letter result of a submitted attempt (exact/present/absent).
//   - Phase: lifecycle state of a round.
//   - Snapshot: read-only view of an engine handed to presentation layers.

package game

// Mark represents the evaluation result for a single letter in an attempt.
// Possible values:
//   - "exact":   letter is in the secret word at this position.
//   - "present": letter occurs elsewhere and an unconsumed occurrence remains.
//   - "absent":  no unconsumed occurrence of the letter remains.
type Mark string

const (
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Phase is the lifecycle state of an engine. Exactly one holds at any time.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhasePlaying    Phase = "playing"
	PhasePaused     Phase = "paused"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
)

// String returns the wire name of the phase.
func (p Phase) String() string { return string(p) }

// Over reports whether the round has finished (won or lost).
func (p Phase) Over() bool { return p == PhaseWon || p == PhaseLost }

// Attempt is one submitted guess paired with its feedback.
type Attempt struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

// Snapshot is a copy of the engine state, safe to keep after further calls.
type Snapshot struct {
	Phase        Phase     `json:"phase"`
	WordLength   int       `json:"wordLength"`
	MaxAttempts  int       `json:"maxAttempts"`
	CurrentGuess string    `json:"currentGuess"`
	Attempts     []Attempt `json:"attempts"`
	Remaining    int       `json:"remaining"`         // attempts left in this round
	Answer       string    `json:"answer,omitempty"`  // revealed once the round is over
	Forfeit      bool      `json:"forfeit,omitempty"` // true when the round was ended by End
}
