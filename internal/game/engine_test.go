package game

import (
	"reflect"
	"testing"
)

// fixedSource always returns the same word and counts its calls.
type fixedSource struct {
	word  string
	calls int
}

func (f *fixedSource) Pick(length int) string {
	f.calls++
	return f.word
}

func newPlaying(t *testing.T, secret string) (*Engine, *fixedSource) {
	t.Helper()
	src := &fixedSource{word: secret}
	e := New(src, len(secret))
	if !e.Begin() {
		t.Fatalf("Begin() = false on a fresh engine")
	}
	return e, src
}

func typeWord(e *Engine, w string) {
	for _, c := range w {
		e.AppendLetter(c)
	}
}

func TestNewEngine(t *testing.T) {
	src := &fixedSource{word: "apple"}
	e := New(src, 5)
	if e.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, want %v", e.Phase(), PhaseNotStarted)
	}
	if src.calls != 0 {
		t.Errorf("source called %d times before Begin, want 0", src.calls)
	}
	if _, ok := e.Answer(); ok {
		t.Errorf("Answer() revealed before the round is over")
	}
	if got := New(src, 3).WordLength(); got != DefaultWordLength {
		t.Errorf("New(_, 3).WordLength() = %d, want %d", got, DefaultWordLength)
	}
}

func TestBeginDrawsOncePerRound(t *testing.T) {
	e, src := newPlaying(t, "apple")
	if src.calls != 1 {
		t.Fatalf("source calls = %d, want 1", src.calls)
	}
	if e.Begin() {
		t.Errorf("Begin() while playing = true, want no-op")
	}
	if src.calls != 1 {
		t.Errorf("source calls after redundant Begin = %d, want 1", src.calls)
	}
}

func TestWinningSubmission(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	typeWord(e, "apple")
	if !e.Submit() {
		t.Fatalf("Submit() = false, want true")
	}
	if e.Phase() != PhaseWon {
		t.Errorf("Phase() = %v, want %v", e.Phase(), PhaseWon)
	}
	snap := e.Snapshot()
	want := []Mark{MarkExact, MarkExact, MarkExact, MarkExact, MarkExact}
	if !reflect.DeepEqual(snap.Attempts[0].Marks, want) {
		t.Errorf("marks = %v, want %v", snap.Attempts[0].Marks, want)
	}
	if snap.Answer != "apple" {
		t.Errorf("Snapshot().Answer = %q, want %q", snap.Answer, "apple")
	}
}

func TestWinOnLastAttempt(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	for i := 0; i < MaxAttempts-1; i++ {
		typeWord(e, "pleap")
		e.Submit()
	}
	typeWord(e, "apple")
	e.Submit()
	if e.Phase() != PhaseWon {
		t.Errorf("Phase() = %v, want %v", e.Phase(), PhaseWon)
	}
}

func TestNonWinningSubmissionKeepsPlaying(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	typeWord(e, "pleap")
	e.Submit()
	if e.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, want %v", e.Phase(), PhasePlaying)
	}
	snap := e.Snapshot()
	want := []Mark{MarkPresent, MarkPresent, MarkPresent, MarkPresent, MarkPresent}
	if !reflect.DeepEqual(snap.Attempts[0].Marks, want) {
		t.Errorf("marks = %v, want %v", snap.Attempts[0].Marks, want)
	}
	if snap.Remaining != MaxAttempts-1 {
		t.Errorf("Remaining = %d, want %d", snap.Remaining, MaxAttempts-1)
	}
	if snap.Answer != "" {
		t.Errorf("Answer leaked while playing: %q", snap.Answer)
	}
}

func TestLossAfterMaxAttempts(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	for i := 0; i < MaxAttempts; i++ {
		if e.Phase() != PhasePlaying {
			t.Fatalf("attempt %d: Phase() = %v, want playing", i, e.Phase())
		}
		typeWord(e, "durst")
		e.Submit()
	}
	if e.Phase() != PhaseLost {
		t.Fatalf("Phase() = %v, want %v", e.Phase(), PhaseLost)
	}
	answer, ok := e.Answer()
	if !ok || answer != "apple" {
		t.Errorf("Answer() = %q, %v; want %q, true", answer, ok, "apple")
	}
	if e.Snapshot().Forfeit {
		t.Errorf("Forfeit set for a round lost by exhaustion")
	}
	typeWord(e, "apple")
	if e.Submit() {
		t.Errorf("Submit() after loss = true, want no-op")
	}
	if len(e.Attempts()) != MaxAttempts {
		t.Errorf("len(Attempts()) = %d, want %d", len(e.Attempts()), MaxAttempts)
	}
}

func TestSubmitGuards(t *testing.T) {
	e := New(&fixedSource{word: "apple"}, 5)
	typeWord(e, "apple")
	if e.Submit() {
		t.Errorf("Submit() before Begin = true")
	}

	e, _ = newPlaying(t, "apple")
	typeWord(e, "appl")
	if e.Submit() {
		t.Errorf("Submit() with 4 letters = true")
	}
	if e.CurrentGuess() != "appl" {
		t.Errorf("CurrentGuess() = %q, want %q", e.CurrentGuess(), "appl")
	}

	e.AppendLetter('e')
	e.Pause()
	if e.Submit() {
		t.Errorf("Submit() while paused = true")
	}
	if len(e.Attempts()) != 0 {
		t.Errorf("attempts recorded while paused")
	}
}

func TestEditingBuffer(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	for _, c := range "apple" {
		if !e.AppendLetter(c) {
			t.Fatalf("AppendLetter(%q) = false", c)
		}
	}
	if e.AppendLetter('x') {
		t.Errorf("AppendLetter past word length = true")
	}
	if !e.RemoveLetter() {
		t.Fatalf("RemoveLetter() = false")
	}
	if got := e.CurrentGuess(); got != "appl" {
		t.Errorf("CurrentGuess() = %q, want %q", got, "appl")
	}
}

func TestAppendLetterNormalizes(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	tests := []struct {
		in   rune
		ok   bool
		want string
	}{
		{'A', true, "a"},
		{'p', true, "ap"},
		{'1', false, "ap"},
		{' ', false, "ap"},
		{'é', false, "ap"},
		{'Z', true, "apz"},
	}
	for _, tt := range tests {
		if got := e.AppendLetter(tt.in); got != tt.ok {
			t.Errorf("AppendLetter(%q) = %v, want %v", tt.in, got, tt.ok)
		}
		if got := e.CurrentGuess(); got != tt.want {
			t.Errorf("after %q CurrentGuess() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRemoveLetterEmpty(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	if e.RemoveLetter() {
		t.Errorf("RemoveLetter() on empty guess = true")
	}
}

func TestPauseToggle(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	typeWord(e, "ap")
	before := e.Snapshot()

	if !e.Pause() || e.Phase() != PhasePaused {
		t.Fatalf("first Pause(): phase = %v, want paused", e.Phase())
	}
	if e.AppendLetter('p') || e.RemoveLetter() {
		t.Errorf("editing accepted while paused")
	}
	if !e.Pause() || e.Phase() != PhasePlaying {
		t.Fatalf("second Pause(): phase = %v, want playing", e.Phase())
	}
	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed across pause toggle: before %+v, after %+v", before, after)
	}
}

func TestPauseOutsideRound(t *testing.T) {
	e := New(&fixedSource{word: "apple"}, 5)
	if e.Pause() {
		t.Errorf("Pause() before Begin = true")
	}
	e.Begin()
	e.End()
	if e.Pause() {
		t.Errorf("Pause() after End = true")
	}
}

func TestResumeAndBeginFromPaused(t *testing.T) {
	e, src := newPlaying(t, "apple")
	if e.Resume() {
		t.Errorf("Resume() while playing = true")
	}
	e.Pause()
	if !e.Resume() || e.Phase() != PhasePlaying {
		t.Errorf("Resume() did not return to playing")
	}
	e.Pause()
	if !e.Begin() || e.Phase() != PhasePlaying {
		t.Errorf("Begin() from paused did not resume")
	}
	if src.calls != 1 {
		t.Errorf("Begin() from paused drew a new word")
	}
}

func TestEnd(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		ok    bool
	}{
		{"not started", func(e *Engine) {}, false},
		{"playing", func(e *Engine) { e.Begin() }, true},
		{"paused", func(e *Engine) { e.Begin(); e.Pause() }, true},
		{"won", func(e *Engine) { e.Begin(); typeWord(e, "apple"); e.Submit() }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(&fixedSource{word: "apple"}, 5)
			tt.setup(e)
			before := e.Phase()
			if got := e.End(); got != tt.ok {
				t.Fatalf("End() = %v, want %v", got, tt.ok)
			}
			if tt.ok {
				snap := e.Snapshot()
				if snap.Phase != PhaseLost || !snap.Forfeit || snap.Answer != "apple" {
					t.Errorf("after End(): %+v", snap)
				}
			} else if e.Phase() != before {
				t.Errorf("End() changed phase from %v to %v", before, e.Phase())
			}
		})
	}
}

func TestRestartReplacesRound(t *testing.T) {
	e, src := newPlaying(t, "apple")
	typeWord(e, "durst")
	e.Submit()
	typeWord(e, "ap")
	e.End()

	src.word = "crane"
	if !e.Restart() {
		t.Fatalf("Restart() = false")
	}
	snap := e.Snapshot()
	if snap.Phase != PhasePlaying || len(snap.Attempts) != 0 || snap.CurrentGuess != "" || snap.Forfeit {
		t.Errorf("Restart() left state behind: %+v", snap)
	}
	typeWord(e, "crane")
	e.Submit()
	if e.Phase() != PhaseWon {
		t.Errorf("new secret not in effect: phase %v", e.Phase())
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestBeginAfterWin(t *testing.T) {
	e, src := newPlaying(t, "apple")
	typeWord(e, "apple")
	e.Submit()
	if !e.Begin() || e.Phase() != PhasePlaying {
		t.Fatalf("Begin() after win did not start a round")
	}
	if src.calls != 2 || len(e.Attempts()) != 0 {
		t.Errorf("Begin() after win: calls=%d attempts=%v", src.calls, e.Attempts())
	}
}

func TestPress(t *testing.T) {
	src := &fixedSource{word: "apple"}
	e := New(src, 5)

	if e.Press("F1") {
		t.Errorf("Press(F1) = true")
	}
	if e.Phase() != PhaseNotStarted {
		t.Fatalf("unrecognized key began the round")
	}
	if !e.Press("A") {
		t.Fatalf("Press(A) = false")
	}
	if e.Phase() != PhasePlaying || e.CurrentGuess() != "a" {
		t.Fatalf("first key: phase=%v guess=%q", e.Phase(), e.CurrentGuess())
	}
	for _, k := range []string{"p", "p", "l", "x", "Backspace", "e"} {
		e.Press(k)
	}
	if e.CurrentGuess() != "apple" {
		t.Fatalf("CurrentGuess() = %q, want apple", e.CurrentGuess())
	}
	e.Pause()
	if e.Press("Enter") {
		t.Errorf("Press(Enter) while paused = true")
	}
	e.Pause()
	if !e.Press("NumpadEnter") || e.Phase() != PhaseWon {
		t.Errorf("Press(NumpadEnter) did not submit: phase %v", e.Phase())
	}
	if e.Press("a") {
		t.Errorf("Press after win = true")
	}
}

func TestPressEnterAutoBegins(t *testing.T) {
	e := New(&fixedSource{word: "apple"}, 5)
	if !e.Press("return") {
		t.Errorf("Press(return) in not_started = false, want true (round began)")
	}
	if e.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, want playing", e.Phase())
	}
}

func TestSetWordLength(t *testing.T) {
	e, src := newPlaying(t, "apple")
	typeWord(e, "ap")
	if e.SetWordLength(4) || e.SetWordLength(9) {
		t.Errorf("unsupported length accepted")
	}
	if e.WordLength() != 5 || e.CurrentGuess() != "ap" {
		t.Errorf("rejected length changed state")
	}
	src.word = "python"
	if !e.SetWordLength(6) {
		t.Fatalf("SetWordLength(6) = false")
	}
	if e.WordLength() != 6 || e.Phase() != PhasePlaying || e.CurrentGuess() != "" {
		t.Errorf("after SetWordLength(6): %+v", e.Snapshot())
	}
	typeWord(e, "python")
	e.Submit()
	if e.Phase() != PhaseWon {
		t.Errorf("six-letter round not won: %v", e.Phase())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e, _ := newPlaying(t, "apple")
	typeWord(e, "durst")
	e.Submit()
	snap := e.Snapshot()
	snap.Attempts[0].Word = "xxxxx"
	attempts := e.Attempts()
	attempts[0] = "yyyyy"
	if got := e.Attempts()[0]; got != "durst" {
		t.Errorf("engine state mutated through copies: %q", got)
	}
}
