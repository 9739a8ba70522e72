package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordgame/internal/game"
)

// canvas is the part of tcell.Screen the renderer draws through.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurrent = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true)
	styleExact   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	stylePresent = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	styleAbsent  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePaused  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const (
	boardTop  = 2
	cellWidth = 4 // "[A] "
	helpText  = "Enter submit · Bksp delete · Esc pause · ^N new · ^E end · Tab length · ^C quit"
)

// markStyle returns the tile style for a mark.
func markStyle(m game.Mark) tcell.Style {
	switch m {
	case game.MarkExact:
		return styleExact
	case game.MarkPresent:
		return stylePresent
	default:
		return styleAbsent
	}
}

// Status returns the status line and its style for a snapshot.
func Status(s game.Snapshot) (string, tcell.Style) {
	switch s.Phase {
	case game.PhaseNotStarted:
		return "Type a letter or press Enter to begin.", styleText
	case game.PhasePaused:
		return "Game paused. Press Esc to resume.", stylePaused
	case game.PhaseWon:
		return fmt.Sprintf("Congratulations! You won in %d attempts!", len(s.Attempts)), styleWon
	case game.PhaseLost:
		if s.Forfeit {
			return fmt.Sprintf("Game ended. The word was: %s", strings.ToUpper(s.Answer)), styleLost
		}
		return fmt.Sprintf("Game Over! The word was: %s", strings.ToUpper(s.Answer)), styleLost
	}
	return fmt.Sprintf("Attempts: %d/%d", len(s.Attempts), s.MaxAttempts), styleText
}

// Draw renders the whole board for s onto c.
func Draw(c canvas, s game.Snapshot) {
	drawText(c, 0, 0, fmt.Sprintf("WORD GAME · %d letters", s.WordLength), styleText.Bold(true))

	y := boardTop
	for _, a := range s.Attempts {
		for i := 0; i < len(a.Word); i++ {
			drawTile(c, i, y, rune(a.Word[i]), markStyle(a.Marks[i]))
		}
		y++
	}
	if y < boardTop+s.MaxAttempts && (s.Phase == game.PhasePlaying || s.Phase == game.PhasePaused) {
		for i := 0; i < s.WordLength; i++ {
			r := ' '
			if i < len(s.CurrentGuess) {
				r = rune(s.CurrentGuess[i])
			}
			drawTile(c, i, y, r, styleCurrent)
		}
		y++
	}
	for ; y < boardTop+s.MaxAttempts; y++ {
		for i := 0; i < s.WordLength; i++ {
			drawTile(c, i, y, ' ', styleDim)
		}
	}

	msg, style := Status(s)
	drawText(c, 0, boardTop+s.MaxAttempts+1, msg, style)
	drawText(c, 0, boardTop+s.MaxAttempts+3, helpText, styleDim)
}

func drawTile(c canvas, col, row int, r rune, style tcell.Style) {
	x := col * cellWidth
	c.SetContent(x, row, '[', nil, styleDim)
	c.SetContent(x+1, row, toUpper(r), nil, style)
	c.SetContent(x+2, row, ']', nil, styleDim)
}

func drawText(c canvas, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
