package tui

import "github.com/gdamore/tcell/v2"

// ActionKind is what a key press asks the app to do.
type ActionKind int

const (
	ActionNone    ActionKind = iota
	ActionPress              // forward Action.Key to Engine.Press
	ActionPause              // toggle pause
	ActionRestart            // start a new round
	ActionEnd                // forfeit the round
	ActionLength             // cycle the word length
	ActionQuit
)

// Action is a translated key press.
type Action struct {
	Kind ActionKind
	Key  string // engine key name for ActionPress
}

// Translate maps a terminal key to an Action.
//
//	letters, Enter, Backspace → engine keys
//	Esc → pause/resume, Ctrl-N → restart, Ctrl-E → end, Tab → word length, Ctrl-C → quit
func Translate(key tcell.Key, r rune, mod tcell.ModMask) Action {
	switch key {
	case tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyEscape:
		return Action{Kind: ActionPause}
	case tcell.KeyCtrlN:
		return Action{Kind: ActionRestart}
	case tcell.KeyCtrlE:
		return Action{Kind: ActionEnd}
	case tcell.KeyTab:
		return Action{Kind: ActionLength}
	case tcell.KeyEnter:
		return Action{Kind: ActionPress, Key: "enter"}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Action{Kind: ActionPress, Key: "backspace"}
	case tcell.KeyRune:
		if mod&tcell.ModCtrl != 0 {
			switch r {
			case 'c', 'C':
				return Action{Kind: ActionQuit}
			case 'n', 'N':
				return Action{Kind: ActionRestart}
			case 'e', 'E':
				return Action{Kind: ActionEnd}
			}
			return Action{}
		}
		if mod&tcell.ModAlt != 0 {
			return Action{}
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return Action{Kind: ActionPress, Key: string(r)}
		}
	}
	return Action{}
}
