// Package tui is a terminal front end for the game engine using tcell.
// It only reads engine snapshots and forwards key presses; all game rules
// live in package game.
package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgame/internal/game"
)

// App drives one engine from a terminal.
type App struct {
	screen  tcell.Screen
	engine  *game.Engine
	running bool
}

// New initializes the terminal and returns an App for e.
func New(e *game.Engine) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &App{screen: s, engine: e, running: true}, nil
}

// Run renders and handles input until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Fini()

	go func() {
		<-ctx.Done()
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for a.running {
		a.render()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			a.handle(Translate(ev.Key(), ev.Rune(), ev.Modifiers()))
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				a.running = false
			}
		case nil:
			a.running = false
		}
	}
	return ctx.Err()
}

func (a *App) render() {
	a.screen.Clear()
	Draw(a.screen, a.engine.Snapshot())
	a.screen.Show()
}

// handle applies an action to the engine.
func (a *App) handle(act Action) {
	var (
		op      string
		applied bool
	)
	switch act.Kind {
	case ActionNone:
		return
	case ActionQuit:
		a.running = false
		return
	case ActionPress:
		op, applied = "press", a.engine.Press(act.Key)
	case ActionPause:
		op, applied = "pause", a.engine.Pause()
	case ActionRestart:
		op, applied = "restart", a.engine.Restart()
	case ActionEnd:
		op, applied = "end", a.engine.End()
	case ActionLength:
		op, applied = "set_length", a.engine.SetWordLength(NextLength(a.engine.WordLength()))
	}
	log.Debug().Str("op", op).Str("key", act.Key).Bool("applied", applied).
		Str("phase", a.engine.Phase().String()).Msg("tui action")
}

// NextLength cycles through the supported word lengths.
func NextLength(n int) int {
	if n >= game.MaxWordLength || n < game.MinWordLength {
		return game.MinWordLength
	}
	return n + 1
}
