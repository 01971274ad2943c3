// Package tui is the line-oriented terminal front end. It drives a
// nav.Router over a fixed set of screens and hands chat turns to a Replier.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"recipebot/internal/dispatch"
	"recipebot/internal/llm"
	"recipebot/internal/nav"
)

// Screen ids.
const (
	ScreenMode      nav.ScreenID = "mode"
	ScreenParams    nav.ScreenID = "params"
	ScreenInputType nav.ScreenID = "input_type"
	ScreenText      nav.ScreenID = "text"
	ScreenImage     nav.ScreenID = "image"
)

// Replier answers one chat turn for the current selection.
type Replier interface {
	Reply(ctx context.Context, sel dispatch.Selection, text, imagePath string) string
}

// Options configures a terminal session.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Replier  Replier
	Defaults llm.Params
	Logger   zerolog.Logger
}

type screen interface {
	nav.Screen
	render()
	handle(ctx context.Context, line string)
}

// App is one interactive session. Run drives it from a single goroutine.
type App struct {
	in      io.Reader
	out     io.Writer
	replier Replier
	log     zerolog.Logger

	router   *nav.Router
	sel      dispatch.Selection
	defaults llm.Params
	params   llm.Params

	pending chan string
	quit    bool
}

// New builds the screens and registers them with a fresh router.
func New(opts Options) *App {
	def := opts.Defaults.WithDefaults(llm.DefaultParams())
	a := &App{
		in:       opts.In,
		out:      opts.Out,
		replier:  opts.Replier,
		log:      opts.Logger,
		router:   nav.NewRouter(),
		defaults: def,
		params:   def,
	}
	a.router.Register(ScreenMode, &modeScreen{app: a})
	a.router.Register(ScreenParams, &paramsScreen{app: a})
	a.router.Register(ScreenInputType, &inputTypeScreen{app: a})
	a.router.Register(ScreenText, &chatScreen{app: a})
	a.router.Register(ScreenImage, &chatScreen{app: a, image: true})
	a.router.OnBackAvailable(func(ok bool) {
		a.log.Debug().Bool("back", ok).Str("screen", string(a.router.Active())).Msg("navigate")
	})
	return a
}

// Router exposes the navigation state.
func (a *App) Router() *nav.Router { return a.router }

// Selection returns the current mode and settings.
func (a *App) Selection() dispatch.Selection { return a.sel }

// Run shows the mode menu and processes input lines until quit, EOF or ctx
// cancellation. While a reply is outstanding no further input is read.
func (a *App) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	a.router.Start(ScreenMode)
	for !a.quit {
		if a.pending != nil {
			select {
			case reply := <-a.pending:
				a.pending = nil
				a.printf("Bot: %s\n", reply)
				a.active().render()
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		select {
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			a.dispatch(ctx, strings.TrimSpace(line))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	a.printf("Goodbye.\n")
	return nil
}

// dispatch handles the commands shared by every screen and forwards the rest
// to the active one.
func (a *App) dispatch(ctx context.Context, line string) {
	switch strings.ToLower(line) {
	case "quit", "exit":
		a.quit = true
		return
	case "back":
		if !a.router.Back() {
			a.printf("Nothing to go back to.\n")
		}
		a.active().render()
		return
	case ":params":
		if mi, ok := a.sel.Mode.Info(); ok && mi.NeedsParams {
			a.router.Show(ScreenParams, nil)
		} else {
			a.printf("This mode has no generation settings.\n")
		}
		return
	}
	a.active().handle(ctx, line)
}

// ask runs the reply off the loop goroutine and parks its result on pending.
func (a *App) ask(ctx context.Context, text, imagePath string) {
	sel := a.sel
	ch := make(chan string, 1)
	a.pending = ch
	a.printf("Bot: thinking...\n")
	go func() {
		ch <- a.replier.Reply(ctx, sel, text, imagePath)
	}()
}

// enterMode selects the mode a screen was shown with. Screens reached by
// back or from the chat keep the current selection.
func (a *App) enterMode(p nav.Params) {
	if m := p.String("mode"); m != "" {
		a.sel.Select(dispatch.Mode(m))
	}
}

func (a *App) active() screen {
	s, _ := a.router.Screen(a.router.Active())
	return s.(screen)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
