package tui

import (
	"context"
	"strconv"
	"strings"

	"recipebot/internal/dispatch"
	"recipebot/internal/nav"
)

type modeScreen struct {
	nav.BaseScreen
	app *App
}

func (s *modeScreen) OnEnter(nav.Params) { s.render() }

func (s *modeScreen) render() {
	a := s.app
	a.printf("\n== Mode Selection ==\n")
	for i, m := range dispatch.Modes {
		a.printf("  %d) %s\n", i+1, m.Label)
	}
	a.printf("Choose a mode (number or name), or quit: ")
}

func (s *modeScreen) handle(_ context.Context, line string) {
	mi, ok := pickMode(line)
	if !ok {
		s.app.printf("Unknown mode %q.\n", line)
		s.render()
		return
	}
	if mi.NeedsParams {
		s.app.router.Show(ScreenParams, nav.Params{"mode": string(mi.Mode)})
		return
	}
	s.app.router.Show(ScreenInputType, nav.Params{"mode": string(mi.Mode)})
}

func pickMode(line string) (dispatch.ModeInfo, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(dispatch.Modes) {
			return dispatch.Modes[n-1], true
		}
		return dispatch.ModeInfo{}, false
	}
	return dispatch.Mode(strings.ToLower(line)).Info()
}

type inputTypeScreen struct {
	nav.BaseScreen
	app *App
}

func (s *inputTypeScreen) OnEnter(p nav.Params) {
	s.app.enterMode(p)
	s.render()
}

func (s *inputTypeScreen) render() {
	a := s.app
	a.printf("\n== Input Type ==\nMode: %s\n", modeTitle(a.sel.Mode))
	a.printf("  1) Text\n  2) Image\nChoose an input type, or back: ")
}

func (s *inputTypeScreen) handle(_ context.Context, line string) {
	switch strings.ToLower(line) {
	case "1", "text":
		s.app.router.Show(ScreenText, nil)
	case "2", "image":
		s.app.router.Show(ScreenImage, nil)
	default:
		s.app.printf("Unknown input type %q.\n", line)
		s.render()
	}
}

// chatScreen is the text chat, or the image chat when image is set. The
// image chat asks for a picture path before the first message.
type chatScreen struct {
	app       *App
	image     bool
	imagePath string
}

func (s *chatScreen) OnEnter(nav.Params) {
	s.imagePath = ""
	kind := "Text"
	if s.image {
		kind = "Image"
	}
	s.app.printf("\n== %s Chat ==\nMode: %s. Commands: back, quit, :params", kind, modeTitle(s.app.sel.Mode))
	if s.image {
		s.app.printf(", :image <path>")
	}
	s.app.printf("\n")
	s.render()
}

func (s *chatScreen) OnExit() {}

func (s *chatScreen) render() {
	if s.image && s.imagePath == "" {
		s.app.printf("Image path: ")
		return
	}
	s.app.printf("You: ")
}

func (s *chatScreen) handle(ctx context.Context, line string) {
	if s.image {
		if rest, ok := strings.CutPrefix(line, ":image"); ok {
			s.imagePath = strings.TrimSpace(rest)
			s.render()
			return
		}
		if s.imagePath == "" {
			s.imagePath = line
			s.render()
			return
		}
	}
	if line == "" {
		s.render()
		return
	}
	s.app.ask(ctx, line, s.imagePath)
}

func modeTitle(m dispatch.Mode) string {
	if mi, ok := m.Info(); ok {
		return mi.Label
	}
	words := strings.Fields(strings.ReplaceAll(string(m), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
