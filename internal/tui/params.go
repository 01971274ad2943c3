package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recipebot/internal/llm"
	"recipebot/internal/nav"
)

type paramsScreen struct {
	nav.BaseScreen
	app *App
}

func (s *paramsScreen) OnEnter(p nav.Params) {
	s.app.enterMode(p)
	s.render()
}

func (s *paramsScreen) render() {
	a := s.app
	p := a.params
	a.printf("\n== LLM Parameters ==\nMode: %s\n", modeTitle(a.sel.Mode))
	a.printf("  model=%s\n  max_turns=%d\n  temp=%g\n  top_k=%d\n  top_p=%g\n  max_tokens=%d\n  repeat_penalty=%g\n",
		p.Model, p.MaxTurns, p.Temperature, p.TopK, p.TopP, p.MaxTokens, p.RepeatPenalty)
	a.printf("  global_prompt=%s\n  negative_prompt=%s\n", p.GlobalPrompt, p.NegativePrompt)
	a.printf("Available models: %s\n", strings.Join(llm.KnownModels, ", "))
	a.printf("Set with key=value, reset, or done: ")
}

func (s *paramsScreen) handle(_ context.Context, line string) {
	a := s.app
	switch strings.ToLower(line) {
	case "", "done":
		a.sel.SetParams(a.params.WithDefaults(a.defaults))
		if a.router.HistoryLen() > 0 && isChat(a.router.History()[a.router.HistoryLen()-1]) {
			a.router.Back()
			a.active().render()
			return
		}
		a.router.Show(ScreenInputType, nil)
		return
	case "reset":
		a.params = a.defaults
		s.render()
		return
	}
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		a.printf("Expected key=value.\n")
		s.render()
		return
	}
	p, err := setParam(a.params, strings.TrimSpace(key), strings.TrimSpace(val))
	if err != nil {
		a.printf("%v\n", err)
	} else {
		a.params = p
	}
	s.render()
}

func isChat(id nav.ScreenID) bool { return id == ScreenText || id == ScreenImage }

// setParam assigns one generation setting by its wire name.
func setParam(p llm.Params, key, val string) (llm.Params, error) {
	var err error
	switch strings.ToLower(key) {
	case "model":
		p.Model = val
	case "max_turns":
		p.MaxTurns, err = strconv.Atoi(val)
	case "temp", "temperature":
		p.Temperature, err = strconv.ParseFloat(val, 64)
	case "top_k":
		p.TopK, err = strconv.Atoi(val)
	case "top_p":
		p.TopP, err = strconv.ParseFloat(val, 64)
	case "max_tokens":
		p.MaxTokens, err = strconv.Atoi(val)
	case "repeat_penalty":
		p.RepeatPenalty, err = strconv.ParseFloat(val, 64)
	case "global_prompt":
		p.GlobalPrompt = val
	case "negative_prompt":
		p.NegativePrompt = val
	default:
		return p, fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return p, fmt.Errorf("invalid value for %s: %q", key, val)
	}
	return p, nil
}
