package dispatch

import (
	"strings"

	"recipebot/internal/llm"
)

// Mode names a reply backend.
type Mode string

// Known modes.
const (
	ExistingRecipe Mode = "existing_recipe"
	TheMealDB      Mode = "themealdb"
	HuggingFace    Mode = "huggingface"
	CustomModel    Mode = "custom_model"
	LLMInterface   Mode = "llm_interface"
	MLLMInterface  Mode = "mllm_interface"
)

// ModeInfo describes a mode for pickers.
type ModeInfo struct {
	Mode  Mode   `json:"mode"`
	Label string `json:"label"`
	// NeedsParams marks modes whose generation settings are chosen before
	// chatting.
	NeedsParams bool `json:"needs_params"`
}

// Modes lists the known modes in menu order.
var Modes = []ModeInfo{
	{ExistingRecipe, "Existing Recipe", false},
	{TheMealDB, "TheMealDB", false},
	{HuggingFace, "Hugging Face", false},
	{CustomModel, "Custom Model", false},
	{LLMInterface, "LLM Interface", true},
	{MLLMInterface, "MLLM Interface", true},
}

// ParseMode trims s; blank input selects ExistingRecipe. Unknown tokens are
// returned unchanged.
func ParseMode(s string) Mode {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExistingRecipe
	}
	return Mode(s)
}

// Known reports whether m is one of Modes.
func (m Mode) Known() bool {
	_, ok := m.Info()
	return ok
}

// Info returns the menu entry for m.
func (m Mode) Info() (ModeInfo, bool) {
	for _, mi := range Modes {
		if mi.Mode == m {
			return mi, true
		}
	}
	return ModeInfo{}, false
}

// Selection is the mode chosen by the user plus optional generation
// settings. It is owned by a single front-end session.
type Selection struct {
	Mode   Mode
	Params *llm.Params
}

// Select records mode and clears settings that only apply to parametrised
// modes.
func (s *Selection) Select(m Mode) {
	s.Mode = m
	if mi, ok := m.Info(); !ok || !mi.NeedsParams {
		s.Params = nil
	}
}

// SetParams stores generation settings for the current mode.
func (s *Selection) SetParams(p llm.Params) { s.Params = &p }

// Options returns per-turn options carrying the selected settings.
func (s Selection) Options() Options { return Options{Params: s.Params} }
