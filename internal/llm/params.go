package llm

import "strings"

// KnownModels lists the GGUF files offered by the parameter screen and the
// downloader.
var KnownModels = []string{
	"Meta-Llama-3-8B-Instruct.Q4_0.gguf",
	"Nous-Hermes-2-Mistral-7B-DPO.Q4_0.gguf",
	"Phi-3-mini-4k-instruct.Q4_0.gguf",
	"orca-mini-3b-gguf2-q4_0.gguf",
	"gpt4all-13b-snoozy-q4_0.gguf",
}

// Default prompts used when the user leaves them empty.
const (
	DefaultGlobalPrompt   = "You are a helpful cooking assistant, return only recipe in 1 paragraph."
	DefaultNegativePrompt = "Too long"
)

// Params are the user-tunable generation settings.
type Params struct {
	Model          string  `json:"model" yaml:"model" toml:"model"`
	MaxTurns       int     `json:"max_turns" yaml:"max_turns" toml:"max_turns"`
	Temperature    float64 `json:"temp" yaml:"temp" toml:"temp"`
	TopK           int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	TopP           float64 `json:"top_p" yaml:"top_p" toml:"top_p"`
	MaxTokens      int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	RepeatPenalty  float64 `json:"repeat_penalty" yaml:"repeat_penalty" toml:"repeat_penalty"`
	GlobalPrompt   string  `json:"global_prompt" yaml:"global_prompt" toml:"global_prompt"`
	NegativePrompt string  `json:"negative_prompt" yaml:"negative_prompt" toml:"negative_prompt"`
}

// DefaultParams returns the settings used when nothing was chosen.
func DefaultParams() Params {
	return Params{
		Model:          KnownModels[0],
		MaxTurns:       100,
		Temperature:    0.7,
		TopK:           40,
		TopP:           0.9,
		MaxTokens:      200,
		RepeatPenalty:  1.18,
		GlobalPrompt:   DefaultGlobalPrompt,
		NegativePrompt: DefaultNegativePrompt,
	}
}

// WithDefaults fills zero fields of p from def. Prompts are only filled when
// p leaves them empty after trimming.
func (p Params) WithDefaults(def Params) Params {
	if strings.TrimSpace(p.Model) == "" {
		p.Model = def.Model
	}
	if p.MaxTurns <= 0 {
		p.MaxTurns = def.MaxTurns
	}
	if p.Temperature <= 0 {
		p.Temperature = def.Temperature
	}
	if p.TopK <= 0 {
		p.TopK = def.TopK
	}
	if p.TopP <= 0 {
		p.TopP = def.TopP
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = def.MaxTokens
	}
	if p.RepeatPenalty <= 0 {
		p.RepeatPenalty = def.RepeatPenalty
	}
	if strings.TrimSpace(p.GlobalPrompt) == "" {
		p.GlobalPrompt = def.GlobalPrompt
	}
	if strings.TrimSpace(p.NegativePrompt) == "" {
		p.NegativePrompt = def.NegativePrompt
	}
	return p
}

// Infer converts the settings into adapter parameters.
func (p Params) Infer() InferParams {
	return InferParams{
		Temperature:   float32(p.Temperature),
		TopP:          float32(p.TopP),
		TopK:          p.TopK,
		MaxTokens:     p.MaxTokens,
		RepeatPenalty: float32(p.RepeatPenalty),
	}
}
