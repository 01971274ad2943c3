// Package config defines the recipebot configuration file and its defaults.
package config

import (
	"strings"

	"recipebot/internal/llm"
)

// Config holds runtime parameters for the service and the terminal app.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	RecipesDir string `json:"recipes_dir" yaml:"recipes_dir" toml:"recipes_dir"`
	ModelsDir  string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	// ChatDB is the transcript database path; empty disables transcripts.
	ChatDB    string `json:"chat_db" yaml:"chat_db" toml:"chat_db"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	// RequestTimeoutSeconds bounds one /chat turn. 0 selects the default and
	// a negative value disables the timeout.
	RequestTimeoutSeconds int `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	// ChatRatePerSecond throttles POST /chat across clients; 0 disables.
	ChatRatePerSecond float64 `json:"chat_rate_per_second" yaml:"chat_rate_per_second" toml:"chat_rate_per_second"`
	ChatBurst         int     `json:"chat_burst" yaml:"chat_burst" toml:"chat_burst"`
	CORS              CORS    `json:"cors" yaml:"cors" toml:"cors"`

	MealDB      MealDB      `json:"themealdb" yaml:"themealdb" toml:"themealdb"`
	HuggingFace HuggingFace `json:"huggingface" yaml:"huggingface" toml:"huggingface"`
	Custom      Custom      `json:"custom_model" yaml:"custom_model" toml:"custom_model"`
	LLM         LLM         `json:"llm" yaml:"llm" toml:"llm"`
	Vision      Vision      `json:"vision" yaml:"vision" toml:"vision"`
	Download    Download    `json:"download" yaml:"download" toml:"download"`
}

// CORS is opt-in.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

type MealDB struct {
	BaseURL        string  `json:"base_url" yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int     `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	RatePerSecond  float64 `json:"rate_per_second" yaml:"rate_per_second" toml:"rate_per_second"`
	Burst          int     `json:"burst" yaml:"burst" toml:"burst"`
}

type HuggingFace struct {
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Model   string `json:"model" yaml:"model" toml:"model"`
	// Token also reads HF_TOKEN.
	Token          string `json:"token" yaml:"token" toml:"token"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// Custom points at the completion endpoint serving the recipe generator.
type Custom struct {
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Model   string `json:"model" yaml:"model" toml:"model"`
}

// LLM selects and tunes the local model runtime.
type LLM struct {
	// Runtime is "llama" (in-process, needs -tags llama) or "server".
	Runtime        string     `json:"runtime" yaml:"runtime" toml:"runtime"`
	ServerURL      string     `json:"server_url" yaml:"server_url" toml:"server_url"`
	APIKey         string     `json:"api_key" yaml:"api_key" toml:"api_key"`
	ServerChat     bool       `json:"server_chat" yaml:"server_chat" toml:"server_chat"`
	CtxSize        int        `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	Threads        int        `json:"threads" yaml:"threads" toml:"threads"`
	MaxQueueDepth  int        `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWaitSeconds int        `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds"`
	Params         llm.Params `json:"params" yaml:"params" toml:"params"`
}

type Vision struct {
	BaseURL         string `json:"base_url" yaml:"base_url" toml:"base_url"`
	ClassifierModel string `json:"classifier_model" yaml:"classifier_model" toml:"classifier_model"`
	CaptionModel    string `json:"caption_model" yaml:"caption_model" toml:"caption_model"`
}

type Download struct {
	BaseURL string   `json:"base_url" yaml:"base_url" toml:"base_url"`
	Models  []string `json:"models" yaml:"models" toml:"models"`
}

// Runtime names.
const (
	RuntimeLlama  = "llama"
	RuntimeServer = "server"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:                  ":8080",
		RecipesDir:            "data/recipes",
		ModelsDir:             "~/.recipebot/models",
		LogLevel:              "info",
		LogFormat:             "console",
		MaxBodyBytes:          1 << 20,
		RequestTimeoutSeconds: 300,
		MealDB: MealDB{
			BaseURL:        "https://www.themealdb.com/api/json/v1/1",
			TimeoutSeconds: 10,
			RatePerSecond:  2,
			Burst:          4,
		},
		HuggingFace: HuggingFace{
			BaseURL:        "https://router.huggingface.co",
			Model:          "deepseek-ai/DeepSeek-V3-0324",
			TimeoutSeconds: 60,
		},
		Custom: Custom{Model: "flax-community/t5-recipe-generation"},
		LLM: LLM{
			Runtime:        RuntimeLlama,
			CtxSize:        2048,
			Threads:        4,
			MaxQueueDepth:  8,
			MaxWaitSeconds: 120,
			Params:         llm.DefaultParams(),
		},
		Vision: Vision{
			BaseURL:         "https://router.huggingface.co/hf-inference/models",
			ClassifierModel: "openai/clip-vit-base-patch32",
			CaptionModel:    "Salesforce/blip-image-captioning-base",
		},
		Download: Download{
			BaseURL: "https://gpt4all.io/models/",
			Models:  append([]string(nil), llm.KnownModels...),
		},
	}
}

// WithDefaults fills zero fields of c from Defaults.
func (c Config) WithDefaults() Config {
	d := Defaults()
	str := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	num := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	str(&c.Addr, d.Addr)
	str(&c.RecipesDir, d.RecipesDir)
	str(&c.ModelsDir, d.ModelsDir)
	str(&c.LogLevel, d.LogLevel)
	str(&c.LogFormat, d.LogFormat)
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = d.RequestTimeoutSeconds
	}

	str(&c.MealDB.BaseURL, d.MealDB.BaseURL)
	num(&c.MealDB.TimeoutSeconds, d.MealDB.TimeoutSeconds)
	if c.MealDB.RatePerSecond <= 0 {
		c.MealDB.RatePerSecond = d.MealDB.RatePerSecond
	}
	num(&c.MealDB.Burst, d.MealDB.Burst)

	str(&c.HuggingFace.BaseURL, d.HuggingFace.BaseURL)
	str(&c.HuggingFace.Model, d.HuggingFace.Model)
	num(&c.HuggingFace.TimeoutSeconds, d.HuggingFace.TimeoutSeconds)

	str(&c.Custom.Model, d.Custom.Model)

	str(&c.LLM.Runtime, d.LLM.Runtime)
	num(&c.LLM.CtxSize, d.LLM.CtxSize)
	num(&c.LLM.Threads, d.LLM.Threads)
	num(&c.LLM.MaxQueueDepth, d.LLM.MaxQueueDepth)
	num(&c.LLM.MaxWaitSeconds, d.LLM.MaxWaitSeconds)
	c.LLM.Params = c.LLM.Params.WithDefaults(d.LLM.Params)

	str(&c.Vision.BaseURL, d.Vision.BaseURL)
	str(&c.Vision.ClassifierModel, d.Vision.ClassifierModel)
	str(&c.Vision.CaptionModel, d.Vision.CaptionModel)

	str(&c.Download.BaseURL, d.Download.BaseURL)
	if len(c.Download.Models) == 0 {
		c.Download.Models = d.Download.Models
	}
	return c
}

// Environment variables read by ApplyEnv.
const (
	EnvAddr     = "RECIPEBOT_ADDR"
	EnvLogLevel = "RECIPEBOT_LOG_LEVEL"
	EnvHFToken  = "HF_TOKEN"
)

// ApplyEnv overrides c from the environment. getenv is usually os.Getenv.
// The Hugging Face token from the environment only fills an empty value.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if c.HuggingFace.Token == "" {
		c.HuggingFace.Token = getenv(EnvHFToken)
	}
	return c
}
