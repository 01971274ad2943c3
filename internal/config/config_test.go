package config

import (
	"testing"

	"recipebot/internal/llm"
)

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	cfg := Config{Addr: ":1234", LLM: LLM{Params: llm.Params{MaxTokens: 32}}}.WithDefaults()
	if cfg.Addr != ":1234" {
		t.Fatalf("addr overwritten: %q", cfg.Addr)
	}
	if cfg.RecipesDir != "data/recipes" || cfg.MealDB.TimeoutSeconds != 10 || cfg.LLM.Runtime != RuntimeLlama {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.LLM.Params.MaxTokens != 32 || cfg.LLM.Params.TopK != 40 {
		t.Fatalf("params = %+v", cfg.LLM.Params)
	}
	if len(cfg.Download.Models) != len(llm.KnownModels) {
		t.Fatalf("download models = %v", cfg.Download.Models)
	}
}

func TestRequestTimeoutDefaults(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 300},
		{30, 30},
		{-1, -1},
	}
	for _, tc := range cases {
		got := Config{RequestTimeoutSeconds: tc.in}.WithDefaults().RequestTimeoutSeconds
		if got != tc.want {
			t.Errorf("timeout %d: got %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestDefaultsAreStable(t *testing.T) {
	d := Defaults()
	if got := d.WithDefaults(); got.Addr != d.Addr || got.LLM.Params != d.LLM.Params {
		t.Fatalf("WithDefaults changed defaults: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:     ":9000",
		EnvLogLevel: "debug",
		EnvHFToken:  "hf_env",
	}
	getenv := func(k string) string { return env[k] }

	cfg := Config{}.ApplyEnv(getenv)
	if cfg.Addr != ":9000" || cfg.LogLevel != "debug" || cfg.HuggingFace.Token != "hf_env" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}

	cfg = Config{HuggingFace: HuggingFace{Token: "hf_file"}}.ApplyEnv(getenv)
	if cfg.HuggingFace.Token != "hf_file" {
		t.Fatalf("file token overwritten: %q", cfg.HuggingFace.Token)
	}
}
