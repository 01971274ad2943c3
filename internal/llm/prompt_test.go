package llm

import "testing"

func TestBuildPrompt(t *testing.T) {
	cases := []struct {
		name, global, neg, in, want string
	}{
		{"with negative", "Be brief.", "Too long", "eggs?", "Be brief.\nUser: eggs?\nBot:\nAvoid: Too long"},
		{"no negative", "Be brief.", "", "eggs?", "Be brief.\nUser: eggs?\nBot:"},
		{"blank negative", "G", "   ", "x", "G\nUser: x\nBot:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildPrompt(tc.global, tc.neg, tc.in); got != tc.want {
				t.Fatalf("BuildPrompt = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParamsWithDefaults(t *testing.T) {
	def := DefaultParams()
	got := Params{Temperature: 0.2, GlobalPrompt: "  "}.WithDefaults(def)
	if got.Temperature != 0.2 {
		t.Fatalf("temperature overwritten: %v", got.Temperature)
	}
	if got.GlobalPrompt != DefaultGlobalPrompt || got.NegativePrompt != DefaultNegativePrompt {
		t.Fatalf("prompts not defaulted: %+v", got)
	}
	if got.Model != KnownModels[0] || got.MaxTokens != 200 || got.TopK != 40 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	ip := got.Infer()
	if ip.MaxTokens != 200 || ip.TopK != 40 || ip.RepeatPenalty != float32(1.18) {
		t.Fatalf("Infer mismatch: %+v", ip)
	}
}
