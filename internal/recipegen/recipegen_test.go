package recipegen

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"recipebot/internal/llm"
)

type stubAdapter struct {
	out      string
	err      error
	startErr error
	prompt   string
	model    string
}

func (s *stubAdapter) Start(model string) (llm.InferSession, error) {
	s.model = model
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s, nil
}

func (s *stubAdapter) Generate(_ context.Context, prompt string, _ llm.InferParams, onToken func(string) error) (llm.FinalResult, error) {
	s.prompt = prompt
	if s.err != nil {
		return llm.FinalResult{}, s.err
	}
	return llm.FinalResult{Content: s.out}, nil
}

func (s *stubAdapter) Close() error { return nil }

func TestPostprocess(t *testing.T) {
	in := "<pad> title: mac and cheese <section> ingredients: 2 cups macaroni <sep> 1 cup MILK</s>"
	want := " title: mac and cheese \n ingredients: 2 cups macaroni -- 1 cup MILK"
	if got := Postprocess(in); got != want {
		t.Fatalf("Postprocess = %q, want %q", got, want)
	}
}

func TestFormat(t *testing.T) {
	in := "title: mac AND cheese\ningredients: 2 cups macaroni -- -- 1 cup MILK\nnoise line\ndirections: boil pasta. -- stir in milk."
	want := "[TITLE]: Mac and cheese\n" +
		"[INGREDIENTS]:\n  - 1: 2 cups macaroni\n  - 3: 1 cup milk\n" +
		"[DIRECTIONS]:\n  - 1: Boil pasta.\n  - 2: Stir in milk."
	if got := Format(in); got != want {
		t.Fatalf("Format =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatEmptySections(t *testing.T) {
	if got := Format("ingredients:  \ndirections: --"); got != "" {
		t.Fatalf("Format = %q, want empty", got)
	}
}

func TestGenerate(t *testing.T) {
	sa := &stubAdapter{out: "<pad> title: corn bake <section> ingredients: corn <sep> butter <section> directions: bake.</s>"}
	g := New(sa, "", zerolog.Nop())
	res := g.Generate(context.Background(), "corn, butter")
	want := "[TITLE]: Corn bake\n[INGREDIENTS]:\n  - 1: Corn\n  - 2: Butter\n[DIRECTIONS]:\n  - 1: Bake."
	if res.Failed() || res.Text != want {
		t.Fatalf("result = %+v", res)
	}
	if sa.prompt != "items: corn, butter" || sa.model != DefaultModel {
		t.Fatalf("prompt=%q model=%q", sa.prompt, sa.model)
	}
}

func TestGenerateEmptyOutput(t *testing.T) {
	res := New(&stubAdapter{out: "<pad></s>"}, "", zerolog.Nop()).Generate(context.Background(), "air")
	if res.Text != "Sorry, I couldn't generate a recipe with the provided ingredients." {
		t.Fatalf("result = %+v", res)
	}
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name string
		g    *Generator
		want string
	}{
		{"generate", New(&stubAdapter{err: errors.New("oom")}, "", zerolog.Nop()), "Error generating recipe: oom"},
		{"start", New(&stubAdapter{startErr: errors.New("no model")}, "", zerolog.Nop()), "Error generating recipe: no model"},
		{"nil adapter", New(nil, "", zerolog.Nop()), "Error generating recipe: no recipe model configured"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.g.Generate(context.Background(), "x").String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
