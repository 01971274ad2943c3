package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"recipebot/internal/collab"
	"recipebot/internal/llm"
	"recipebot/internal/recipes"
)

func recipeBackends(t *testing.T) (Backends, *recipes.Store) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"chicken_rice.txt": "Poach the chicken.\nCook rice in the stock.\n",
		"beef_stew.txt":    "Brown the beef.",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := recipes.NewStore(dir, zerolog.Nop())
	return Backends{Finder: recipes.NewMatcher(store, zerolog.Nop()), Recipes: store}, store
}

func TestExistingRecipeMatchesStoreLookup(t *testing.T) {
	b, store := recipeBackends(t)
	d := New(b, zerolog.Nop())
	got := d.Reply(context.Background(), ExistingRecipe, "how to make chicken rice", Options{})
	if want := store.GetRecipe("chicken_rice"); got != want {
		t.Fatalf("Reply = %q, want %q", got, want)
	}
}

func TestEmptyModeUsesExistingRecipe(t *testing.T) {
	b, store := recipeBackends(t)
	d := New(b, zerolog.Nop())
	if got := d.Reply(context.Background(), "  ", "Beef stew please", Options{}); got != store.GetRecipe("beef_stew") {
		t.Fatalf("Reply = %q", got)
	}
}

func TestExistingRecipeNoMatch(t *testing.T) {
	b, _ := recipeBackends(t)
	d := New(b, zerolog.Nop())
	if got := d.Reply(context.Background(), ExistingRecipe, "sushi", Options{}); got != NoMatchMessage {
		t.Fatalf("Reply = %q", got)
	}
}

func TestUnknownModeEchoes(t *testing.T) {
	d := New(Backends{}, zerolog.Nop())
	got := d.Reply(context.Background(), "speech_mode", "hello", Options{})
	if got != "[speech_mode] hello" {
		t.Fatalf("Reply = %q", got)
	}
}

func TestGeneratorModes(t *testing.T) {
	echo := func(tag string) collab.Generator {
		return collab.GeneratorFunc(func(_ context.Context, p string) collab.Result { return collab.OK(tag + ":" + p) })
	}
	d := New(Backends{MealDB: echo("mealdb"), Hosted: echo("hf"), Custom: echo("t5")}, zerolog.Nop())
	cases := map[Mode]string{
		TheMealDB:   "mealdb:x",
		HuggingFace: "hf:x",
		CustomModel: "t5:x",
	}
	for mode, want := range cases {
		if got := d.Reply(context.Background(), mode, "x", Options{}); got != want {
			t.Errorf("%s: Reply = %q, want %q", mode, got, want)
		}
	}
}

func TestFailureRenderedAsReason(t *testing.T) {
	fail := collab.GeneratorFunc(func(context.Context, string) collab.Result {
		return collab.Fail("Error: Received status code 500")
	})
	d := New(Backends{MealDB: fail}, zerolog.Nop())
	if got := d.Reply(context.Background(), TheMealDB, "x", Options{}); got != "Error: Received status code 500" {
		t.Fatalf("Reply = %q", got)
	}
}

func TestMissingBackend(t *testing.T) {
	d := New(Backends{}, zerolog.Nop())
	for _, mi := range Modes {
		got := d.Reply(context.Background(), mi.Mode, "x", Options{})
		if !strings.Contains(got, `backend "`+string(mi.Mode)+`" is not configured`) {
			t.Errorf("%s: Reply = %q", mi.Mode, got)
		}
	}
}

type paramRecorder struct {
	prompt string
	params llm.Params
	image  string
}

func (p *paramRecorder) GenerateWith(_ context.Context, prompt string, params llm.Params) collab.Result {
	p.prompt, p.params = prompt, params
	return collab.OK("llm")
}

func (p *paramRecorder) GenerateImage(_ context.Context, text, image string, params llm.Params) collab.Result {
	p.prompt, p.image, p.params = text, image, params
	return collab.OK("mllm")
}

func TestLLMModesReceiveOptions(t *testing.T) {
	rec := &paramRecorder{}
	d := New(Backends{LLM: rec, MLLM: rec}, zerolog.Nop())
	var sel Selection
	sel.Select(LLMInterface)
	sel.SetParams(llm.Params{Model: "orca-mini-3b-gguf2-q4_0.gguf", MaxTokens: 64})

	if got := d.Reply(context.Background(), sel.Mode, "eggs", sel.Options()); got != "llm" {
		t.Fatalf("Reply = %q", got)
	}
	if rec.params.Model != "orca-mini-3b-gguf2-q4_0.gguf" || rec.params.MaxTokens != 64 {
		t.Fatalf("params = %+v", rec.params)
	}

	opts := sel.Options()
	opts.ImagePath = "/tmp/laksa.jpg"
	if got := d.Reply(context.Background(), MLLMInterface, "what is this", opts); got != "mllm" {
		t.Fatalf("Reply = %q", got)
	}
	if rec.image != "/tmp/laksa.jpg" || rec.prompt != "what is this" {
		t.Fatalf("recorded %+v", rec)
	}
}

func TestSelectionClearsParamsForPlainModes(t *testing.T) {
	var sel Selection
	sel.Select(MLLMInterface)
	sel.SetParams(llm.DefaultParams())
	sel.Select(MLLMInterface)
	if sel.Params == nil {
		t.Fatal("params dropped for parametrised mode")
	}
	sel.Select(TheMealDB)
	if sel.Params != nil {
		t.Fatal("params kept for plain mode")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("") != ExistingRecipe || ParseMode(" themealdb ") != TheMealDB {
		t.Fatal("ParseMode mismatch")
	}
	if ParseMode("other").Known() {
		t.Fatal("unknown mode reported as known")
	}
	mi, ok := LLMInterface.Info()
	if !ok || !mi.NeedsParams || mi.Label != "LLM Interface" {
		t.Fatalf("Info = %+v, %v", mi, ok)
	}
}
