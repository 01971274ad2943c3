package recipes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeRecipe(t *testing.T, dir, id, text string) string {
	t.Helper()
	p := filepath.Join(dir, id+".txt")
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", id, err)
	}
	return p
}

func newTestStore(t *testing.T, ids ...string) (*Store, string) {
	t.Helper()
	d := t.TempDir()
	for _, id := range ids {
		writeRecipe(t, d, id, "recipe of "+id)
	}
	return NewStore(d, zerolog.Nop()), d
}

func TestGetRecipeEmptyID(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.GetRecipe(""); got != NoDishMessage {
		t.Fatalf("got %q", got)
	}
}

func TestGetRecipeMissingUsesSpacedName(t *testing.T) {
	s, _ := newTestStore(t, "chicken_rice")
	got := s.GetRecipe("katong_laksa")
	if !strings.Contains(got, "katong laksa") {
		t.Fatalf("expected spaced name in %q", got)
	}
	if got != "Sorry, the recipe for 'katong laksa' is not available." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestGetRecipeVerbatim(t *testing.T) {
	s, d := newTestStore(t)
	text := "Chicken Rice\n\n1. Poach chicken.\r\n2. Cook rice in stock.\n\t— enjoy ✓"
	writeRecipe(t, d, "chicken_rice", text)
	if got := s.GetRecipe("chicken_rice"); got != text {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, text)
	}
}

func TestGetRecipeRejectsTraversal(t *testing.T) {
	s, d := newTestStore(t)
	outside := filepath.Join(filepath.Dir(d), "secret.txt")
	if err := os.WriteFile(outside, []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(outside) })
	for _, id := range []string{"../secret", "a/b", `a\b`, ".."} {
		if got := s.GetRecipe(id); got == "nope" {
			t.Fatalf("id %q escaped the store", id)
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, _, err := s.Lookup("ghost")
	if !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound, got %v", err)
	}
}

func TestDishesSortedWithKeywords(t *testing.T) {
	s, d := newTestStore(t, "satay", "chilli_crab", "bak_kut_teh")
	if err := os.WriteFile(filepath.Join(d, "README.md"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d, ".txt"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dishes, err := s.Dishes()
	if err != nil {
		t.Fatalf("dishes: %v", err)
	}
	if len(dishes) != 3 {
		t.Fatalf("expected 3 dishes, got %+v", dishes)
	}
	if dishes[0].ID != "bak_kut_teh" || dishes[1].ID != "chilli_crab" || dishes[2].ID != "satay" {
		t.Fatalf("unexpected order: %+v", dishes)
	}
	if kw := dishes[0].Keywords; len(kw) != 3 || kw[2] != "teh" {
		t.Fatalf("unexpected keywords %v", kw)
	}
	if dishes[1].Name() != "chilli crab" {
		t.Fatalf("name=%q", dishes[1].Name())
	}
}

func TestKeywordsDropsEmptyParts(t *testing.T) {
	kw := Keywords("_mee__siam_")
	if len(kw) != 2 || kw[0] != "mee" || kw[1] != "siam" {
		t.Fatalf("got %v", kw)
	}
}
