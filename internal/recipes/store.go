// Package recipes implements the static recipe collection: a directory of
// <dish_id>.txt files, the keyword matcher that resolves free text to a dish
// id, and the lookup that returns a recipe as text.
package recipes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"recipebot/internal/common/fsutil"
)

// Fixed replies returned by GetRecipe. Callers show them verbatim.
const (
	NoDishMessage      = "Sorry, I couldn't find the dish in your query."
	notAvailableFormat = "Sorry, the recipe for '%s' is not available."
)

const recipeExt = ".txt"

// ErrDishNotFound is returned by Lookup when no resource exists for an id.
var ErrDishNotFound = errors.New("dish not found")

// Dish is a recipe resource derived from its filename.
type Dish struct {
	ID       string
	Keywords []string
	Path     string
}

// Name is the human-readable form of the dish id.
func (d Dish) Name() string { return DisplayName(d.ID) }

// DisplayName replaces the id word separator with spaces.
func DisplayName(id string) string { return strings.ReplaceAll(id, "_", " ") }

// Keywords splits a dish id on its word separator, dropping empty parts.
func Keywords(id string) []string {
	parts := strings.Split(id, "_")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NotAvailable formats the reply for a dish id without a resource file.
func NotAvailable(id string) string { return fmt.Sprintf(notAvailableFormat, DisplayName(id)) }

// Store reads recipes from a directory. It holds no cache: every call
// rescans or rereads the directory.
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore returns a store rooted at dir. A leading '~' is expanded.
func NewStore(dir string, log zerolog.Logger) *Store {
	if abs, err := fsutil.ResolveDir(dir); err == nil {
		dir = abs
	}
	return &Store{dir: dir, log: log.With().Str("component", "recipes").Logger()}
}

// Dir returns the resolved recipe directory.
func (s *Store) Dir() string { return s.dir }

// Dishes lists every dish in the directory sorted by id.
func (s *Store) Dishes() ([]Dish, error) {
	names, err := fsutil.ListByExt(s.dir, recipeExt)
	if err != nil {
		return nil, err
	}
	dishes := make([]Dish, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, recipeExt) {
			continue
		}
		id := strings.TrimSuffix(name, recipeExt)
		kw := Keywords(id)
		if len(kw) == 0 {
			continue
		}
		dishes = append(dishes, Dish{ID: id, Keywords: kw, Path: filepath.Join(s.dir, name)})
	}
	return dishes, nil
}

// GetRecipe returns the recipe text for id. It never fails: an empty id or a
// missing resource produce the fixed not-found replies.
func (s *Store) GetRecipe(id string) string {
	if id == "" {
		return NoDishMessage
	}
	_, text, err := s.Lookup(id)
	if err != nil {
		if !errors.Is(err, ErrDishNotFound) {
			s.log.Warn().Err(err).Str("dish", id).Msg("read recipe")
		}
		return NotAvailable(id)
	}
	return text
}

// Lookup resolves id to its dish record and full text.
func (s *Store) Lookup(id string) (Dish, string, error) {
	if !validID(id) {
		return Dish{}, "", fmt.Errorf("%w: %q", ErrDishNotFound, id)
	}
	p := filepath.Join(s.dir, id+recipeExt)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Dish{}, "", fmt.Errorf("%w: %q", ErrDishNotFound, id)
		}
		return Dish{}, "", fmt.Errorf("read %s: %w", p, err)
	}
	return Dish{ID: id, Keywords: Keywords(id), Path: p}, string(b), nil
}

// validID rejects ids that would address a file outside the store.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
