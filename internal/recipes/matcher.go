package recipes

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// DishSource supplies the candidate dishes for matching.
type DishSource interface {
	Dishes() ([]Dish, error)
}

// Matcher resolves free text to the dish sharing the most keywords with it.
type Matcher struct {
	src DishSource
	log zerolog.Logger
}

// NewMatcher returns a matcher over src.
func NewMatcher(src DishSource, log zerolog.Logger) *Matcher {
	return &Matcher{src: src, log: log}
}

// FindDish returns the id of the best matching dish, or false when no dish
// shares a keyword with text. Candidates are scored in id order and the first
// one reaching the highest score wins.
func (m *Matcher) FindDish(text string) (string, bool) {
	dishes, err := m.src.Dishes()
	if err != nil {
		m.log.Debug().Err(err).Msg("list dishes")
		return "", false
	}
	d, ok := BestMatch(Tokens(text), dishes)
	return d.ID, ok
}

// Tokens lowercases text, strips Unicode punctuation and returns the set of
// whitespace-separated words.
func Tokens(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	fields := strings.Fields(b.String())
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Score counts the keywords of d present in tokens.
func Score(tokens map[string]struct{}, d Dish) int {
	n := 0
	for _, kw := range d.Keywords {
		if _, ok := tokens[kw]; ok {
			n++
		}
	}
	return n
}

// BestMatch picks the highest scoring dish. Dishes are ordered by id first so
// ties resolve the same way on every platform.
func BestMatch(tokens map[string]struct{}, dishes []Dish) (Dish, bool) {
	sorted := make([]Dish, len(dishes))
	copy(sorted, dishes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var best Dish
	max := 0
	for _, d := range sorted {
		if s := Score(tokens, d); s > max {
			max = s
			best = d
		}
	}
	if max == 0 {
		return Dish{}, false
	}
	return best, true
}
