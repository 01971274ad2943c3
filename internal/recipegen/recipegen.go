// Package recipegen turns an ingredient list into a structured recipe using a
// fine-tuned sequence-to-sequence model served behind a completion endpoint.
package recipegen

import (
	"context"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"recipebot/internal/collab"
	"recipebot/internal/llm"
)

// DefaultModel is the model name sent to the completion endpoint.
const DefaultModel = "flax-community/t5-recipe-generation"

const (
	inputPrefix   = "items: "
	emptyMessage  = "Sorry, I couldn't generate a recipe with the provided ingredients."
	failurePrefix = "Error generating recipe"
)

var specialTokens = []string{"<pad>", "</s>", "<unk>"}

var tokenMap = strings.NewReplacer("<sep>", "--", "<section>", "\n")

// Generator is a collab.Generator producing formatted recipes.
type Generator struct {
	adapter llm.InferenceAdapter
	model   string
	params  llm.InferParams
	log     zerolog.Logger
}

// New returns a Generator that runs model through adapter.
func New(adapter llm.InferenceAdapter, model string, log zerolog.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		adapter: adapter,
		model:   model,
		params:  llm.InferParams{MaxTokens: 512, TopK: 60, TopP: 0.95, Temperature: 1},
		log:     log.With().Str("component", "recipegen").Logger(),
	}
}

// Generate treats ingredients as a comma-separated ingredient list.
func (g *Generator) Generate(ctx context.Context, ingredients string) collab.Result {
	if g.adapter == nil {
		return collab.Failf(failurePrefix, llm.ErrDependencyUnavailable("no recipe model configured"))
	}
	sess, err := g.adapter.Start(g.model)
	if err != nil {
		return collab.Failf(failurePrefix, err)
	}
	defer sess.Close()

	var b strings.Builder
	final, err := sess.Generate(ctx, inputPrefix+ingredients, g.params, func(tok string) error {
		b.WriteString(tok)
		return nil
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("generation failed")
		return collab.Failf(failurePrefix, err)
	}
	raw := final.Content
	if raw == "" {
		raw = b.String()
	}
	out := Format(Postprocess(raw))
	if out == "" {
		return collab.OK(emptyMessage)
	}
	return collab.OK(out)
}

// Postprocess drops special tokens and expands the separator tokens.
func Postprocess(text string) string {
	for _, t := range specialTokens {
		text = strings.ReplaceAll(text, t, "")
	}
	return tokenMap.Replace(text)
}

// Format renders "title:", "ingredients:" and "directions:" sections into
// the display layout. Lines matching no section are dropped.
func Format(text string) string {
	var out []string
	for _, section := range strings.Split(text, "\n") {
		section = strings.TrimSpace(section)
		lower := strings.ToLower(section)
		switch {
		case strings.HasPrefix(lower, "title:"):
			out = append(out, "[TITLE]: "+capitalize(strings.TrimSpace(section[len("title:"):])))
		case strings.HasPrefix(lower, "ingredients:"):
			out = appendList(out, "[INGREDIENTS]:", section[len("ingredients:"):])
		case strings.HasPrefix(lower, "directions:"):
			out = appendList(out, "[DIRECTIONS]:", section[len("directions:"):])
		}
	}
	return strings.Join(out, "\n")
}

// appendList numbers the "--" separated items of body under header. Numbers
// follow the item position, so empty items leave gaps.
func appendList(out []string, header, body string) []string {
	var items []string
	for i, info := range strings.Split(strings.TrimSpace(body), "--") {
		info = strings.TrimSpace(info)
		if info == "" {
			continue
		}
		items = append(items, "  - "+strconv.Itoa(i+1)+": "+capitalize(info))
	}
	if len(items) == 0 {
		return out
	}
	out = append(out, header)
	return append(out, items...)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}
