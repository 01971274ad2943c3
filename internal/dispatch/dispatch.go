// Package dispatch routes a chat turn to the backend named by the selected
// mode and always produces reply text.
package dispatch

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"recipebot/internal/collab"
	"recipebot/internal/llm"
)

// NoMatchMessage is the existing_recipe reply when no dish matches.
const NoMatchMessage = "Sorry, I couldn't find a matching recipe."

var repliesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "recipebot",
		Subsystem: "dispatch",
		Name:      "replies_total",
		Help:      "Total number of chat replies by mode and outcome",
	},
	[]string{"mode", "outcome"},
)

func init() {
	prometheus.MustRegister(repliesTotal)
}

// DishFinder resolves text to a dish id.
type DishFinder interface {
	FindDish(text string) (string, bool)
}

// RecipeSource returns the recipe text for a dish id.
type RecipeSource interface {
	GetRecipe(id string) string
}

// ParamGenerator generates with per-call settings.
type ParamGenerator interface {
	GenerateWith(ctx context.Context, prompt string, p llm.Params) collab.Result
}

// ImageGenerator answers text about an optional image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, text, imagePath string, p llm.Params) collab.Result
}

// Backends holds the collaborators per mode. Nil entries are reported as
// not configured.
type Backends struct {
	Finder  DishFinder
	Recipes RecipeSource
	MealDB  collab.Generator
	Hosted  collab.Generator
	Custom  collab.Generator
	LLM     ParamGenerator
	MLLM    ImageGenerator
}

// Options carry per-turn inputs besides the text.
type Options struct {
	Params    *llm.Params
	ImagePath string
}

func (o Options) params() llm.Params {
	if o.Params == nil {
		return llm.Params{}
	}
	return *o.Params
}

// Dispatcher is safe for concurrent use when its backends are.
type Dispatcher struct {
	b   Backends
	log zerolog.Logger
}

// New returns a dispatcher over b.
func New(b Backends, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{b: b, log: log.With().Str("component", "dispatch").Logger()}
}

// Reply produces the bot's answer to text in the given mode. Backend
// failures are rendered as their reason; Reply never fails.
func (d *Dispatcher) Reply(ctx context.Context, mode Mode, text string, opts Options) string {
	mode = ParseMode(string(mode))
	res := d.reply(ctx, mode, text, opts)
	outcome := "ok"
	if res.Failed() {
		outcome = "error"
	}
	label := string(mode)
	if !mode.Known() {
		label = "unknown"
	}
	repliesTotal.WithLabelValues(label, outcome).Inc()
	d.log.Debug().Str("mode", string(mode)).Str("outcome", outcome).Msg("reply")
	return res.String()
}

func (d *Dispatcher) reply(ctx context.Context, mode Mode, text string, opts Options) collab.Result {
	switch mode {
	case ExistingRecipe:
		if d.b.Finder == nil || d.b.Recipes == nil {
			return notConfigured(mode)
		}
		id, ok := d.b.Finder.FindDish(text)
		if !ok {
			return collab.OK(NoMatchMessage)
		}
		return collab.OK(d.b.Recipes.GetRecipe(id))
	case TheMealDB:
		return generate(ctx, mode, d.b.MealDB, text)
	case HuggingFace:
		return generate(ctx, mode, d.b.Hosted, text)
	case CustomModel:
		return generate(ctx, mode, d.b.Custom, text)
	case LLMInterface:
		if d.b.LLM == nil {
			return notConfigured(mode)
		}
		return d.b.LLM.GenerateWith(ctx, text, opts.params())
	case MLLMInterface:
		if d.b.MLLM == nil {
			return notConfigured(mode)
		}
		return d.b.MLLM.GenerateImage(ctx, text, opts.ImagePath, opts.params())
	}
	return collab.OK(fmt.Sprintf("[%s] %s", mode, text))
}

func generate(ctx context.Context, mode Mode, g collab.Generator, text string) collab.Result {
	if g == nil {
		return notConfigured(mode)
	}
	return g.Generate(ctx, text)
}

func notConfigured(mode Mode) collab.Result {
	return collab.Fail(fmt.Sprintf("backend %q is not configured", mode))
}
