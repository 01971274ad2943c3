// Package eval scores a text generator on yes/no and two-choice reasoning
// benchmarks stored as JSON Lines.
package eval

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Answerer produces the raw model answer for a prompt.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// AnswerFunc adapts a function to Answerer.
type AnswerFunc func(ctx context.Context, prompt string) (string, error)

func (f AnswerFunc) Answer(ctx context.Context, prompt string) (string, error) { return f(ctx, prompt) }

// Failure records a wrong or errored answer.
type Failure struct {
	Index    int    `json:"index"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	Gold     string `json:"gold"`
	Err      string `json:"error,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	Dataset  string    `json:"dataset"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Accuracy float64   `json:"accuracy"`
	Failures []Failure `json:"failures,omitempty"`
}

// Config controls a run.
type Config struct {
	Seed       uint64
	SampleSize int
	// KeepFailures bounds how many failures are kept in the report.
	KeepFailures int
	Logger       zerolog.Logger
}

// Evaluator runs one dataset against one answerer.
type Evaluator struct {
	ds  Dataset
	ans Answerer
	cfg Config
}

// New returns an evaluator.
func New(ds Dataset, ans Answerer, cfg Config) *Evaluator {
	return &Evaluator{ds: ds, ans: ans, cfg: cfg}
}

// Sample returns sampleSize distinct indices of [0,n) chosen by a PRNG seeded
// with seed.
func Sample(n, sampleSize int, seed uint64) ([]int, error) {
	if sampleSize < 0 || sampleSize > n {
		return nil, fmt.Errorf("sample size %d larger than dataset (%d items)", sampleSize, n)
	}
	r := rand.New(rand.NewPCG(seed, seed))
	return r.Perm(n)[:sampleSize], nil
}

// Run evaluates a sample of items. Context cancellation stops early and the
// partial report is returned with the context error. Answerer errors count as
// wrong answers.
func (e *Evaluator) Run(ctx context.Context, items []Item) (Report, error) {
	rep := Report{Dataset: e.ds.Name}
	idx, err := Sample(len(items), e.cfg.SampleSize, e.cfg.Seed)
	if err != nil {
		return rep, err
	}
	for n, i := range idx {
		if err := ctx.Err(); err != nil {
			rep.finish()
			return rep, err
		}
		item := items[i]
		prompt := BuildPrompt(e.ds, item)
		gold := NormalizeGold(e.ds.Task, item[e.ds.Fields.Answer])
		resp, err := e.ans.Answer(ctx, prompt)
		rep.Total++
		if err == nil && NormalizeAnswer(e.ds.Task, resp) == gold {
			rep.Correct++
		} else if len(rep.Failures) < e.cfg.KeepFailures {
			f := Failure{Index: i, Prompt: prompt, Response: resp, Gold: gold}
			if err != nil {
				f.Err = err.Error()
			}
			rep.Failures = append(rep.Failures, f)
		}
		if (n+1)%50 == 0 {
			e.cfg.Logger.Info().Int("done", n+1).Int("of", len(idx)).Int("correct", rep.Correct).Msg("progress")
		}
	}
	rep.finish()
	return rep, nil
}

func (r *Report) finish() {
	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}
}

func field(item Item, key string) string {
	switch v := item[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// BuildPrompt renders the question for an item.
func BuildPrompt(ds Dataset, item Item) string {
	f := ds.Fields
	switch ds.Task {
	case TaskBoolQ:
		return fmt.Sprintf("Answer the following question strictly with 'yes' or 'no'.\n\nContext: %s\nQuestion: %s\nAnswer:",
			field(item, f.Context[0]), field(item, f.Question))
	case TaskMultiClass:
		return fmt.Sprintf("Goal: %s\nOption 0: %s\nOption 1: %s\nAnswer with 0 or 1 only:",
			field(item, f.Question), field(item, f.Context[0]), field(item, f.Context[1]))
	}
	return fmt.Sprint(map[string]any(item))
}

var digitRe = regexp.MustCompile(`\b\d\b`)

// NormalizeAnswer maps free model text to a comparable label: "yes", "no" or
// "unknown" for boolq, the first standalone digit (or "-1") for multi_class.
func NormalizeAnswer(task Task, text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	switch task {
	case TaskBoolQ:
		switch {
		case strings.Contains(text, "yes"):
			return "yes"
		case strings.Contains(text, "no"):
			return "no"
		}
		return "unknown"
	case TaskMultiClass:
		if m := digitRe.FindString(text); m != "" {
			return m
		}
		return "-1"
	}
	return text
}

// NormalizeGold renders the reference answer as a label.
func NormalizeGold(task Task, v any) string {
	switch task {
	case TaskBoolQ:
		if truthy(v) {
			return "yes"
		}
		return "no"
	case TaskMultiClass:
		switch n := v.(type) {
		case float64:
			return fmt.Sprint(int(n))
		case string:
			return strings.TrimSpace(n)
		}
	}
	return fmt.Sprint(v)
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true") || strings.EqualFold(b, "yes")
	case float64:
		return b != 0
	}
	return false
}
