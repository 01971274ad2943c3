package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"recipebot/internal/collab"
	"recipebot/internal/registry"
	"recipebot/pkg/types"
)

// Defaults applied when corresponding AssistantConfig fields are unset.
const (
	defaultMaxQueueDepth = 8
	defaultMaxWait       = 2 * time.Minute
)

// FailurePrefix starts every failed assistant reply.
const FailurePrefix = "Error with GPT4All model"

// AssistantConfig encapsulates all tunables for Assistant construction.
type AssistantConfig struct {
	Adapter InferenceAdapter
	// Models maps model file names to on-disk paths. Names not listed are
	// handed to the adapter unchanged.
	Models        []types.Model
	Defaults      Params
	MaxQueueDepth int
	MaxWait       time.Duration
	Logger        zerolog.Logger
}

// Assistant is the multi-turn chat front of a model runtime. It owns the
// loaded sessions; Close releases them.
type Assistant struct {
	adapter  InferenceAdapter
	models   []types.Model
	defaults Params
	gate     *gate
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[string]InferSession
}

// NewAssistant constructs an Assistant from cfg.
func NewAssistant(cfg AssistantConfig) *Assistant {
	depth := cfg.MaxQueueDepth
	if depth <= 0 {
		depth = defaultMaxQueueDepth
	}
	wait := cfg.MaxWait
	if wait <= 0 {
		wait = defaultMaxWait
	}
	return &Assistant{
		adapter:  cfg.Adapter,
		models:   append([]types.Model(nil), cfg.Models...),
		defaults: cfg.Defaults.WithDefaults(DefaultParams()),
		gate:     newGate(depth, wait),
		log:      cfg.Logger.With().Str("component", "assistant").Logger(),
		sessions: make(map[string]InferSession),
	}
}

// Defaults returns the settings used for fields a caller leaves unset.
func (a *Assistant) Defaults() Params { return a.defaults }

// Generate answers prompt with the default settings.
func (a *Assistant) Generate(ctx context.Context, prompt string) collab.Result {
	return a.GenerateWith(ctx, prompt, Params{})
}

// GenerateWith answers prompt with p, falling back to the assistant defaults
// for unset fields. Errors are reported as a failed result.
func (a *Assistant) GenerateWith(ctx context.Context, prompt string, p Params) collab.Result {
	text, err := a.Complete(ctx, prompt, p)
	if err != nil {
		return collab.Failf(FailurePrefix, err)
	}
	return collab.OK(text)
}

// Complete runs one templated generation and returns the trimmed reply.
func (a *Assistant) Complete(ctx context.Context, input string, p Params) (string, error) {
	p = p.WithDefaults(a.defaults)
	start := time.Now()
	text, err := a.complete(ctx, BuildPrompt(p.GlobalPrompt, p.NegativePrompt, input), p)
	generationDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		generationsTotal.WithLabelValues("ok").Inc()
	case IsTooBusy(err):
		generationsTotal.WithLabelValues("busy").Inc()
	default:
		generationsTotal.WithLabelValues("error").Inc()
	}
	ev := a.log.Debug()
	if err != nil {
		ev = a.log.Warn().Err(err)
	}
	ev.Str("model", p.Model).Dur("dur", time.Since(start)).Msg("generate")
	return text, err
}

// CompleteBare wraps input in a chat turn with no global or negative prompt
// and runs it. The evaluation harness scores the replies.
func (a *Assistant) CompleteBare(ctx context.Context, input string, p Params) (string, error) {
	return a.CompleteRaw(ctx, BuildPrompt("", "", input), p)
}

// CompleteRaw runs prompt through the model without templating.
func (a *Assistant) CompleteRaw(ctx context.Context, prompt string, p Params) (string, error) {
	return a.complete(ctx, prompt, p.WithDefaults(a.defaults))
}

func (a *Assistant) complete(ctx context.Context, prompt string, p Params) (string, error) {
	if a.adapter == nil {
		return "", ErrDependencyUnavailable("no model runtime configured")
	}
	release, err := a.gate.begin(ctx, p.Model)
	if err != nil {
		return "", err
	}
	defer release()

	sess, err := a.session(p.Model)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	final, err := sess.Generate(ctx, prompt, p.Infer(), func(tok string) error {
		b.WriteString(tok)
		return nil
	})
	if err != nil {
		return "", err
	}
	content := final.Content
	if content == "" {
		content = b.String()
	}
	return strings.TrimSpace(content), nil
}

// session returns the loaded session for model, starting it on first use.
// Callers hold the generation gate, so at most one load runs at a time.
func (a *Assistant) session(model string) (InferSession, error) {
	target := a.resolve(model)
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.sessions[target]; ok {
		return s, nil
	}
	a.log.Info().Str("model", model).Str("target", target).Msg("loading model")
	s, err := a.adapter.Start(target)
	if err != nil {
		return nil, err
	}
	sessionLoadsTotal.Inc()
	a.sessions[target] = s
	return s, nil
}

// resolve maps a model name to its registry path when known.
func (a *Assistant) resolve(model string) string {
	if m, ok := registry.Find(a.models, model); ok && m.Path != "" {
		return m.Path
	}
	return model
}

// Busy reports queued and running generations.
func (a *Assistant) Busy() (queued, running int) { return a.gate.inflight() }

// Close releases every loaded session.
func (a *Assistant) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for k, s := range a.sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(a.sessions, k)
	}
	return errors.Join(errs...)
}
