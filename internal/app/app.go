// Package app wires the configured backends into a dispatcher and exposes
// the operations shared by the HTTP API and the terminal front-end.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"recipebot/internal/chatlog"
	"recipebot/internal/common/fsutil"
	"recipebot/internal/config"
	"recipebot/internal/dispatch"
	"recipebot/internal/hosted"
	"recipebot/internal/llm"
	"recipebot/internal/mealdb"
	"recipebot/internal/recipegen"
	"recipebot/internal/recipes"
	"recipebot/internal/registry"
	"recipebot/internal/vision"
	"recipebot/pkg/types"
)

// App owns every long-lived collaborator. Close releases them.
type App struct {
	cfg config.Config
	log zerolog.Logger

	Store      *recipes.Store
	Matcher    *recipes.Matcher
	Assistant  *llm.Assistant
	Dispatcher *dispatch.Dispatcher
	// Chatlog is nil when transcripts are disabled.
	Chatlog *chatlog.Store
	Models  []types.Model
}

// New builds an App from cfg. Defaults must already be applied.
func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log.With().Str("component", "app").Logger()}

	a.Store = recipes.NewStore(cfg.RecipesDir, log)
	a.Matcher = recipes.NewMatcher(a.Store, log)

	models, err := registry.LoadDir(cfg.ModelsDir)
	if err != nil {
		a.log.Debug().Err(err).Str("dir", cfg.ModelsDir).Msg("no local models")
	}
	a.Models = models

	a.Assistant = llm.NewAssistant(llm.AssistantConfig{
		Adapter:       a.llmAdapter(),
		Models:        models,
		Defaults:      cfg.LLM.Params,
		MaxQueueDepth: cfg.LLM.MaxQueueDepth,
		MaxWait:       time.Duration(cfg.LLM.MaxWaitSeconds) * time.Second,
		Logger:        log,
	})

	b := dispatch.Backends{
		Finder:  a.Matcher,
		Recipes: a.Store,
		MealDB: mealdb.New(mealdb.Options{
			BaseURL:       cfg.MealDB.BaseURL,
			Timeout:       time.Duration(cfg.MealDB.TimeoutSeconds) * time.Second,
			RatePerSecond: cfg.MealDB.RatePerSecond,
			Burst:         cfg.MealDB.Burst,
			Logger:        log,
		}),
		Hosted: hosted.New(hosted.Options{
			BaseURL: cfg.HuggingFace.BaseURL,
			Model:   cfg.HuggingFace.Model,
			Token:   cfg.HuggingFace.Token,
			Timeout: time.Duration(cfg.HuggingFace.TimeoutSeconds) * time.Second,
			Logger:  log,
		}),
		LLM: a.Assistant,
		MLLM: vision.NewMultimodal(vision.New(vision.Options{
			BaseURL:         cfg.Vision.BaseURL,
			ClassifierModel: cfg.Vision.ClassifierModel,
			CaptionModel:    cfg.Vision.CaptionModel,
			Token:           cfg.HuggingFace.Token,
			Logger:          log,
		}), a.Assistant),
	}
	if cfg.Custom.BaseURL != "" {
		b.Custom = recipegen.New(llm.NewServerAdapter(llm.ServerOptions{
			BaseURL: cfg.Custom.BaseURL,
			Logger:  log,
		}), cfg.Custom.Model, log)
	}
	a.Dispatcher = dispatch.New(b, log)

	if cfg.ChatDB != "" {
		path, err := fsutil.ExpandHome(cfg.ChatDB)
		if err != nil {
			return nil, err
		}
		a.Chatlog, err = chatlog.Open(path)
		if err != nil {
			a.Assistant.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) llmAdapter() llm.InferenceAdapter {
	c := a.cfg.LLM
	if c.Runtime == config.RuntimeServer {
		return llm.NewServerAdapter(llm.ServerOptions{
			BaseURL: c.ServerURL,
			APIKey:  c.APIKey,
			Chat:    c.ServerChat,
			Stream:  true,
			Logger:  a.log,
		})
	}
	if !llm.LlamaBuilt {
		a.log.Warn().Msg("binary built without -tags llama; llm modes will report the runtime as unavailable")
	}
	return llm.NewLlamaAdapter(c.CtxSize, c.Threads)
}

// Close releases loaded models and the transcript database.
func (a *App) Close() error {
	errs := []error{a.Assistant.Close()}
	if a.Chatlog != nil {
		errs = append(errs, a.Chatlog.Close())
	}
	return errors.Join(errs...)
}

// Reply runs one chat turn without recording it.
func (a *App) Reply(ctx context.Context, sel dispatch.Selection, text, imagePath string) string {
	opts := sel.Options()
	opts.ImagePath = imagePath
	return a.Dispatcher.Reply(ctx, sel.Mode, text, opts)
}
