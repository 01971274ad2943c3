// Package hosted sends chat turns to a hosted OpenAI-compatible inference
// API such as the Hugging Face router.
package hosted

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"recipebot/internal/collab"
	"recipebot/internal/llm"
)

// Defaults for the hosted endpoint.
const (
	DefaultBaseURL = "https://router.huggingface.co"
	DefaultModel   = "deepseek-ai/DeepSeek-V3-0324"
)

// SystemPrompt steers the hosted model toward one-paragraph recipes.
const SystemPrompt = "You are a helpful assistant. If the user is requesting a recipe, respond with the full recipe in a single paragraph without line breaks. For other questions, provide a concise answer."

const failurePrefix = "Error communicating with Hugging Face Inference"

// Options configures a Client.
type Options struct {
	BaseURL string
	Model   string
	Token   string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client is a collab.Generator backed by a hosted chat-completions API.
type Client struct {
	model   string
	adapter llm.InferenceAdapter
	log     zerolog.Logger
}

// New returns a Client. The token is sent as a bearer credential.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	log := opts.Logger.With().Str("component", "hosted").Logger()
	return &Client{
		model: opts.Model,
		adapter: llm.NewServerAdapter(llm.ServerOptions{
			BaseURL:        opts.BaseURL,
			APIKey:         opts.Token,
			Chat:           true,
			RequestTimeout: opts.Timeout,
			Logger:         log,
		}),
		log: log,
	}
}

// Generate sends prompt as the user message.
func (c *Client) Generate(ctx context.Context, prompt string) collab.Result {
	sess, err := c.adapter.Start(c.model)
	if err != nil {
		return collab.Failf(failurePrefix, err)
	}
	defer sess.Close()
	final, err := sess.Generate(ctx, prompt, llm.InferParams{
		System:      SystemPrompt,
		MaxTokens:   500,
		Temperature: 0.7,
	}, func(string) error { return nil })
	if err != nil {
		c.log.Warn().Err(err).Str("model", c.model).Msg("chat completion failed")
		return collab.Failf(failurePrefix, err)
	}
	return collab.OK(strings.TrimSpace(final.Content))
}
