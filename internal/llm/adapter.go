package llm

import "context"

// InferenceAdapter abstracts the model runtime used by the Assistant.
// Concrete implementations (llama.cpp in-process, OpenAI-compatible servers)
// satisfy this interface.
type InferenceAdapter interface {
	// Start prepares a session for the given model. For in-process runtimes
	// model is a path on disk; for servers it is the model name.
	Start(model string) (InferSession, error)
}

// InferSession represents a loaded model that can serve many generations.
type InferSession interface {
	// Generate streams tokens for the given prompt. The onToken callback will be invoked
	// for each token. Implementations must return when the context is canceled.
	Generate(ctx context.Context, prompt string, params InferParams, onToken func(string) error) (FinalResult, error)
	// Close releases any resources associated with the session.
	Close() error
}

// InferParams captures generation parameters passed to the adapter.
type InferParams struct {
	// System is sent as a system message by chat-style runtimes and ignored
	// by plain completion runtimes.
	System        string
	Temperature   float32
	TopP          float32
	TopK          int
	MaxTokens     int
	Stop          []string
	Seed          int
	RepeatPenalty float32
}

// FinalResult summarizes the generation after streaming.
type FinalResult struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage contains token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
