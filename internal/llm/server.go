package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServerOptions configures an adapter for an OpenAI-compatible HTTP server
// (llama.cpp server, text-generation-inference, Hugging Face router).
type ServerOptions struct {
	BaseURL string
	APIKey  string
	// Chat selects /v1/chat/completions instead of /v1/completions.
	Chat bool
	// Stream requests server-sent events. Non-streaming servers are handled
	// either way.
	Stream         bool
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	Logger         zerolog.Logger
}

type serverAdapter struct {
	opts       ServerOptions
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewServerAdapter constructs a server-backed adapter.
func NewServerAdapter(opts ServerOptions) InferenceAdapter {
	connect := opts.ConnectTimeout
	if connect <= 0 {
		connect = 5 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connect,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Deadlines come from the request context; see Generate.
	return &serverAdapter{
		opts:       opts,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Transport: tr},
		log:        opts.Logger.With().Str("adapter", "openai_server").Logger(),
	}
}

type serverSession struct {
	a     *serverAdapter
	model string
}

// Start never contacts the server; the model name travels with each request.
func (a *serverAdapter) Start(model string) (InferSession, error) {
	if a.baseURL == "" {
		return nil, ErrDependencyUnavailable("no inference server URL configured")
	}
	return &serverSession{a: a, model: strings.TrimSpace(model)}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model         string        `json:"model,omitempty"`
	Prompt        string        `json:"prompt,omitempty"`
	Messages      []chatMessage `json:"messages,omitempty"`
	MaxTokens     int           `json:"max_tokens,omitempty"`
	Temperature   float32       `json:"temperature,omitempty"`
	TopP          float32       `json:"top_p,omitempty"`
	TopK          int           `json:"top_k,omitempty"`
	Stop          []string      `json:"stop,omitempty"`
	Seed          int           `json:"seed,omitempty"`
	Stream        bool          `json:"stream"`
	RepeatPenalty float32       `json:"repeat_penalty,omitempty"`
}

type completionChoice struct {
	Text    string `json:"text"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

func (c completionChoice) content() string {
	switch {
	case c.Delta.Content != "":
		return c.Delta.Content
	case c.Message.Content != "":
		return c.Message.Content
	}
	return c.Text
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

func (s *serverSession) request(prompt string, params InferParams) completionRequest {
	req := completionRequest{
		Model:         s.model,
		MaxTokens:     params.MaxTokens,
		Temperature:   params.Temperature,
		TopP:          params.TopP,
		TopK:          params.TopK,
		Stop:          params.Stop,
		Seed:          params.Seed,
		Stream:        s.a.opts.Stream,
		RepeatPenalty: params.RepeatPenalty,
	}
	if s.a.opts.Chat {
		if params.System != "" {
			req.Messages = append(req.Messages, chatMessage{Role: "system", Content: params.System})
		}
		req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt})
	} else {
		req.Prompt = prompt
		if params.System != "" {
			req.Prompt = params.System + "\n" + prompt
		}
	}
	return req
}

func (s *serverSession) Generate(ctx context.Context, prompt string, params InferParams, onToken func(string) error) (FinalResult, error) {
	if s.a.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.a.opts.RequestTimeout)
		defer cancel()
	}
	path := "/v1/completions"
	if s.a.opts.Chat {
		path = "/v1/chat/completions"
	}
	body, err := json.Marshal(s.request(prompt, params))
	if err != nil {
		return FinalResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return FinalResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.a.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.a.opts.APIKey)
	}
	resp, err := s.a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return FinalResult{}, ctx.Err()
		}
		return FinalResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return FinalResult{}, fmt.Errorf("inference server http error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return s.readStream(ctx, resp.Body, onToken)
	}
	return readWhole(resp.Body, onToken)
}

// readWhole handles a single JSON completion body.
func readWhole(r io.Reader, onToken func(string) error) (FinalResult, error) {
	var msg completionResponse
	if err := json.NewDecoder(io.LimitReader(r, 8<<20)).Decode(&msg); err != nil {
		return FinalResult{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(msg.Choices) == 0 {
		return FinalResult{}, errors.New("inference server returned no choices")
	}
	final := FinalResult{
		Content:      msg.Choices[0].content(),
		FinishReason: msg.Choices[0].FinishReason,
	}
	if msg.Usage != nil {
		final.Usage = *msg.Usage
	}
	if final.Content != "" {
		if err := onToken(final.Content); err != nil {
			return final, err
		}
	}
	return final, nil
}

// readStream parses "data:" lines until [DONE] or EOF.
func (s *serverSession) readStream(ctx context.Context, body io.Reader, onToken func(string) error) (FinalResult, error) {
	var (
		final FinalResult
		b     strings.Builder
	)
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(strings.ToLower(line), "data:") {
			continue
		}
		data := strings.TrimSpace(line[len("data:"):])
		if data == "[DONE]" {
			break
		}
		var msg completionResponse
		if err := json.Unmarshal([]byte(data), &msg); err != nil || len(msg.Choices) == 0 {
			s.a.log.Debug().Str("line", line).Msg("unknown stream line")
			continue
		}
		if frag := msg.Choices[0].content(); frag != "" {
			b.WriteString(frag)
			if err := onToken(frag); err != nil {
				return final, err
			}
		}
		if fr := msg.Choices[0].FinishReason; fr != "" {
			final.FinishReason = fr
		}
		if msg.Usage != nil {
			final.Usage = *msg.Usage
		}
	}
	if err := sc.Err(); err != nil {
		if ctx.Err() != nil {
			return final, ctx.Err()
		}
		return final, err
	}
	final.Content = b.String()
	return final, nil
}

func (s *serverSession) Close() error { return nil }
