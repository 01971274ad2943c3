package types

// ModeInfo describes one chat backend.
type ModeInfo struct {
	// Mode token.
	// example: themealdb
	Mode string `json:"mode" example:"themealdb"`
	// Display label.
	// example: TheMealDB
	Label string `json:"label" example:"TheMealDB"`
	// Whether generation settings apply to this mode.
	// example: false
	NeedsParams bool `json:"needs_params" example:"false"`
}

// ModesResponse is returned by GET /modes.
type ModesResponse struct {
	Modes []ModeInfo `json:"modes"`
}

// GenerationParams are optional per-turn settings for the llm modes. Zero
// fields fall back to server defaults.
type GenerationParams struct {
	// example: orca-mini-3b-gguf2-q4_0.gguf
	Model string `json:"model,omitempty" example:"orca-mini-3b-gguf2-q4_0.gguf"`
	// example: 100
	MaxTurns int `json:"max_turns,omitempty" example:"100"`
	// example: 0.7
	Temperature float64 `json:"temp,omitempty" example:"0.7"`
	// example: 40
	TopK int `json:"top_k,omitempty" example:"40"`
	// example: 0.9
	TopP float64 `json:"top_p,omitempty" example:"0.9"`
	// example: 200
	MaxTokens int `json:"max_tokens,omitempty" example:"200"`
	// example: 1.18
	RepeatPenalty float64 `json:"repeat_penalty,omitempty" example:"1.18"`
	// example: You are a helpful cooking assistant, return only recipe in 1 paragraph.
	GlobalPrompt string `json:"global_prompt,omitempty"`
	// example: Too long
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	// Mode token; empty selects existing_recipe.
	// example: existing_recipe
	Mode string `json:"mode" example:"existing_recipe"`
	// User text.
	// example: how to make chicken rice
	Text string `json:"text" example:"how to make chicken rice"`
	// Transcript session to append to. A new one is created when empty and
	// the transcript store is enabled.
	// example: 3f1d3c1e-6a0b-4a57-9f55-2b8f0c7d9a10
	SessionID string `json:"session_id,omitempty" example:"3f1d3c1e-6a0b-4a57-9f55-2b8f0c7d9a10"`
	// Generation settings for llm_interface and mllm_interface.
	Params *GenerationParams `json:"params,omitempty"`
	// Server-local image path for mllm_interface.
	// example: /data/images/laksa.jpg
	ImagePath string `json:"image_path,omitempty" example:"/data/images/laksa.jpg"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	// example: existing_recipe
	Mode string `json:"mode" example:"existing_recipe"`
	// Reply text. Backend failures are reported here as text.
	// example: Poach the chicken...
	Reply string `json:"reply" example:"Poach the chicken..."`
	// example: 3f1d3c1e-6a0b-4a57-9f55-2b8f0c7d9a10
	SessionID string `json:"session_id,omitempty" example:"3f1d3c1e-6a0b-4a57-9f55-2b8f0c7d9a10"`
}

// RecipesResponse is returned by GET /recipes.
type RecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// RecipeResponse is returned by GET /recipes/{id}.
type RecipeResponse struct {
	// example: chicken_rice
	ID string `json:"id" example:"chicken_rice"`
	// example: chicken rice
	Name string `json:"name" example:"chicken rice"`
	// Recipe text, verbatim.
	Text string `json:"text"`
}

// MatchResponse is returned by GET /match.
type MatchResponse struct {
	// example: how to make chicken rice
	Query string `json:"query" example:"how to make chicken rice"`
	// example: chicken_rice
	DishID string `json:"dish_id,omitempty" example:"chicken_rice"`
	// example: true
	Found bool `json:"found" example:"true"`
}

// Turn is one transcript entry.
type Turn struct {
	// user or bot.
	// example: user
	Role string `json:"role" example:"user"`
	// example: how to make chicken rice
	Text string `json:"text" example:"how to make chicken rice"`
	// Unix seconds.
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}

// TranscriptResponse is returned by GET /sessions/{id}.
type TranscriptResponse struct {
	// example: 3f1d3c1e-6a0b-4a57-9f55-2b8f0c7d9a10
	SessionID string `json:"session_id"`
	// example: existing_recipe
	Mode  string `json:"mode"`
	Turns []Turn `json:"turns"`
}
