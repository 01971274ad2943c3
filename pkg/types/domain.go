package types

// Model represents a GGUF model file on disk.
type Model struct {
	// Stable identifier for the model, the file name.
	// example: orca-mini-3b-gguf2-q4_0.gguf
	ID string `json:"id" example:"orca-mini-3b-gguf2-q4_0.gguf"`
	// Human-friendly name.
	// example: orca-mini-3b-gguf2-q4_0.gguf
	Name string `json:"name" example:"orca-mini-3b-gguf2-q4_0.gguf"`
	// Absolute path to the model file on disk.
	// example: /home/user/.recipebot/models/orca-mini-3b-gguf2-q4_0.gguf
	Path string `json:"path" example:"/home/user/.recipebot/models/orca-mini-3b-gguf2-q4_0.gguf"`
	// Size of the file in bytes.
	// example: 1979946720
	SizeBytes int64 `json:"size_bytes,omitempty" example:"1979946720"`
}

// Recipe summarizes a dish in the local recipe collection.
type Recipe struct {
	// Dish identifier, the recipe file stem.
	// example: chicken_rice
	ID string `json:"id" example:"chicken_rice"`
	// Display name.
	// example: chicken rice
	Name string `json:"name" example:"chicken rice"`
	// Keywords matched against chat text.
	// example: ["chicken","rice"]
	Keywords []string `json:"keywords" example:"chicken,rice"`
}
