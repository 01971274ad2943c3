package vision

import (
	"context"
	"strings"

	"recipebot/internal/collab"
	"recipebot/internal/llm"
)

// TextGenerator is the language model half of Multimodal.
type TextGenerator interface {
	GenerateWith(ctx context.Context, prompt string, p llm.Params) collab.Result
}

// Multimodal prefixes the user's text with what the image shows and hands
// the combined prompt to a language model.
type Multimodal struct {
	captioner collab.Captioner
	llm       TextGenerator
}

// NewMultimodal composes a captioner and a language model.
func NewMultimodal(c collab.Captioner, g TextGenerator) *Multimodal {
	return &Multimodal{captioner: c, llm: g}
}

// Generate answers text without an image.
func (m *Multimodal) Generate(ctx context.Context, text string) collab.Result {
	return m.GenerateImage(ctx, text, "", llm.Params{})
}

// GenerateImage answers text about the image at imagePath. The image is
// skipped when imagePath is empty or nothing usable is recognised.
func (m *Multimodal) GenerateImage(ctx context.Context, text, imagePath string, p llm.Params) collab.Result {
	if m.llm == nil {
		return collab.Failf(llm.FailurePrefix, llm.ErrDependencyUnavailable("no language model configured"))
	}
	prompt := text
	if strings.TrimSpace(imagePath) != "" && m.captioner != nil {
		if caption, ok := m.captioner.Caption(ctx, imagePath, text); ok {
			prompt = caption + ". " + text
		}
	}
	return m.llm.GenerateWith(ctx, prompt, p)
}
