//go:build !llama

package llm

// LlamaBuilt indicates this binary was compiled with in-process llama support.
const LlamaBuilt = false

const llamaMissing = "llama support not built (missing 'llama' build tag)"

// llamaAdapter refuses to start sessions; build with -tags llama for the
// real runtime, or point the assistant at an OpenAI-compatible server.
type llamaAdapter struct{}

// NewLlamaAdapter returns an adapter that loads GGUF files in-process.
func NewLlamaAdapter(ctxSize, threads int) InferenceAdapter { return llamaAdapter{} }

func (llamaAdapter) Start(string) (InferSession, error) {
	return nil, ErrDependencyUnavailable(llamaMissing)
}
