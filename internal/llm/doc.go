// Package llm runs text generation against a language model runtime. It is
// structured into small files by concern:
//
//   - adapter.go: InferenceAdapter/InferSession contract and parameter types.
//   - params.go: user-facing generation settings and their defaults.
//   - prompt.go: prompt templating for the chat assistant.
//   - assistant.go: Assistant, the collab.Generator used by the dispatcher.
//   - admission.go: single in-flight generation with bounded waiting.
//   - errors.go: error types and helpers (IsTooBusy, IsDependencyUnavailable).
//   - server.go: OpenAI-compatible HTTP runtime (llama.cpp server, hosted APIs).
//   - metrics.go: Prometheus collectors for generations.
//
// Build tags and runtimes:
//
//   - In-process llama: uses go-llama.cpp. Enabled with `-tags=llama`.
//     Files: llama.go, llama_cgo.go (linker rpath hints).
//     A no-CGO stub is compiled when the tag is not set: llama_stub.go.
//
//   - HTTP server: always available, see NewServerAdapter.
package llm
