// Package collab defines the narrow text-in/text-out contracts between the
// dispatcher and the backends that actually produce replies.
package collab

import (
	"context"
	"fmt"
)

// Result is the outcome of a collaborator call: either reply text or a
// human-readable failure reason. The zero value is an empty success.
type Result struct {
	Text    string
	Failure string
}

// OK wraps reply text.
func OK(text string) Result { return Result{Text: text} }

// Fail builds a failed result from a reason.
func Fail(reason string) Result { return Result{Failure: reason} }

// Failf builds a failed result with a prefix and the error text, e.g.
// "Error communicating with TheMealDB: <err>".
func Failf(prefix string, err error) Result {
	return Result{Failure: fmt.Sprintf("%s: %v", prefix, err)}
}

// Failed reports whether the call failed.
func (r Result) Failed() bool { return r.Failure != "" }

// String renders the result for the user: the reply text, or the failure
// reason when the call failed.
func (r Result) String() string {
	if r.Failed() {
		return r.Failure
	}
	return r.Text
}

// Generator turns a prompt into reply text. Implementations never panic and
// report internal errors through Result.
type Generator interface {
	Generate(ctx context.Context, prompt string) Result
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) Result

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) Result { return f(ctx, prompt) }

// Captioner describes an image in a few words. ok is false when nothing
// usable could be produced.
type Captioner interface {
	Caption(ctx context.Context, imagePath, prompt string) (caption string, ok bool)
}
