package llm

import "strings"

// BuildPrompt lays out a single chat turn:
//
//	<global>
//	User: <input>
//	Bot:
//	Avoid: <negative>
//
// The Avoid line is omitted when negative is empty.
func BuildPrompt(global, negative, input string) string {
	var b strings.Builder
	b.WriteString(global)
	b.WriteString("\nUser: ")
	b.WriteString(input)
	b.WriteString("\nBot:")
	if strings.TrimSpace(negative) != "" {
		b.WriteString("\nAvoid: ")
		b.WriteString(negative)
	}
	return b.String()
}
