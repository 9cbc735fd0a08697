package prompt

import (
	"strings"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// BuildDecision renders the decision prompt: tool catalog, recent history,
// and the current message. Roman Urdu/Hindi input gets a language hint
// prepended so the model stays on friendly, simple wording.
func BuildDecision(set PromptSet, catalog string, history []contractx.Turn, message string) string {
	rendered := strings.NewReplacer(
		"{{tools}}", strings.TrimSpace(catalog),
		"{{history}}", renderHistory(history),
		"{{message}}", message,
	).Replace(set.Decision)

	if IsRomanUrduHindi(message) {
		return romanUrduHindiPrefix + rendered
	}
	return rendered
}

// BuildSummarize renders the prompt that turns a raw tool result into a
// customer-facing reply.
func BuildSummarize(set PromptSet, message, toolName, resultJSON string) string {
	return strings.NewReplacer(
		"{{message}}", message,
		"{{tool}}", toolName,
		"{{result}}", resultJSON,
	).Replace(set.Summarize)
}

func renderHistory(history []contractx.Turn) string {
	if len(history) == 0 {
		return "(no previous messages)"
	}
	var b strings.Builder
	for _, turn := range history {
		switch turn.Role {
		case contractx.RoleAgent:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(turn.Content)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
