package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/decision.txt
	decisionRaw string

	//go:embed template/summarize.txt
	summarizeRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Decision  string
	Summarize string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Decision:  strings.TrimSpace(decisionRaw),
		Summarize: strings.TrimSpace(summarizeRaw),
	}
}
