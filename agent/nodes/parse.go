package nodes

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// decisionWire is the JSON shape the model is instructed to emit: either
// {"reply": ...} or {"thought": ..., "tool": ..., "tool_input": {...}}.
type decisionWire struct {
	Reply     string         `json:"reply"`
	Thought   string         `json:"thought"`
	Tool      string         `json:"tool"`
	ToolInput map[string]any `json:"tool_input"`
}

// ParseDecision extracts a decision from raw model output. It tries, in
// order: the cleaned text as strict JSON, then the first balanced JSON
// object embedded in it. When neither yields a usable decision the raw text
// becomes a direct reply, so a chatty model never fails the turn.
func ParseDecision(raw string) contractx.Decision {
	cleaned := stripFences(raw)

	if d, ok := decodeDecision(cleaned); ok {
		return d
	}
	if fragment, ok := firstJSONObject(cleaned); ok {
		if d, ok := decodeDecision(fragment); ok {
			return d
		}
	}

	log.Warn().Str("raw", truncate(raw, 200)).Msg("model output is not decision JSON, using it as a direct reply")
	return contractx.Decision{Kind: contractx.DecisionDirectReply, Reply: strings.TrimSpace(raw)}
}

func decodeDecision(s string) (contractx.Decision, bool) {
	var wire decisionWire
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return contractx.Decision{}, false
	}

	if strings.TrimSpace(wire.Tool) != "" {
		return contractx.Decision{
			Kind:    contractx.DecisionToolCall,
			Thought: wire.Thought,
			Tool:    strings.TrimSpace(wire.Tool),
			Args:    wire.ToolInput,
		}, true
	}
	if strings.TrimSpace(wire.Reply) != "" {
		return contractx.Decision{Kind: contractx.DecisionDirectReply, Reply: wire.Reply}, true
	}
	return contractx.Decision{}, false
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// firstJSONObject returns the first balanced {...} fragment, tracking
// strings and escapes so braces inside values do not fool the scan.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
