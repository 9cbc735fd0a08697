package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	promptx "github.com/ovenly/pizza-agent/agent/prompt"
)

// Decide runs one model call and parses the result into a decision: either
// a direct reply or exactly one tool call. Provider exhaustion propagates so
// the caller can degrade the whole turn.
func Decide(ctx context.Context, in *GraphState, completer contractx.Completer, prompts promptx.PromptSet, catalog string) (*GraphState, error) {
	p := promptx.BuildDecision(prompts, catalog, in.History, in.Message)

	raw, err := completer.Complete(ctx, p)
	if err != nil {
		return nil, err
	}

	in.Decision = ParseDecision(raw)
	log.Debug().
		Str("user_id", in.UserID).
		Str("kind", string(in.Decision.Kind)).
		Str("tool", in.Decision.Tool).
		Msg("decision parsed")
	return in, nil
}
