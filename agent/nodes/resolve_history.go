package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// promptHistoryLimit caps how many stored turns reach the decision prompt.
const promptHistoryLimit = 10

// ResolveHistory fills in conversation context. History supplied with the
// request wins over the stored session; stateless transports rely on that.
func ResolveHistory(ctx context.Context, in *GraphState, store contractx.SessionStore) (*GraphState, error) {
	if len(in.History) > 0 {
		in.History = tail(in.History, promptHistoryLimit)
		return in, nil
	}
	if store == nil {
		return in, nil
	}

	turns, err := store.Get(ctx, in.UserID)
	if err != nil {
		// Retrieval problems degrade to an empty context rather than
		// failing the turn.
		log.Warn().Err(err).Str("user_id", in.UserID).Msg("session load failed, continuing without history")
		return in, nil
	}
	in.History = tail(turns, promptHistoryLimit)
	return in, nil
}

func tail(turns []contractx.Turn, n int) []contractx.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
