package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// PersistSession appends the user turn and the agent's reply to the stored
// session once the reply is final. A persistence failure is logged, not
// surfaced; the customer already has their answer.
func PersistSession(ctx context.Context, in *GraphState, store contractx.SessionStore) (*GraphState, error) {
	if store == nil {
		return in, nil
	}

	err := store.Append(ctx, in.UserID,
		contractx.Turn{Role: contractx.RoleUser, Content: in.Message, Timestamp: in.Now},
		contractx.Turn{Role: contractx.RoleAgent, Content: in.Reply, Timestamp: in.Now},
	)
	if err != nil {
		log.Error().Err(err).Str("user_id", in.UserID).Msg("session append failed")
	}
	return in, nil
}

// FinalizeReply shapes the graph output.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, ErrInvalidMessage
	}
	reply := in.Reply
	if reply == "" {
		reply = "I'm not sure how to respond to that. Could you rephrase?"
	}
	status := in.Status
	if status == "" {
		status = contractx.StatusSuccess
	}
	return GraphOutput{Reply: reply, ToolUsed: in.ToolUsed, Status: status}, nil
}
