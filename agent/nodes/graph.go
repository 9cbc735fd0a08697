// Package nodes holds the orchestrator graph's node functions and the state
// threaded between them. Each node is a small pure-ish step so the pipeline
// stays testable outside the graph.
package nodes

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidUser    = errors.New("user id is empty")
)

type GraphInput struct {
	UserID  string
	Message string
	History []contractx.Turn
}

type GraphOutput struct {
	Reply    string
	ToolUsed *string
	Status   contractx.TurnStatus
}

type GraphState struct {
	UserID  string
	Message string
	Now     time.Time

	History  []contractx.Turn
	Decision contractx.Decision

	ToolResult contractx.ToolResult
	ToolUsed   *string

	Reply  string
	Status contractx.TurnStatus
}

// ValidateRequest normalizes the inbound triple and rejects blank fields.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrInvalidUser
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		UserID:  userID,
		Message: message,
		Now:     nowFn().UTC(),
		History: in.History,
	}, nil
}
