package contract

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one message in a conversation. Immutable once appended to a session.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type DecisionKind string

const (
	DecisionDirectReply DecisionKind = "direct_reply"
	DecisionToolCall    DecisionKind = "tool_call"
)

// Decision is the parsed output of one model call: either a direct reply or
// a single tool call.
type Decision struct {
	Kind    DecisionKind   `json:"kind"`
	Reply   string         `json:"reply,omitempty"`
	Thought string         `json:"thought,omitempty"`
	Tool    string         `json:"tool,omitempty"`
	Args    map[string]any `json:"tool_input,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type TurnStatus string

const (
	StatusSuccess TurnStatus = "success"
	StatusError   TurnStatus = "error"
)

// TurnRequest is the normalized inbound triple from any transport. History,
// when supplied by a stateless transport, takes precedence over the stored
// session.
type TurnRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

// TurnReply is the normalized outbound pair. ToolUsed is nil when the agent
// answered directly.
type TurnReply struct {
	Reply    string     `json:"reply"`
	ToolUsed *string    `json:"tool_used"`
	Status   TurnStatus `json:"status"`
}
