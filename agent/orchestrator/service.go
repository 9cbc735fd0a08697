// Package orchestrator wires the decision loop: one inbound message becomes
// one model call, at most one tool call, and one reply.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	nodex "github.com/ovenly/pizza-agent/agent/nodes"
	promptx "github.com/ovenly/pizza-agent/agent/prompt"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidUser    = nodex.ErrInvalidUser
)

const unavailableReply = "I'm temporarily unavailable. Please try again in a moment."

// ToolCatalog is the slice of the tool registry the orchestrator needs:
// dispatching calls and describing the catalog for the prompt.
type ToolCatalog interface {
	contractx.Invoker
	Describe() string
}

type Orchestrator struct {
	gateway  contractx.Completer
	tools    ToolCatalog
	sessions contractx.SessionStore
	prompts  promptx.PromptSet

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	// userLocks serializes turns per user so concurrent webhooks cannot
	// interleave session writes.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex

	now func() time.Time
}

func New(gateway contractx.Completer, tools ToolCatalog, sessions contractx.SessionStore) (*Orchestrator, error) {
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if tools == nil {
		return nil, errors.New("tool catalog is required")
	}

	o := &Orchestrator{
		gateway:   gateway,
		tools:     tools,
		sessions:  sessions,
		prompts:   promptx.LoadPromptSet(),
		userLocks: make(map[string]*sync.Mutex),
		now:       time.Now,
	}

	graphRunner, err := o.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleTurn runs one conversational turn. Provider exhaustion degrades to
// an error-status reply; validation problems propagate to the transport.
func (o *Orchestrator) HandleTurn(ctx context.Context, req contractx.TurnRequest) (contractx.TurnReply, error) {
	unlock := o.lockUser(req.UserID)
	defer unlock()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		UserID:  req.UserID,
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		if errors.Is(err, contractx.ErrProvidersExhausted) {
			log.Error().Err(err).Str("user_id", req.UserID).Msg("all model providers exhausted")
			return contractx.TurnReply{Reply: unavailableReply, Status: contractx.StatusError}, nil
		}
		return contractx.TurnReply{}, err
	}

	return contractx.TurnReply{Reply: out.Reply, ToolUsed: out.ToolUsed, Status: out.Status}, nil
}

// ClearSession drops a user's stored conversation.
func (o *Orchestrator) ClearSession(ctx context.Context, userID string) error {
	if o.sessions == nil {
		return nil
	}
	return o.sessions.Clear(ctx, userID)
}

func (o *Orchestrator) lockUser(userID string) func() {
	o.mu.Lock()
	lock, ok := o.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		o.userLocks[userID] = lock
	}
	o.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
