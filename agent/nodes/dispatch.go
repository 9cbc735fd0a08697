package nodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	promptx "github.com/ovenly/pizza-agent/agent/prompt"
)

// Dispatch acts on the decision. A direct reply passes through; a tool call
// is validated, executed, and its result turned into a customer-facing
// reply. Tool problems become conversational replies rather than turn
// failures so the dialogue can continue.
func Dispatch(ctx context.Context, in *GraphState, invoker contractx.Invoker, summarizer contractx.Completer, prompts promptx.PromptSet) (*GraphState, error) {
	if in.Decision.Kind == contractx.DecisionDirectReply {
		in.Reply = in.Decision.Reply
		in.Status = contractx.StatusSuccess
		return in, nil
	}

	args := in.Decision.Args
	if args == nil {
		args = map[string]any{}
	}
	// The model rarely knows the caller's identity; the session does.
	if _, ok := args["user_id"]; !ok {
		args["user_id"] = in.UserID
	}

	result, err := invoker.Invoke(ctx, in.Decision.Tool, args)
	in.ToolResult = result
	if err != nil {
		in.Reply = replyForToolError(in.Decision.Tool, err)
		in.Status = contractx.StatusSuccess
		// Unknown tools and rejected arguments never reached a handler,
		// so the turn records no tool usage.
		if toolWasRun(err) {
			in.ToolUsed = &in.Decision.Tool
		}
		log.Warn().Err(err).Str("tool", in.Decision.Tool).Str("user_id", in.UserID).Msg("tool call failed")
		return in, nil
	}

	in.Reply = summarizeResult(ctx, in, summarizer, prompts)
	in.Status = contractx.StatusSuccess
	in.ToolUsed = &in.Decision.Tool
	return in, nil
}

// summarizeResult asks the model to phrase the tool result; the
// deterministic formatter covers model failures and empty answers.
func summarizeResult(ctx context.Context, in *GraphState, summarizer contractx.Completer, prompts promptx.PromptSet) string {
	fallback := FormatToolResult(in.Decision.Tool, in.ToolResult.Result)
	if summarizer == nil {
		return fallback
	}

	resultJSON, err := json.Marshal(in.ToolResult.Result)
	if err != nil {
		return fallback
	}
	p := promptx.BuildSummarize(prompts, in.Message, in.Decision.Tool, string(resultJSON))
	reply, err := summarizer.Complete(ctx, p)
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Debug().Err(err).Str("tool", in.Decision.Tool).Msg("summarize fell back to template formatting")
		return fallback
	}
	return strings.TrimSpace(reply)
}

// toolWasRun reports whether the handler actually executed. Registry-level
// rejections happen before any handler is invoked.
func toolWasRun(err error) bool {
	return !errors.Is(err, contractx.ErrToolNotFound) &&
		!errors.Is(err, contractx.ErrToolValidation)
}

func replyForToolError(tool string, err error) string {
	switch {
	case errors.Is(err, contractx.ErrToolNotFound):
		return "I'm not sure how to do that yet. I can search the menu, recommend pizzas, answer questions, and manage orders."
	case errors.Is(err, contractx.ErrToolValidation), errors.Is(err, contractx.ErrValidation):
		return fmt.Sprintf("I need a bit more information to do that: %s. Could you clarify?", trimSentinel(err))
	case errors.Is(err, contractx.ErrOrderNotFound):
		return fmt.Sprintf("I couldn't find that order: %s. Please double-check the order ID.", trimSentinel(err))
	case errors.Is(err, contractx.ErrInvalidTransition):
		return fmt.Sprintf("That change isn't possible for this order: %s.", trimSentinel(err))
	default:
		return fmt.Sprintf("Sorry, I ran into a problem while running %s. Please try again in a moment.", tool)
	}
}

// trimSentinel drops the leading sentinel text so customers see only the
// descriptive part of the error.
func trimSentinel(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
