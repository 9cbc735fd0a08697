package nodes

import (
	"testing"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

func TestParseDecisionToolCall(t *testing.T) {
	t.Parallel()

	raw := `{"thought": "user wants spicy pizzas", "tool": "search_menu", "tool_input": {"query": "spicy"}}`
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionToolCall {
		t.Fatalf("kind = %s, want tool_call", d.Kind)
	}
	if d.Tool != "search_menu" {
		t.Fatalf("tool = %q", d.Tool)
	}
	if d.Args["query"] != "spicy" {
		t.Fatalf("args = %v", d.Args)
	}
}

func TestParseDecisionDirectReply(t *testing.T) {
	t.Parallel()

	d := ParseDecision(`{"reply": "Hi there! How can I help you with pizza today?"}`)
	if d.Kind != contractx.DecisionDirectReply {
		t.Fatalf("kind = %s, want direct_reply", d.Kind)
	}
	if d.Reply == "" {
		t.Fatal("reply is empty")
	}
}

func TestParseDecisionStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"reply\": \"hello\"}\n```"
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionDirectReply || d.Reply != "hello" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestParseDecisionExtractsEmbeddedJSON(t *testing.T) {
	t.Parallel()

	raw := `Sure! Here is my decision: {"thought": "check status", "tool": "order_status", "tool_input": {"order_id": "ORD-20250601-a1b2"}} hope that helps.`
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionToolCall || d.Tool != "order_status" {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d.Args["order_id"] != "ORD-20250601-a1b2" {
		t.Fatalf("args = %v", d.Args)
	}
}

func TestParseDecisionBracesInsideStrings(t *testing.T) {
	t.Parallel()

	raw := `noise {"reply": "use the {order id} from your email"} trailing`
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionDirectReply {
		t.Fatalf("kind = %s, want direct_reply", d.Kind)
	}
	if d.Reply != "use the {order id} from your email" {
		t.Fatalf("reply = %q", d.Reply)
	}
}

func TestParseDecisionFallsBackToRawReply(t *testing.T) {
	t.Parallel()

	raw := "Of course! We have plenty of spicy pizzas to choose from."
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionDirectReply {
		t.Fatalf("kind = %s, want direct_reply", d.Kind)
	}
	if d.Reply != raw {
		t.Fatalf("reply = %q, want raw text", d.Reply)
	}
}

func TestParseDecisionEmptyObjectFallsBack(t *testing.T) {
	t.Parallel()

	d := ParseDecision(`{}`)
	if d.Kind != contractx.DecisionDirectReply {
		t.Fatalf("kind = %s, want direct_reply fallback", d.Kind)
	}
}

func TestParseDecisionToolWinsOverReply(t *testing.T) {
	t.Parallel()

	raw := `{"reply": "checking", "tool": "search_kb", "tool_input": {"query": "hours"}}`
	d := ParseDecision(raw)
	if d.Kind != contractx.DecisionToolCall || d.Tool != "search_kb" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}
