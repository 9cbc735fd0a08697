package contract

import "context"

// Completer produces a text completion for a prompt. The gateway implements
// it with provider fallback; fakes implement it in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SessionStore is the bounded per-user conversation buffer.
type SessionStore interface {
	Append(ctx context.Context, userID string, turns ...Turn) error
	Get(ctx context.Context, userID string) ([]Turn, error)
	Clear(ctx context.Context, userID string) error
}

// Embedder turns text into a fixed-length vector. The same instance must
// serve both ingest and query so the embedding space is shared.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Invoker is the uniform invocation surface over registered tools.
type Invoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) (ToolResult, error)
}
