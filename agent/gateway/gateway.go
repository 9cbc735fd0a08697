// Package gateway produces text completions through an ordered chain of
// model providers. Provider outage and rate limiting are routine with hosted
// inference; priority-ordered fallback keeps worst-case latency bounded by
// the sum of configured timeouts while preferring the cheapest provider on
// the common path.
package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// Provider is one inference backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Spec pairs a provider with its chain position and per-attempt timeout.
// Lower priority is tried first; ties keep registration order.
type Spec struct {
	Provider Provider
	Priority int
	Timeout  time.Duration
}

const defaultAttemptTimeout = 30 * time.Second

type Gateway struct {
	specs []Spec
}

var _ contractx.Completer = (*Gateway)(nil)

func New(specs ...Spec) (*Gateway, error) {
	chain := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		if spec.Provider == nil {
			continue
		}
		if spec.Timeout <= 0 {
			spec.Timeout = defaultAttemptTimeout
		}
		chain = append(chain, spec)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", contractx.ErrValidation)
	}

	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Priority < chain[j].Priority
	})

	return &Gateway{specs: chain}, nil
}

// Providers returns the chain names in attempt order.
func (g *Gateway) Providers() []string {
	names := make([]string, len(g.specs))
	for i, spec := range g.specs {
		names[i] = spec.Provider.Name()
	}
	return names
}

// Complete tries each provider once, in priority order, and returns the
// first success. Per-provider retries are an outer-loop concern, not this
// method's. All providers failing yields ErrProvidersExhausted.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	var failures []string

	for _, spec := range g.specs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
		text, err := spec.Provider.Complete(attemptCtx, prompt)
		cancel()

		if err == nil {
			return text, nil
		}

		log.Warn().
			Str("provider", spec.Provider.Name()).
			Err(err).
			Msg("model provider attempt failed, falling back")
		failures = append(failures, fmt.Sprintf("%s: %v", spec.Provider.Name(), err))
	}

	return "", fmt.Errorf("%w: %s", contractx.ErrProvidersExhausted, strings.Join(failures, "; "))
}
