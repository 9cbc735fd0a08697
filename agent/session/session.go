package session

import (
	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// Cap bounds the per-user buffer. It protects prompt size and memory, not
// correctness: the decision prompt only needs recent context.
const Cap = 25

// trim applies FIFO eviction so that at most Cap turns remain, keeping the
// most recent ones in original order.
func trim(turns []contractx.Turn) []contractx.Turn {
	if len(turns) <= Cap {
		return turns
	}
	return turns[len(turns)-Cap:]
}
