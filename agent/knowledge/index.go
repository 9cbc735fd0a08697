// Package knowledge provides the retrieval side of the agent: an embedding
// provider and an in-process nearest-neighbor index over ingested documents.
package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// Document is one knowledge-base entry. Immutable after ingestion.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Text     string `json:"text"`
}

// Scored pairs a document with its similarity to the query.
type Scored struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// DefaultMinScore excludes weakly related documents even when k slots remain
// unfilled: relevance over completeness.
const DefaultMinScore = 0.25

type entry struct {
	doc    Document
	vector []float32
	seq    int
}

// Index answers top-k similarity queries over ingested documents. Safe for
// concurrent use.
type Index struct {
	embedder contractx.Embedder
	minScore float64

	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq int
}

type IndexOption func(*Index)

func WithMinScore(min float64) IndexOption {
	return func(ix *Index) {
		ix.minScore = min
	}
}

func NewIndex(embedder contractx.Embedder, opts ...IndexOption) *Index {
	ix := &Index{
		embedder: embedder,
		minScore: DefaultMinScore,
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}
	return ix
}

// Len reports the number of ingested documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Ingest embeds and stores the given documents. Idempotent by document ID:
// re-ingesting an ID replaces its vector and text but keeps its original
// position for tie-breaking.
func (ix *Index) Ingest(ctx context.Context, docs ...Document) error {
	for _, doc := range docs {
		if strings.TrimSpace(doc.ID) == "" {
			return fmt.Errorf("%w: document id is empty", contractx.ErrValidation)
		}
		vec, err := ix.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return fmt.Errorf("ingest document %s: %w", doc.ID, err)
		}

		ix.mu.Lock()
		if existing, ok := ix.entries[doc.ID]; ok {
			existing.doc = doc
			existing.vector = vec
		} else {
			ix.entries[doc.ID] = &entry{doc: doc, vector: vec, seq: ix.nextSeq}
			ix.nextSeq++
		}
		ix.mu.Unlock()
	}

	log.Debug().Int("count", len(docs)).Msg("ingested knowledge documents")
	return nil
}

// Query returns up to k documents ranked by descending cosine similarity.
// An empty index fails softly with an empty result, never an error. Ties
// break by ingestion order.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Scored, error) {
	if k <= 0 {
		return nil, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if ix.Len() == 0 {
		return nil, nil
	}

	queryVec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	ix.mu.RLock()
	type candidate struct {
		Scored
		seq int
	}
	candidates := make([]candidate, 0, len(ix.entries))
	for _, e := range ix.entries {
		score := cosineSimilarity(queryVec, e.vector)
		if score < ix.minScore {
			continue
		}
		candidates = append(candidates, candidate{
			Scored: Scored{Document: e.doc, Score: score},
			seq:    e.seq,
		})
	}
	ix.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].seq < candidates[j].seq
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = c.Scored
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
