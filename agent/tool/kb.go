package tool

import (
	"context"

	"github.com/ovenly/pizza-agent/agent/knowledge"
)

const kbTopK = 3

// NewSearchKB builds the search_kb tool over the knowledge index. Retrieval
// misses return an empty result, never an error.
func NewSearchKB(index *knowledge.Index) Spec {
	return Spec{
		Name:        "search_kb",
		Description: "Search the knowledge base for customer support information about delivery, refunds, allergens, payments, etc. Returns the top 3 relevant passages.",
		Params: map[string]Param{
			"query": {Type: "string", Description: "Customer support question to look up", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			hits, err := index.Query(ctx, query, kbTopK)
			if err != nil {
				return nil, err
			}

			passages := make([]map[string]any, 0, len(hits))
			for _, hit := range hits {
				passages = append(passages, map[string]any{
					"title":    hit.Document.Title,
					"category": hit.Document.Category,
					"text":     hit.Document.Text,
					"score":    hit.Score,
				})
			}
			return map[string]any{"passages": passages, "count": len(passages)}, nil
		},
	}
}
