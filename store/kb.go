package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ovenly/pizza-agent/agent/knowledge"
)

type KBRepo struct {
	db *bun.DB
}

func NewKBRepo(db *bun.DB) *KBRepo {
	return &KBRepo{db: db}
}

// All returns every knowledge base document in id order, ready for ingestion.
func (r *KBRepo) All(ctx context.Context) ([]knowledge.Document, error) {
	var rows []KBDocumentRow
	if err := r.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	docs := make([]knowledge.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, knowledge.Document{
			ID:       row.ID,
			Title:    row.Title,
			Category: row.Category,
			Text:     row.Text,
		})
	}
	return docs, nil
}
