package store

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
)

type MenuRepo struct {
	db *bun.DB
}

func NewMenuRepo(db *bun.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

// Search matches the query against name, description, category, ingredients
// and tags, case-insensitively. A blank query returns the whole menu.
func (r *MenuRepo) Search(ctx context.Context, query string) ([]MenuItemRow, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.All(ctx)
	}

	pattern := "%" + query + "%"
	var items []MenuItemRow
	err := r.db.NewSelect().
		Model(&items).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("name ILIKE ?", pattern).
				WhereOr("description ILIKE ?", pattern).
				WhereOr("category ILIKE ?", pattern).
				WhereOr("array_to_string(ingredients, ' ') ILIKE ?", pattern).
				WhereOr("array_to_string(tags, ' ') ILIKE ?", pattern)
		}).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MenuRepo) All(ctx context.Context) ([]MenuItemRow, error) {
	var items []MenuItemRow
	if err := r.db.NewSelect().Model(&items).Order("name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return items, nil
}
