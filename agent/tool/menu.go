package tool

import (
	"context"

	"github.com/ovenly/pizza-agent/store"
)

// MenuSearcher is the slice of the menu repository the tools need.
type MenuSearcher interface {
	Search(ctx context.Context, query string) ([]store.MenuItemRow, error)
	All(ctx context.Context) ([]store.MenuItemRow, error)
}

// NewSearchMenu builds the search_menu tool. A blank query lists the full
// menu.
func NewSearchMenu(menu MenuSearcher) Spec {
	return Spec{
		Name:        "search_menu",
		Description: "Search menu items by name, description, ingredients, category, or tags. Returns matching pizza items.",
		Params: map[string]Param{
			"query": {Type: "string", Description: "Search text, e.g. \"spicy\" or \"vegetarian\"", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			items, err := menu.Search(ctx, query)
			if err != nil {
				return nil, err
			}
			return map[string]any{"items": items, "count": len(items)}, nil
		},
	}
}
