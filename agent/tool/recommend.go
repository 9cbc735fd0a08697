package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ovenly/pizza-agent/store"
)

const recommendTopK = 3

// NewRecommendPizza builds the recommend_pizza tool: deterministic scoring
// of menu items against the stated preferences. Category matches weigh
// heaviest, then tag matches, then keyword hits in name and description.
func NewRecommendPizza(menu MenuSearcher) Spec {
	return Spec{
		Name:        "recommend_pizza",
		Description: "Get pizza recommendations based on user preferences (spicy, cheesy, veg, non-veg, etc.).",
		Params: map[string]Param{
			"preferences": {Type: "string", Description: "What the customer is in the mood for", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			prefs, _ := args["preferences"].(string)
			items, err := menu.All(ctx)
			if err != nil {
				return nil, err
			}
			recs := rankByPreference(prefs, items)
			return map[string]any{"recommendations": recs, "count": len(recs)}, nil
		},
	}
}

type recommendation struct {
	Item   store.MenuItemRow `json:"item"`
	Reason string            `json:"reason"`
}

func rankByPreference(preferences string, items []store.MenuItemRow) []recommendation {
	prefLower := strings.ToLower(preferences)

	type scored struct {
		score int
		seq   int
		item  store.MenuItemRow
	}
	ranked := make([]scored, 0, len(items))
	for i, item := range items {
		score := 0

		// "non-veg" contains "veg", so check the more specific token first.
		switch {
		case strings.Contains(prefLower, "non-veg") || strings.Contains(prefLower, "meat"):
			if item.Category == "non-veg" {
				score += 3
			}
		case strings.Contains(prefLower, "veg"):
			if item.Category == "veg" {
				score += 3
			}
		}

		popular := false
		for _, tag := range item.Tags {
			if strings.Contains(prefLower, strings.ToLower(tag)) {
				score += 2
			}
			if tag == "popular" {
				popular = true
			}
		}

		itemText := strings.ToLower(item.Name + " " + item.Description + " " + strings.Join(item.Ingredients, " "))
		for _, keyword := range []string{"spicy", "cheese", "bbq", "chicken", "mushroom", "classic", "hot", "creamy"} {
			if strings.Contains(prefLower, keyword) && strings.Contains(itemText, keyword) {
				score++
			}
		}

		// Popularity only breaks ties between items that already matched.
		if score > 0 && popular {
			score++
		}
		if score > 0 {
			ranked = append(ranked, scored{score: score, seq: i, item: item})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].seq < ranked[j].seq
	})
	if len(ranked) > recommendTopK {
		ranked = ranked[:recommendTopK]
	}

	recs := make([]recommendation, 0, len(ranked))
	for _, s := range ranked {
		recs = append(recs, recommendation{
			Item:   s.item,
			Reason: fmt.Sprintf("Matches your preference for %s", preferences),
		})
	}
	return recs
}
