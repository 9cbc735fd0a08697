package nodes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatToolResult turns a raw tool result into a customer-facing reply
// without another model call. Results are normalized through JSON so the
// formatter does not care about the handlers' concrete types.
func FormatToolResult(tool string, result any) string {
	payload := normalize(result)

	switch tool {
	case "search_kb":
		return formatKB(payload)
	case "search_menu":
		return formatMenu(payload)
	case "recommend_pizza":
		return formatRecommendations(payload)
	case "create_order":
		return formatCreateOrder(payload)
	case "update_order":
		return formatUpdateOrder(payload)
	case "order_status":
		return formatOrderStatus(payload)
	default:
		return fmt.Sprintf("Done! Result: %v", result)
	}
}

func normalize(result any) map[string]any {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

func formatKB(payload map[string]any) string {
	passages, _ := payload["passages"].([]any)
	if len(passages) == 0 {
		return "I couldn't find specific information about that in our knowledge base. Is there anything else I can help you with?"
	}

	top, _ := passages[0].(map[string]any)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s", str(top, "title"), str(top, "text"))
	if len(passages) > 1 {
		b.WriteString("\n\nRelated information:")
		for _, p := range passages[1:] {
			m, _ := p.(map[string]any)
			if title := str(m, "title"); title != "" {
				fmt.Fprintf(&b, "\n- %s", title)
			}
		}
	}
	return b.String()
}

func formatMenu(payload map[string]any) string {
	items, _ := payload["items"].([]any)
	if len(items) == 0 {
		return "I couldn't find any pizzas matching that description. Would you like to see our full menu or try a different search?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d pizza(s):\n\n", len(items))
	shown := items
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, entry := range shown {
		item, _ := entry.(map[string]any)
		fmt.Fprintf(&b, "%d. %s - $%.2f (%s)\n   %s\n\n",
			i+1, str(item, "name"), num(item, "price"), str(item, "category"), str(item, "description"))
	}
	if len(items) > 5 {
		fmt.Fprintf(&b, "...and %d more! Would you like to see more options?", len(items)-5)
	}
	return strings.TrimSpace(b.String())
}

func formatRecommendations(payload map[string]any) string {
	recs, _ := payload["recommendations"].([]any)
	if len(recs) == 0 {
		return "I couldn't generate recommendations right now. Would you like to browse our menu instead?"
	}

	var b strings.Builder
	b.WriteString("Recommended pizzas for you:\n\n")
	for i, entry := range recs {
		rec, _ := entry.(map[string]any)
		item, _ := rec["item"].(map[string]any)
		fmt.Fprintf(&b, "%d. %s - $%.2f\n   %s\n\n",
			i+1, str(item, "name"), num(item, "price"), str(rec, "reason"))
	}
	b.WriteString("Would you like to order any of these?")
	return b.String()
}

func formatCreateOrder(payload map[string]any) string {
	return fmt.Sprintf("Order created successfully!\n\nOrder ID: %s\nTotal: $%.2f\n\nYour order has been placed and will be ready soon. You can track it using the order ID.",
		str(payload, "order_id"), num(payload, "total"))
}

func formatUpdateOrder(payload map[string]any) string {
	return fmt.Sprintf("Order %s has been updated successfully! Current status: %s.",
		str(payload, "order_id"), str(payload, "status"))
}

func formatOrderStatus(payload map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order status\n\nOrder ID: %s\nStatus: %s\nTotal: $%.2f\n",
		str(payload, "order_id"), strings.ToUpper(str(payload, "status")), num(payload, "total"))
	if tracking, _ := payload["tracking"].([]any); len(tracking) > 0 {
		b.WriteString("\nTimeline:\n")
		for _, entry := range tracking {
			event, _ := entry.(map[string]any)
			fmt.Fprintf(&b, "- %s\n", str(event, "status"))
		}
	}
	return strings.TrimSpace(b.String())
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}
