package tool

import (
	"context"
	"fmt"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	"github.com/ovenly/pizza-agent/agent/ledger"
)

// NewCreateOrder builds the create_order tool. The dispatcher injects
// user_id from the session when the model omits it.
func NewCreateOrder(l *ledger.Ledger) Spec {
	return Spec{
		Name:        "create_order",
		Description: "Create a new pizza order. Requires an items list with name/qty/variant/price, and an optional delivery address.",
		Params: map[string]Param{
			"user_id":          {Type: "string", Description: "Customer identifier", Required: true},
			"items":            {Type: "array", Description: "Items to order, each with name, qty, variant, price", Required: true},
			"delivery_address": {Type: "string", Description: "Where to deliver the order", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			userID, _ := args["user_id"].(string)
			rawItems, _ := args["items"].([]any)
			items, err := parseItems(rawItems)
			if err != nil {
				return nil, err
			}

			order, err := l.Create(ctx, userID, items)
			if err != nil {
				return nil, err
			}

			if address, ok := args["delivery_address"].(string); ok && address != "" {
				order, err = l.Update(ctx, order.OrderID, ledger.Patch{DeliveryAddress: &address})
				if err != nil {
					return nil, err
				}
			}

			return map[string]any{
				"order_id": order.OrderID,
				"status":   order.Status,
				"total":    order.Total,
				"message":  fmt.Sprintf("Order %s created successfully!", order.OrderID),
			}, nil
		},
	}
}

// NewUpdateOrder builds the update_order tool. Item and address changes go
// through the mutation path, a status change through the transition path;
// both can appear in one call.
func NewUpdateOrder(l *ledger.Ledger) Spec {
	return Spec{
		Name:        "update_order",
		Description: "Update an existing order by order_id. Can modify items, delivery address, or advance the order status (including cancellation).",
		Params: map[string]Param{
			"order_id": {Type: "string", Description: "Order to update, e.g. ORD-20250601-a1b2", Required: true},
			"updates":  {Type: "object", Description: "Fields to change: items, delivery_address, status", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			orderID, _ := args["order_id"].(string)
			updates, _ := args["updates"].(map[string]any)

			var patch ledger.Patch
			hasPatch := false
			if rawItems, ok := updates["items"].([]any); ok {
				items, err := parseItems(rawItems)
				if err != nil {
					return nil, err
				}
				patch.Items = items
				hasPatch = true
			}
			if address, ok := updates["delivery_address"].(string); ok {
				patch.DeliveryAddress = &address
				hasPatch = true
			}

			var (
				order *ledger.Order
				err   error
			)
			if hasPatch {
				order, err = l.Update(ctx, orderID, patch)
				if err != nil {
					return nil, err
				}
			}
			if status, ok := updates["status"].(string); ok {
				order, err = l.Advance(ctx, orderID, ledger.Status(status))
				if err != nil {
					return nil, err
				}
			}
			if order == nil {
				return nil, fmt.Errorf("%w: update_order: updates must include items, delivery_address, or status", contractx.ErrToolValidation)
			}

			return map[string]any{
				"order_id": order.OrderID,
				"status":   order.Status,
				"total":    order.Total,
				"message":  "Order updated successfully",
			}, nil
		},
	}
}

// NewOrderStatus builds the order_status tool.
func NewOrderStatus(l *ledger.Ledger) Spec {
	return Spec{
		Name:        "order_status",
		Description: "Get current order status and tracking information by order_id.",
		Params: map[string]Param{
			"order_id": {Type: "string", Description: "Order to look up", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			orderID, _ := args["order_id"].(string)
			order, err := l.Status(ctx, orderID)
			if err != nil {
				return nil, err
			}

			result := map[string]any{
				"order_id":    order.OrderID,
				"status":      order.Status,
				"total":       order.Total,
				"created":     order.CreatedAt,
				"updated":     order.UpdatedAt,
				"tracking":    order.Tracking,
				"items_count": len(order.Items),
			}
			if order.DeliveryAddress != "" {
				result["delivery_address"] = order.DeliveryAddress
			}
			return result, nil
		},
	}
}

// parseItems converts generically-decoded JSON items into ledger items.
// Structural problems are validation errors so the agent can ask the
// customer to clarify instead of failing the turn.
func parseItems(raw []any) ([]ledger.Item, error) {
	items := make([]ledger.Item, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: items[%d] must be an object", contractx.ErrToolValidation, i)
		}
		item := ledger.Item{}
		item.MenuID, _ = m["menu_id"].(string)
		item.Name, _ = m["name"].(string)
		item.Variant, _ = m["variant"].(string)
		if qty, ok := asNumber(m["qty"]); ok {
			item.Qty = int(qty)
		}
		if price, ok := asNumber(m["price"]); ok {
			item.Price = price
		}
		items = append(items, item)
	}
	return items, nil
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
