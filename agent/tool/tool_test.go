package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	"github.com/ovenly/pizza-agent/agent/ledger"
	"github.com/ovenly/pizza-agent/store"
)

func echoSpec(name string) Spec {
	return Spec{
		Name:        name,
		Description: "echoes its input",
		Params: map[string]Param{
			"text":  {Type: "string", Description: "text to echo", Required: true},
			"times": {Type: "integer", Description: "repeat count", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		},
	}
}

func TestRegistryInvoke(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(echoSpec("echo"))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	res, err := r.Invoke(context.Background(), "echo", map[string]any{"text": "hello"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Tool != "echo" || res.Result != "hello" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	t.Parallel()

	r, _ := NewRegistry(echoSpec("echo"))
	_, err := r.Invoke(context.Background(), "teleport_pizza", nil)
	if !errors.Is(err, contractx.ErrToolNotFound) {
		t.Fatalf("Invoke() error = %v, want ErrToolNotFound", err)
	}
}

func TestRegistryValidation(t *testing.T) {
	t.Parallel()

	r, _ := NewRegistry(echoSpec("echo"))
	ctx := context.Background()

	cases := []struct {
		name string
		args map[string]any
	}{
		{name: "missing required", args: map[string]any{}},
		{name: "wrong type", args: map[string]any{"text": 42.0}},
		{name: "fractional integer", args: map[string]any{"text": "hi", "times": 1.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := r.Invoke(ctx, "echo", tc.args); !errors.Is(err, contractx.ErrToolValidation) {
				t.Fatalf("Invoke() error = %v, want ErrToolValidation", err)
			}
		})
	}
}

func TestRegistryWrapsHandlerErrors(t *testing.T) {
	t.Parallel()

	boom := Spec{
		Name:        "boom",
		Description: "always fails",
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return nil, fmt.Errorf("downstream unavailable")
		},
	}
	r, _ := NewRegistry(boom)

	res, err := r.Invoke(context.Background(), "boom", nil)
	if !errors.Is(err, contractx.ErrToolExecution) {
		t.Fatalf("Invoke() error = %v, want ErrToolExecution", err)
	}
	if res.Error == "" {
		t.Fatal("expected result error to be populated")
	}
}

func TestRegistryPassesDomainErrorsThrough(t *testing.T) {
	t.Parallel()

	missing := Spec{
		Name:        "missing",
		Description: "reports a missing order",
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return nil, fmt.Errorf("%w: ORD-1", contractx.ErrOrderNotFound)
		},
	}
	r, _ := NewRegistry(missing)

	_, err := r.Invoke(context.Background(), "missing", nil)
	if !errors.Is(err, contractx.ErrOrderNotFound) {
		t.Fatalf("Invoke() error = %v, want ErrOrderNotFound", err)
	}
	if errors.Is(err, contractx.ErrToolExecution) {
		t.Fatal("domain error should not be wrapped as an execution error")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	r, _ := NewRegistry(echoSpec("echo"))
	replacement := echoSpec("echo")
	replacement.Handler = func(ctx context.Context, args map[string]any) (any, error) {
		return "replaced", nil
	}
	if err := r.Register(replacement); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if got := r.Names(); len(got) != 1 {
		t.Fatalf("Names() = %v, want single entry", got)
	}
	res, err := r.Invoke(context.Background(), "echo", map[string]any{"text": "x"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Result != "replaced" {
		t.Fatalf("result = %v, want replaced", res.Result)
	}
}

func TestDescribeListsToolsInOrder(t *testing.T) {
	t.Parallel()

	r, _ := NewRegistry(echoSpec("alpha"), echoSpec("beta"))
	catalog := r.Describe()
	ia := strings.Index(catalog, "- alpha:")
	ib := strings.Index(catalog, "- beta:")
	if ia < 0 || ib < 0 || ia > ib {
		t.Fatalf("catalog order wrong:\n%s", catalog)
	}
	if !strings.Contains(catalog, "text (string, required)") {
		t.Fatalf("catalog missing parameter line:\n%s", catalog)
	}
}

type memOrderStore struct {
	orders map[string]*ledger.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[string]*ledger.Order)}
}

func (m *memOrderStore) Insert(ctx context.Context, order *ledger.Order) error {
	cp := *order
	m.orders[order.OrderID] = &cp
	return nil
}

func (m *memOrderStore) Get(ctx context.Context, orderID string) (*ledger.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, contractx.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *memOrderStore) Save(ctx context.Context, order *ledger.Order) error {
	cp := *order
	m.orders[order.OrderID] = &cp
	return nil
}

func orderTools(t *testing.T) (*Registry, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(newMemOrderStore())
	r, err := NewRegistry(NewCreateOrder(l), NewUpdateOrder(l), NewOrderStatus(l))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r, l
}

func TestCreateOrderTool(t *testing.T) {
	t.Parallel()

	r, _ := orderTools(t)
	res, err := r.Invoke(context.Background(), "create_order", map[string]any{
		"user_id": "user-7",
		"items": []any{
			map[string]any{"name": "Spicy Devil", "qty": 1.0, "variant": "large", "price": 18.99},
		},
		"delivery_address": "42 Elm Street",
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	payload, ok := res.Result.(map[string]any)
	if !ok {
		t.Fatalf("result type = %T", res.Result)
	}
	orderID, _ := payload["order_id"].(string)
	if !strings.HasPrefix(orderID, "ORD-") {
		t.Fatalf("order_id = %q", orderID)
	}
	if payload["status"] != ledger.StatusCreated {
		t.Fatalf("status = %v, want created", payload["status"])
	}
}

func TestCreateOrderToolRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	r, _ := orderTools(t)
	_, err := r.Invoke(context.Background(), "create_order", map[string]any{
		"user_id": "user-7",
		"items":   []any{},
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Invoke() error = %v, want ErrValidation", err)
	}
}

func TestUpdateOrderToolStatusAndTracking(t *testing.T) {
	t.Parallel()

	r, l := orderTools(t)
	order, err := l.Create(context.Background(), "user-7", []ledger.Item{{Name: "Margherita", Qty: 1, Price: 10.99}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := r.Invoke(context.Background(), "update_order", map[string]any{
		"order_id": order.OrderID,
		"updates":  map[string]any{"status": "confirmed"},
	}); err != nil {
		t.Fatalf("Invoke(update_order) error = %v", err)
	}

	res, err := r.Invoke(context.Background(), "order_status", map[string]any{"order_id": order.OrderID})
	if err != nil {
		t.Fatalf("Invoke(order_status) error = %v", err)
	}
	payload := res.Result.(map[string]any)
	if payload["status"] != ledger.StatusConfirmed {
		t.Fatalf("status = %v, want confirmed", payload["status"])
	}
	tracking := payload["tracking"].([]ledger.TrackingEvent)
	if len(tracking) != 2 || tracking[1].Status != ledger.StatusConfirmed {
		t.Fatalf("unexpected tracking: %+v", tracking)
	}
}

func TestUpdateOrderToolUnknownOrder(t *testing.T) {
	t.Parallel()

	r, _ := orderTools(t)
	_, err := r.Invoke(context.Background(), "update_order", map[string]any{
		"order_id": "ORD-20250601-dead",
		"updates":  map[string]any{"status": "confirmed"},
	})
	if !errors.Is(err, contractx.ErrOrderNotFound) {
		t.Fatalf("Invoke() error = %v, want ErrOrderNotFound", err)
	}
}

func TestUpdateOrderToolEmptyUpdates(t *testing.T) {
	t.Parallel()

	r, l := orderTools(t)
	order, _ := l.Create(context.Background(), "user-7", []ledger.Item{{Name: "Margherita", Qty: 1, Price: 10.99}})

	_, err := r.Invoke(context.Background(), "update_order", map[string]any{
		"order_id": order.OrderID,
		"updates":  map[string]any{},
	})
	if !errors.Is(err, contractx.ErrToolValidation) {
		t.Fatalf("Invoke() error = %v, want ErrToolValidation", err)
	}
}

func sampleMenu() []store.MenuItemRow {
	return []store.MenuItemRow{
		{ID: "margherita", Name: "Margherita", Category: "veg", Tags: []string{"popular", "classic", "vegetarian"}, Description: "Simple and delicious with fresh mozzarella, basil, and tomato sauce"},
		{ID: "spicy_devil", Name: "Spicy Devil", Category: "non-veg", Tags: []string{"spicy", "hot", "extreme"}, Description: "Extra spicy with jalapeños and hot sauce", Ingredients: []string{"jalapeños", "hot sauce", "pepperoni"}},
		{ID: "four_cheese", Name: "Four Cheese", Category: "veg", Tags: []string{"cheese", "creamy", "gourmet"}, Description: "A cheese lover's dream", Ingredients: []string{"mozzarella", "parmesan"}},
		{ID: "meat_lovers", Name: "Meat Lovers", Category: "non-veg", Tags: []string{"popular", "meat", "protein-packed"}, Description: "Loaded with pepperoni, sausage, bacon, and ham"},
	}
}

func TestRankByPreferenceSpicy(t *testing.T) {
	t.Parallel()

	recs := rankByPreference("something spicy and hot", sampleMenu())
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	if recs[0].Item.ID != "spicy_devil" {
		t.Fatalf("top recommendation = %s, want spicy_devil", recs[0].Item.ID)
	}
}

func TestRankByPreferenceVegetarian(t *testing.T) {
	t.Parallel()

	recs := rankByPreference("veg please", sampleMenu())
	for _, rec := range recs {
		if rec.Item.Category != "veg" {
			t.Fatalf("non-veg item %s recommended for veg preference", rec.Item.ID)
		}
	}
}

func TestRankByPreferenceNoMatch(t *testing.T) {
	t.Parallel()

	recs := rankByPreference("sushi", sampleMenu())
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(recs))
	}
}
