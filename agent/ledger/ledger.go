// Package ledger owns the order lifecycle: a strict forward-only state
// machine over order entities persisted in the external document store.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

type Status string

const (
	StatusCreated        Status = "created"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// next maps each status to its single forward step on the happy path.
var next = map[Status]Status{
	StatusCreated:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// CanAdvance reports whether from→to is a legal transition: exactly one
// forward step, or cancellation from any non-terminal state. No skipping,
// no going backward.
func CanAdvance(from, to Status) bool {
	if to == StatusCancelled {
		return from != StatusDelivered && from != StatusCancelled
	}
	return next[from] == to
}

// Mutable reports whether item/address edits are still permitted.
func Mutable(s Status) bool {
	return s == StatusCreated || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Item struct {
	MenuID  string  `json:"menu_id,omitempty"`
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Variant string  `json:"variant,omitempty"`
	Price   float64 `json:"price"`
}

type TrackingEvent struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
}

// Order is never deleted, only superseded in status.
type Order struct {
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	Items           []Item          `json:"items"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Tracking        []TrackingEvent `json:"tracking"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Store is the persistence contract the ledger drives. Save must write
// status and tracking together so they can never disagree; Get returns
// contract.ErrOrderNotFound for unknown ids.
type Store interface {
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, orderID string) (*Order, error)
	Save(ctx context.Context, order *Order) error
}

// Patch carries the fields update_order may touch while the order is still
// mutation-eligible.
type Patch struct {
	Items           []Item  `json:"items,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
}

type Ledger struct {
	store Store
	now   func() time.Time
}

type Option func(*Ledger)

// WithClock overrides the ledger clock, used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Create validates items and opens an order in status created with its
// first tracking event.
func (l *Ledger) Create(ctx context.Context, userID string, items []Item) (*Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", contractx.ErrValidation)
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	now := l.now().UTC()
	order := &Order{
		OrderID:   newOrderID(now),
		UserID:    userID,
		Items:     items,
		Total:     total(items),
		Status:    StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
		Tracking: []TrackingEvent{
			{Status: StatusCreated, Timestamp: now, Message: "Order created successfully"},
		},
	}

	if err := l.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	log.Info().Str("order_id", order.OrderID).Str("user_id", userID).Msg("order created")
	return order, nil
}

// Update applies item/address edits while the status still permits them.
func (l *Ledger) Update(ctx context.Context, orderID string, patch Patch) (*Order, error) {
	order, err := l.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !Mutable(order.Status) {
		return nil, fmt.Errorf("%w: order %s is %s and can no longer be modified",
			contractx.ErrInvalidTransition, orderID, order.Status)
	}

	if patch.Items != nil {
		if err := validateItems(patch.Items); err != nil {
			return nil, err
		}
		order.Items = patch.Items
		order.Total = total(patch.Items)
	}
	if patch.DeliveryAddress != nil {
		order.DeliveryAddress = *patch.DeliveryAddress
	}
	order.UpdatedAt = l.now().UTC()

	if err := l.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

// Advance moves the order one step forward (or cancels it), appending the
// tracking event atomically with the status change. The trigger is an
// external event source; the ledger only validates and records.
func (l *Ledger) Advance(ctx context.Context, orderID string, to Status) (*Order, error) {
	order, err := l.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanAdvance(order.Status, to) {
		return nil, fmt.Errorf("%w: cannot move order %s from %s to %s",
			contractx.ErrInvalidTransition, orderID, order.Status, to)
	}

	now := l.now().UTC()
	order.Status = to
	order.UpdatedAt = now
	order.Tracking = append(order.Tracking, TrackingEvent{
		Status:    to,
		Timestamp: now,
		Message:   fmt.Sprintf("Order status updated to %s", to),
	})

	if err := l.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	log.Info().Str("order_id", orderID).Str("status", string(to)).Msg("order advanced")
	return order, nil
}

// Status returns the order with its tracking history.
func (l *Ledger) Status(ctx context.Context, orderID string) (*Order, error) {
	return l.store.Get(ctx, orderID)
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", contractx.ErrValidation)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", contractx.ErrValidation, i)
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: item %q has quantity %d", contractx.ErrValidation, item.Name, item.Qty)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %q has negative price", contractx.ErrValidation, item.Name)
		}
	}
	return nil
}

func total(items []Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Qty)
	}
	return sum
}

func newOrderID(now time.Time) string {
	fragment := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), fragment)
}
