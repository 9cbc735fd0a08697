package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	"github.com/ovenly/pizza-agent/agent/ledger"
)

// OrderStore persists ledger orders in Postgres.
type OrderStore struct {
	db *bun.DB
}

var _ ledger.Store = (*OrderStore)(nil)

func NewOrderStore(db *bun.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Insert(ctx context.Context, order *ledger.Order) error {
	row := rowFromOrder(order)
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert order %s: %w", order.OrderID, err)
	}
	return nil
}

func (s *OrderStore) Get(ctx context.Context, orderID string) (*ledger.Order, error) {
	row := new(OrderRow)
	err := s.db.NewSelect().Model(row).Where("order_id = ?", orderID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return orderFromRow(row), nil
}

func (s *OrderStore) Save(ctx context.Context, order *ledger.Order) error {
	row := rowFromOrder(order)
	res, err := s.db.NewUpdate().Model(row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("save order %s: %w", order.OrderID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", contractx.ErrOrderNotFound, order.OrderID)
	}
	return nil
}

// OrdersByUser returns a user's orders, most recent first. A positive
// limit caps the result.
func (s *OrderStore) OrdersByUser(ctx context.Context, userID string, limit int) ([]*ledger.Order, error) {
	var rows []OrderRow
	q := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders for user %s: %w", userID, err)
	}
	orders := make([]*ledger.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, orderFromRow(&rows[i]))
	}
	return orders, nil
}

func rowFromOrder(order *ledger.Order) *OrderRow {
	return &OrderRow{
		OrderID:         order.OrderID,
		UserID:          order.UserID,
		Items:           order.Items,
		Total:           order.Total,
		Status:          order.Status,
		DeliveryAddress: order.DeliveryAddress,
		Tracking:        order.Tracking,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func orderFromRow(row *OrderRow) *ledger.Order {
	return &ledger.Order{
		OrderID:         row.OrderID,
		UserID:          row.UserID,
		Items:           row.Items,
		Total:           row.Total,
		Status:          row.Status,
		DeliveryAddress: row.DeliveryAddress,
		Tracking:        row.Tracking,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
