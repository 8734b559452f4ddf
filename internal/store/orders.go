package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// CreateOrder inserts an order with its line items and decrements
// product stock, all in one transaction. Returns ErrInsufficientStock
// if any line asks for more units than are available; nothing is
// written in that case.
func (s *PostgresStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, item := range o.Items {
		tag, err := tx.Exec(ctx, queryReserveStock, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("reserving stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	err = tx.QueryRow(ctx, queryCreateOrder, o.UserID, string(o.Status), o.TotalPrice).Scan(
		&o.ID, &o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		_, err := tx.Exec(ctx, queryCreateOrderItem, o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("creating order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}
	return nil
}

// GetOrder retrieves one of the user's orders with its items. Returns
// pgx.ErrNoRows if the order does not exist or belongs to another user.
func (s *PostgresStore) GetOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	var status string

	err := s.pool.QueryRow(ctx, queryGetOrder, id, userID).Scan(
		&o.ID, &o.UserID, &status, &o.TotalPrice, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	if err := s.loadOrderItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns the user's orders newest first, optionally filtered
// by status, along with the total count of matching orders.
func (s *PostgresStore) ListOrders(
	ctx context.Context,
	userID, status string,
	limit, offset int,
) ([]domain.Order, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, queryCountOrders, userID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	rows, err := s.pool.Query(ctx, queryListOrders, userID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var st string
		if err := rows.Scan(&o.ID, &o.UserID, &st, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning order: %w", err)
		}
		o.Status = domain.OrderStatus(st)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating orders: %w", err)
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.loadOrderItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateOrderStatus sets an order's status. Returns pgx.ErrNoRows if the
// order does not exist.
func (s *PostgresStore) UpdateOrderStatus(
	ctx context.Context,
	id int64,
	status domain.OrderStatus,
) error {
	tag, err := s.pool.Exec(ctx, queryUpdateOrderStatus, id, string(status))
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// loadOrderItems fills Items for each order in one query.
func (s *PostgresStore) loadOrderItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := s.pool.Query(ctx, queryListOrderItems, ids)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order items: %w", err)
	}
	return nil
}
