package repository

import (
	"context"

	"smartcart/internal/domain/model"
)

type OrderRepository interface {
	// 注文と明細をまとめて作成
	Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	ListItemsByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
