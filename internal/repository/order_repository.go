package repository

import (
	"context"

	"timepiece/internal/domain/model"
)

type OrderRepository interface {
	// items/productまでpreloadして返す
	FindByIDForUser(ctx context.Context, userID int64, orderID int64) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
}
