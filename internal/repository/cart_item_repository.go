package repository

import (
	"context"

	"timepiece/internal/domain/model"
)

// userIDで必ず絞る。他人の明細はErrNotFound
type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 同一商品はプラス（1文のupsert）
	AddQuantity(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error)
	FindOwned(ctx context.Context, userID int64, cartItemID int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error
	DeleteOwned(ctx context.Context, userID int64, cartItemID int64) error
	// 消した件数を返す
	DeleteByIDs(ctx context.Context, userID int64, cartItemIDs []int64) (int64, error)
	DeleteByProductIDs(ctx context.Context, userID int64, productIDs []int64) (int64, error)
}
