package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの1行。(user, product) につき1行だけ
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_items_user_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}

// price × quantity（Productをpreloadしている前提）
func (c CartItem) TotalPrice() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(c.Quantity))
}
