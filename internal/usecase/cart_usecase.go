package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"timepiece/internal/domain/model"
	"timepiece/internal/media"
	repo "timepiece/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 他人の明細は常に404（存在を漏らさない）
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	urls         media.URLBuilder
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	urls media.URLBuilder,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		urls:         urls,
	}
}

type CartItemOutput struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user"`
	ProductID    int64           `json:"product"`
	ProductName  string          `json:"product_name"`
	ProductImage *string         `json:"product_image"`
	Quantity     int64           `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	AddedAt      time.Time       `json:"added_at"`
}

type AddCartInput struct {
	ProductID int64
	// nilなら1
	Quantity *int64
}

type UpdateCartItemInput struct {
	CartItemID *int64
	Quantity   *int64
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, origin string, in AddCartInput) (CartItemOutput, error) {
	if userID <= 0 {
		return CartItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	qty := int64(1)
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	item, err := u.cartItemRepo.AddQuantity(ctx, userID, in.ProductID, qty)
	if err != nil {
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.toCartItemOutput(origin, item), nil
}

func (u *CartUsecase) ListCart(ctx context.Context, userID int64, origin string) ([]CartItemOutput, error) {
	if userID <= 0 {
		return []CartItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CartItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, u.toCartItemOutput(origin, it))
	}
	return out, nil
}

// 数量変更（0以下は400）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, origin string, in UpdateCartItemInput) (CartItemOutput, error) {
	if userID <= 0 {
		return CartItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CartItemID == nil || in.Quantity == nil {
		return CartItemOutput{}, NewHTTPError(http.StatusBadRequest, "Missing cart_item_id or quantity")
	}
	if *in.Quantity < 1 {
		return CartItemOutput{}, NewFieldError(http.StatusBadRequest, "invalid quantity", map[string]string{
			"quantity": "Ensure this value is greater than or equal to 1.",
		})
	}

	item, err := u.cartItemRepo.FindOwned(ctx, userID, *in.CartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, userID, item.ID, *in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemOutput{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return CartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Quantity = *in.Quantity
	return u.toCartItemOutput(origin, item), nil
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}

	if err := u.cartItemRepo.DeleteOwned(ctx, userID, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Cart item not found.")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) toCartItemOutput(origin string, it model.CartItem) CartItemOutput {
	return CartItemOutput{
		ID:           it.ID,
		UserID:       it.UserID,
		ProductID:    it.ProductID,
		ProductName:  it.Product.Name,
		ProductImage: u.urls.Resolve(origin, it.Product.Image),
		Quantity:     it.Quantity,
		TotalPrice:   it.TotalPrice(),
		AddedAt:      it.AddedAt,
	}
}
