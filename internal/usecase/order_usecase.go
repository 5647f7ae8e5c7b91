package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"timepiece/internal/domain/model"
	"timepiece/internal/media"
	repo "timepiece/internal/repository"

	"github.com/shopspring/decimal"
)

const maxIdempotencyKeyLen = 255

type OrderUsecase struct {
	tx   repo.TransactionManager
	urls media.URLBuilder
}

func NewOrderUsecase(tx repo.TransactionManager, urls media.URLBuilder) *OrderUsecase {
	return &OrderUsecase{tx: tx, urls: urls}
}

// 注文する1行。ProductIDは商品ID（カート明細IDではない）
type OrderLineInput struct {
	ProductID int64
	Quantity  int64
	// クライアントの計算値。送られたらサーバー計算と照合する
	TotalPrice *decimal.Decimal
}

type PlaceOrderInput struct {
	Contact       string
	Address       string
	PaymentMethod string
	CartItems     []OrderLineInput
	// 指定があればこの明細だけ消す
	CartItemIDs    []int64
	IdempotencyKey string
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product"`
	ProductName  string          `json:"product_name"`
	ProductImage *string         `json:"product_image"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Price        decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user"`
	Contact       string            `json:"contact"`
	Address       string            `json:"address"`
	PaymentMethod string            `json:"payment_method"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, origin string, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	contact := strings.TrimSpace(in.Contact)
	address := strings.TrimSpace(in.Address)
	if contact == "" || address == "" || len(in.CartItems) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Missing contact, address, or cart items")
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = string(model.PaymentMethodCOD)
	}
	if !model.IsValidPaymentMethod(payment) {
		return OrderOutput{}, NewFieldError(http.StatusBadRequest, "invalid payment_method", map[string]string{
			"payment_method": fmt.Sprintf("%q is not a valid choice.", payment),
		})
	}

	seen := make(map[int64]struct{}, len(in.CartItems))
	for _, line := range in.CartItems {
		if line.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_items id")
		}
		if line.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if _, dup := seen[line.ProductID]; dup {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "duplicate product in cart_items")
		}
		seen[line.ProductID] = struct{}{}
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency key")
	}

	var out OrderOutput

	//注文処理はトランザクション。途中で失敗したら注文も明細も残さない
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		if key != "" {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err != nil {
				return err
			}
			if found {
				out = u.toOrderOutput(origin, existing)
				return nil
			}
		}

		//価格はサーバー側で商品から計算し直す
		orderItems := make([]model.OrderItem, 0, len(in.CartItems))
		productIDs := make([]int64, 0, len(in.CartItems))
		total := decimal.Zero

		for _, line := range in.CartItems {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", line.ProductID))
			}
			if err != nil {
				return err
			}

			linePrice := p.Price.Mul(decimal.NewFromInt(line.Quantity))
			if line.TotalPrice != nil && !line.TotalPrice.Equal(linePrice) {
				return NewFieldError(http.StatusBadRequest, "price mismatch", map[string]string{
					"cart_items": fmt.Sprintf("total_price for product %d must be %s", line.ProductID, linePrice.StringFixed(2)),
				})
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
				Price:     linePrice,
			})
			productIDs = append(productIDs, p.ID)
			total = total.Add(linePrice)
		}

		// 注文作成
		order := model.Order{
			UserID:        userID,
			Contact:       contact,
			Address:       address,
			PaymentMethod: model.PaymentMethod(payment),
			TotalPrice:    total,
			Status:        model.OrderStatusPending,
		}
		if key != "" {
			order.IdempotencyKey = &key
		}
		orderID, err := r.Orders().Create(ctx, order)
		if errors.Is(err, repo.ErrDuplicate) {
			//同時に同じキーが入った
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}
		if err != nil {
			return err
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		//注文した分だけカートから消す
		if len(in.CartItemIDs) > 0 {
			ids := uniqueIDs(in.CartItemIDs)
			n, err := r.CartItems().DeleteByIDs(ctx, userID, ids)
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return NewHTTPError(http.StatusNotFound, "Cart item not found")
			}
		} else {
			if _, err := r.CartItems().DeleteByProductIDs(ctx, userID, productIDs); err != nil {
				return err
			}
		}

		created, err := r.Orders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}
		out = u.toOrderOutput(origin, created)
		return nil
	})

	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return OrderOutput{}, he
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

// 新しい順
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64, origin string) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, u.toOrderOutput(origin, o))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, origin string, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//他人の注文は「存在しない扱い」にする
		o, err := r.Orders().FindByIDForUser(ctx, userID, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = u.toOrderOutput(origin, o)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) toOrderOutput(origin string, o model.Order) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		outItems = append(outItems, OrderItemOutput{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.Product.Name,
			ProductImage: u.urls.Resolve(origin, it.Product.Image),
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Price:        it.Price,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Contact:       o.Contact,
		Address:       o.Address,
		PaymentMethod: string(o.PaymentMethod),
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
