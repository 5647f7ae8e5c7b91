package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"timepiece/internal/domain/model"
	"timepiece/internal/media"
	repo "timepiece/internal/repository"
	"timepiece/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://api.test"

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func requireHTTPError(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "want *usecase.HTTPError, got %T", err)
	assert.Equal(t, status, he.Status)
	return he
}

func newCartUC() (*usecase.CartUsecase, *MockCartItemRepo, *MockProductRepo) {
	cartRepo := new(MockCartItemRepo)
	productRepo := new(MockProductRepo)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, media.NewURLBuilder("/media/"))
	return uc, cartRepo, productRepo
}

func watchProduct(id int64, price string, active bool) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Pilot Chrono",
		Price:    decimal.RequireFromString(price),
		Stock:    5,
		Image:    strPtr("products/pilot.jpg"),
		IsActive: active,
	}
}

func TestCartUsecase_AddToCart_DefaultQuantityOne(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, productRepo := newCartUC()

	p := watchProduct(3, "9.99", true)
	productRepo.On("FindByID", ctx, int64(3)).Return(p, nil).Once()
	cartRepo.On("AddQuantity", ctx, int64(7), int64(3), int64(1)).
		Return(model.CartItem{ID: 11, UserID: 7, ProductID: 3, Product: p, Quantity: 1, AddedAt: time.Now()}, nil).Once()

	out, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(11), out.ID)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, int64(1), out.Quantity)
	assert.Equal(t, "9.99", out.TotalPrice.StringFixed(2))
	require.NotNil(t, out.ProductImage)
	assert.Equal(t, "http://api.test/media/products/pilot.jpg", *out.ProductImage)

	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_AccumulatedTotal(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, productRepo := newCartUC()

	p := watchProduct(3, "9.99", true)
	productRepo.On("FindByID", ctx, int64(3)).Return(p, nil).Once()
	// 既存1 + 追加1 = 2
	cartRepo.On("AddQuantity", ctx, int64(7), int64(3), int64(1)).
		Return(model.CartItem{ID: 11, UserID: 7, ProductID: 3, Product: p, Quantity: 2}, nil).Once()

	out, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 3, Quantity: int64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Quantity)
	assert.Equal(t, "19.98", out.TotalPrice.StringFixed(2))
}

func TestCartUsecase_AddToCart_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, productRepo := newCartUC()

	productRepo.On("FindByID", ctx, int64(99)).Return(model.Product{}, repo.ErrNotFound).Once()

	_, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 99})
	he := requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, "product not found", he.Message)
	cartRepo.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InactiveProductIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, productRepo := newCartUC()

	productRepo.On("FindByID", ctx, int64(4)).Return(watchProduct(4, "120.00", false), nil).Once()

	_, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 4})
	requireHTTPError(t, err, http.StatusNotFound)
	cartRepo.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InvalidInput(t *testing.T) {
	ctx := context.Background()
	uc, _, productRepo := newCartUC()

	_, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 0})
	requireHTTPError(t, err, http.StatusBadRequest)

	_, err = uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 3, Quantity: int64Ptr(0)})
	requireHTTPError(t, err, http.StatusBadRequest)

	_, err = uc.AddToCart(ctx, 0, testOrigin, usecase.AddCartInput{ProductID: 3})
	requireHTTPError(t, err, http.StatusUnauthorized)

	productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_DBError(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, productRepo := newCartUC()

	productRepo.On("FindByID", ctx, int64(3)).Return(watchProduct(3, "9.99", true), nil).Once()
	cartRepo.On("AddQuantity", ctx, int64(7), int64(3), int64(1)).Return(model.CartItem{}, errors.New("boom")).Once()

	_, err := uc.AddToCart(ctx, 7, testOrigin, usecase.AddCartInput{ProductID: 3})
	requireHTTPError(t, err, http.StatusInternalServerError)
}

func TestCartUsecase_ListCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	p := watchProduct(3, "9.99", true)
	cartRepo.On("ListByUserID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 1, UserID: 7, ProductID: 3, Product: p, Quantity: 3},
	}, nil).Once()

	out, err := uc.ListCart(ctx, 7, testOrigin)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Pilot Chrono", out[0].ProductName)
	assert.Equal(t, "29.97", out[0].TotalPrice.StringFixed(2))
}

func TestCartUsecase_ListCart_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	cartRepo.On("ListByUserID", ctx, int64(7)).Return([]model.CartItem{}, nil).Once()

	out, err := uc.ListCart(ctx, 7, testOrigin)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCartUsecase_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	p := watchProduct(3, "9.99", true)
	cartRepo.On("FindOwned", ctx, int64(7), int64(11)).
		Return(model.CartItem{ID: 11, UserID: 7, ProductID: 3, Product: p, Quantity: 1}, nil).Once()
	cartRepo.On("UpdateQuantity", ctx, int64(7), int64(11), int64(4)).Return(nil).Once()

	out, err := uc.UpdateQuantity(ctx, 7, testOrigin, usecase.UpdateCartItemInput{
		CartItemID: int64Ptr(11),
		Quantity:   int64Ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Quantity)
	assert.Equal(t, "39.96", out.TotalPrice.StringFixed(2))
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_UpdateQuantity_Missing(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	_, err := uc.UpdateQuantity(ctx, 7, testOrigin, usecase.UpdateCartItemInput{CartItemID: int64Ptr(11)})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Missing cart_item_id or quantity", he.Message)

	_, err = uc.UpdateQuantity(ctx, 7, testOrigin, usecase.UpdateCartItemInput{Quantity: int64Ptr(2)})
	requireHTTPError(t, err, http.StatusBadRequest)

	cartRepo.AssertNotCalled(t, "FindOwned", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_ZeroOrNegativeRejected(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	for _, q := range []int64{0, -3} {
		_, err := uc.UpdateQuantity(ctx, 7, testOrigin, usecase.UpdateCartItemInput{
			CartItemID: int64Ptr(11),
			Quantity:   int64Ptr(q),
		})
		he := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Contains(t, he.Fields, "quantity")
	}
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_OtherUsersItem(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	cartRepo.On("FindOwned", ctx, int64(8), int64(11)).Return(model.CartItem{}, repo.ErrNotFound).Once()

	_, err := uc.UpdateQuantity(ctx, 8, testOrigin, usecase.UpdateCartItemInput{
		CartItemID: int64Ptr(11),
		Quantity:   int64Ptr(2),
	})
	he := requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, "Cart item not found", he.Message)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _ := newCartUC()

	cartRepo.On("DeleteOwned", ctx, int64(7), int64(11)).Return(nil).Once()
	require.NoError(t, uc.RemoveItem(ctx, 7, 11))

	cartRepo.On("DeleteOwned", ctx, int64(8), int64(11)).Return(repo.ErrNotFound).Once()
	err := uc.RemoveItem(ctx, 8, 11)
	he := requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, "Cart item not found.", he.Message)

	err = uc.RemoveItem(ctx, 7, 0)
	requireHTTPError(t, err, http.StatusNotFound)

	cartRepo.AssertExpectations(t)
}
