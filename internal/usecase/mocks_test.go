package usecase_test

import (
	"context"

	"timepiece/internal/domain/model"
	repo "timepiece/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// repositoryモック
// =====================

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) UpsertBySlug(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *MockCategoryRepo) UpsertBySlug(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

type MockCartItemRepo struct {
	mock.Mock
}

func (m *MockCartItemRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartItemRepo) AddQuantity(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID, addQty)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *MockCartItemRepo) FindOwned(ctx context.Context, userID int64, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *MockCartItemRepo) UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error {
	args := m.Called(ctx, userID, cartItemID, qty)
	return args.Error(0)
}

func (m *MockCartItemRepo) DeleteOwned(ctx context.Context, userID int64, cartItemID int64) error {
	args := m.Called(ctx, userID, cartItemID)
	return args.Error(0)
}

func (m *MockCartItemRepo) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartItemRepo) DeleteByProductIDs(ctx context.Context, userID int64, productIDs []int64) (int64, error) {
	args := m.Called(ctx, userID, productIDs)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) FindByIDForUser(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type MockOrderItemRepo struct {
	mock.Mock
}

func (m *MockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

var (
	_ repo.ProductRepository   = (*MockProductRepo)(nil)
	_ repo.CategoryRepository  = (*MockCategoryRepo)(nil)
	_ repo.CartItemRepository  = (*MockCartItemRepo)(nil)
	_ repo.OrderRepository     = (*MockOrderRepo)(nil)
	_ repo.OrderItemRepository = (*MockOrderItemRepo)(nil)
)

// =====================
// TransactionManager（fnをそのまま呼ぶだけ）
// =====================

type fakeTxRepos struct {
	orders     *MockOrderRepo
	orderItems *MockOrderItemRepo
	cartItems  *MockCartItemRepo
	products   *MockProductRepo
	categories *MockCategoryRepo
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		orders:     new(MockOrderRepo),
		orderItems: new(MockOrderItemRepo),
		cartItems:  new(MockCartItemRepo),
		products:   new(MockProductRepo),
		categories: new(MockCategoryRepo),
	}
}

func (r *fakeTxRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *fakeTxRepos) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *fakeTxRepos) Products() repo.ProductRepository     { return r.products }
func (r *fakeTxRepos) Categories() repo.CategoryRepository  { return r.categories }

type fakeTxManager struct {
	repos *fakeTxRepos
	calls int
}

func (tm *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.calls++
	return fn(tm.repos)
}
