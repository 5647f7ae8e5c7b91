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

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	urls         media.URLBuilder
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	urls media.URLBuilder,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		urls:         urls,
	}
}

type CategoryOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductOutput struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Image       *string         `json:"image"`
	Category    CategoryOutput  `json:"category"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// GET /products 公開商品を登録順で全部返す
func (u *ProductUsecase) ListActiveProducts(ctx context.Context, origin string) ([]ProductOutput, error) {
	items, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		out = append(out, u.toProductOutput(origin, p))
	}
	return out, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, origin string, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 非公開は存在しない扱い
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return u.toProductOutput(origin, p), nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]CategoryOutput, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]CategoryOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryOutput(c))
	}
	return out, nil
}

func (u *ProductUsecase) toProductOutput(origin string, p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       u.urls.Resolve(origin, p.Image),
		Category:    toCategoryOutput(p.Category),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func toCategoryOutput(c model.Category) CategoryOutput {
	return CategoryOutput{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
