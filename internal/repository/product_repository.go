package repository

import (
	"context"

	"timepiece/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// is_active=trueのみ、id昇順、category付き
	ListActive(ctx context.Context) ([]model.Product, error)
	// 見つからなければErrNotFound（非公開も返す）
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// slugで作成or更新（seed用）
	UpsertBySlug(ctx context.Context, p model.Product) (model.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	UpsertBySlug(ctx context.Context, c model.Category) (model.Category, error)
}
