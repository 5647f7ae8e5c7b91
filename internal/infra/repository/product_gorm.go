package repository

import (
	"context"

	"timepiece/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを登録順で返す。
func (r *ProductGormRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product

	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		return model.Product{}, translateErr(err)
	}
	return p, nil
}

// slugが同じなら上書き
func (r *ProductGormRepository) UpsertBySlug(ctx context.Context, p model.Product) (model.Product, error) {
	if p.Slug == "" {
		p.Slug = model.Slugify(p.Name)
	}
	if p.Slug == "" {
		return model.Product{}, model.ErrEmptySlug
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "price", "stock", "image", "category_id", "is_active", "updated_at",
			}),
		}).
		Create(&p).Error
	if err != nil {
		return model.Product{}, translateErr(err)
	}

	// mysqlはRETURNINGが無いので取り直す
	var saved model.Product
	if err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", p.Slug).First(&saved).Error; err != nil {
		return model.Product{}, translateErr(err)
	}
	return saved, nil
}

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cs).Error; err != nil {
		return []model.Category{}, err
	}
	return cs, nil
}

func (r *CategoryGormRepository) UpsertBySlug(ctx context.Context, c model.Category) (model.Category, error) {
	if c.Slug == "" {
		c.Slug = model.Slugify(c.Name)
	}
	if c.Slug == "" {
		return model.Category{}, model.ErrEmptySlug
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&c).Error
	if err != nil {
		return model.Category{}, translateErr(err)
	}

	var saved model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", c.Slug).First(&saved).Error; err != nil {
		return model.Category{}, translateErr(err)
	}
	return saved, nil
}
