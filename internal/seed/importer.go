package seed

import (
	"context"
	"fmt"
	"strings"

	"timepiece/internal/domain/model"
	repo "timepiece/internal/repository"
)

type Result struct {
	Categories int
	Products   int
}

type Importer struct {
	tx repo.TransactionManager
}

func NewImporter(tx repo.TransactionManager) *Importer {
	return &Importer{tx: tx}
}

// slugで作成or更新。1件でも失敗したら何も書かない
func (im *Importer) Import(ctx context.Context, c Catalog) (Result, error) {
	var res Result

	err := im.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// slug / name -> id
		catIDs := map[string]int64{}
		// ファイル内で同じslugが2回出たら上書きになるので弾く
		catSlugs := map[string]int{}
		productSlugs := map[string]int{}

		for i, cs := range c.Categories {
			name := strings.TrimSpace(cs.Name)
			if name == "" {
				return fmt.Errorf("categories[%d]: name is required", i)
			}
			slug, err := rowSlug(cs.Slug, name)
			if err != nil {
				return fmt.Errorf("categories[%d] %q: %w", i, name, err)
			}
			if prev, dup := catSlugs[slug]; dup {
				return fmt.Errorf("categories[%d] %q: slug %q already used by categories[%d]", i, name, slug, prev)
			}
			catSlugs[slug] = i

			saved, err := r.Categories().UpsertBySlug(ctx, model.Category{
				Name: name,
				Slug: slug,
			})
			if err != nil {
				return fmt.Errorf("categories[%d] %q: %w", i, name, err)
			}
			catIDs[saved.Slug] = saved.ID
			catIDs[strings.ToLower(saved.Name)] = saved.ID
			res.Categories++
		}

		for i, ps := range c.Products {
			name := strings.TrimSpace(ps.Name)
			if name == "" {
				return fmt.Errorf("products[%d]: name is required", i)
			}
			if ps.Price.IsNegative() {
				return fmt.Errorf("products[%d] %q: price must be >= 0", i, name)
			}
			if ps.Stock < 0 {
				return fmt.Errorf("products[%d] %q: stock must be >= 0", i, name)
			}

			ref := strings.TrimSpace(ps.Category)
			catID, ok := catIDs[ref]
			if !ok {
				catID, ok = catIDs[strings.ToLower(ref)]
			}
			if !ok {
				return fmt.Errorf("products[%d] %q: unknown category %q", i, name, ps.Category)
			}

			slug, err := rowSlug(ps.Slug, name)
			if err != nil {
				return fmt.Errorf("products[%d] %q: %w", i, name, err)
			}
			if prev, dup := productSlugs[slug]; dup {
				return fmt.Errorf("products[%d] %q: slug %q already used by products[%d]", i, name, slug, prev)
			}
			productSlugs[slug] = i

			p := model.Product{
				Name:        name,
				Slug:        slug,
				Description: ps.Description,
				Price:       ps.Price.Decimal,
				Stock:       ps.Stock,
				CategoryID:  catID,
				IsActive:    ps.Active == nil || *ps.Active,
			}
			if img := strings.TrimSpace(ps.Image); img != "" {
				p.Image = &img
			}
			if _, err := r.Products().UpsertBySlug(ctx, p); err != nil {
				return fmt.Errorf("products[%d] %q: %w", i, name, err)
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// 明示のslugが無ければnameから作る
func rowSlug(explicit, name string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = model.Slugify(name)
	}
	if slug == "" {
		return "", model.ErrEmptySlug
	}
	return slug, nil
}
