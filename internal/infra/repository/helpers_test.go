package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"timepiece/internal/domain/model"
	"timepiece/internal/infra/db"
	gormrepo "timepiece/internal/infra/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email, username string) model.User {
	t.Helper()
	u := model.User{
		Email:        email,
		Username:     username,
		FirstName:    "Taro",
		LastName:     "Yamada",
		Contact:      "09012345678",
		Address:      "Tokyo",
		Gender:       model.GenderMale,
		PasswordHash: "hashed",
		IsActive:     true,
	}
	require.NoError(t, gormrepo.NewUserGormRepository(gdb).Create(context.Background(), &u))
	return u
}

func seedProduct(t *testing.T, gdb *gorm.DB, name, price string, active bool) model.Product {
	t.Helper()
	ctx := context.Background()

	cat, err := gormrepo.NewCategoryGormRepository(gdb).UpsertBySlug(ctx, model.Category{Name: "Pilot"})
	require.NoError(t, err)

	p, err := gormrepo.NewProductGormRepository(gdb).UpsertBySlug(ctx, model.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      5,
		CategoryID: cat.ID,
		IsActive:   active,
	})
	require.NoError(t, err)
	return p
}
