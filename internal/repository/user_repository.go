package repository

import (
	"context"
	"time"

	"timepiece/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email/username重複はErrDuplicate
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければnil
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールからユーザーを一件取得する。無ければnil
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// 最後のログイン更新
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
