package auth

import (
	"errors"
	"sort"
	"strings"
)

var (
	// メールまたはパスワードが違う（停止ユーザーも同じ扱い）
	ErrInvalidCredentials = errors.New("invalid credentials")

	// 競合
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// unique制約で弾かれた（同時登録）
	ErrAccountAlreadyExists = errors.New("account already exists")

	// トークンのユーザーがいない/停止
	ErrUnauthorized = errors.New("unauthorized")
)

// 項目ごとの入力エラー
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}
