package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// unique制約違反（email/username/slugなど）
	ErrDuplicate = errors.New("duplicate")
)
