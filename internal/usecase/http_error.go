package usecase

import (
	"errors"
	"fmt"
)

// handlerでそのままstatus/JSONにする
type HTTPError struct {
	Status  int
	Message string
	// 項目ごとのエラー（password: "..."）
	Fields map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewFieldError(status int, message string, fields map[string]string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
