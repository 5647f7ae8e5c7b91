package handler

import (
	"errors"
	"fmt"
	"net/http"

	"timepiece/internal/middleware"
	"timepiece/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			c.Logger().Errorf("request_id=%s: %v", requestID(c), err)
			return c.JSON(he.Status, ErrorResponse{Error: "internal error"})
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Fields: he.Fields})
	}

	//500（中身はログだけ）
	c.Logger().Errorf("request_id=%s: %v", requestID(c), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// echo自体のエラー（404ルート, 405, bindの失敗など）も同じ形で返す
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		msg := http.StatusText(ee.Code)
		if ee.Code < http.StatusInternalServerError {
			if s, ok := ee.Message.(string); ok && s != "" {
				msg = s
			}
		} else {
			c.Logger().Errorf("request_id=%s: %v", requestID(c), err)
			msg = "internal error"
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ee.Code)
			return
		}
		_ = c.JSON(ee.Code, ErrorResponse{Error: msg})
		return
	}

	_ = writeError(c, err)
}

// Validateの前に整形したいリクエスト
type normalizer interface {
	normalize()
}

// Bind + Validate。どちらも失敗は400
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		if _, ok := usecase.AsHTTPError(err); ok {
			return err
		}
		return usecase.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
	}
	return nil
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

// 画像URLを組み立てるための scheme://host
func requestOrigin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
