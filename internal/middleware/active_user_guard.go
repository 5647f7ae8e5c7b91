package middleware

import (
	"net/http"

	"timepiece/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンのユーザーがまだ存在して有効か確認。
// 停止・削除されたユーザーのトークンはexp前でも401
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				c.Logger().Errorf("active user guard: %v", err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if user == nil || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
