package handler

import (
	"errors"
	"net/http"
	"strings"

	"timepiece/internal/config"
	"timepiece/internal/middleware"
	auth "timepiece/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	profileUC  *auth.ProfileUsecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	profileUC *auth.ProfileUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		profileUC:  profileUC,
	}
}

// /auth/signup のリクエストボディ。形式チェックはタグ、パスワード強度と重複はusecase側
type signupRequest struct {
	FirstName       string  `json:"first_name" validate:"required,max=30"`
	MiddleName      *string `json:"middle_name" validate:"omitempty,max=30"`
	LastName        string  `json:"last_name" validate:"required,max=30"`
	Username        string  `json:"username" validate:"required,max=30,username"`
	Email           string  `json:"email" validate:"required,max=254,email"`
	Contact         string  `json:"contact" validate:"required,max=15"`
	Address         string  `json:"address" validate:"required"`
	Gender          string  `json:"gender" validate:"required,oneof=Male Female Other"`
	Password        string  `json:"password" validate:"required,eqfield=ConfirmPassword"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
}

// 空白だけの値はrequiredで弾きたいので検証前にtrim（パスワードは触らない）
func (r *signupRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Address = strings.TrimSpace(r.Address)
	r.Gender = strings.TrimSpace(r.Gender)
	if r.MiddleName != nil {
		m := strings.TrimSpace(*r.MiddleName)
		if m == "" {
			r.MiddleName = nil
		} else {
			r.MiddleName = &m
		}
	}
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, middleware.AuthJWT(cfg))

	e.GET("/me", h.Me, middleware.AuthJWT(cfg))
}

// SignupはPOST /auth/signupのハンドラ
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	_, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Contact:         req.Contact,
		Address:         req.Address,
		Gender:          req.Gender,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error", Fields: ve.Fields})
		}
		switch err {
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{
				Error:  "conflict",
				Fields: map[string]string{"email": "user with this email already exists."},
			})
		case auth.ErrUsernameAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{
				Error:  "conflict",
				Fields: map[string]string{"username": "user with this username already exists."},
			})
		case auth.ErrAccountAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})
		default:
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// LoginはPOST /auth/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid credentials"})
		default:
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusOK, out)
}

// GET /me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.profileUC.Execute(c.Request().Context(), userID, requestOrigin(c))
	if err != nil {
		switch err {
		case auth.ErrUnauthorized:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		default:
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusOK, out)
}
