package handler

import (
	"net/http"
	"strconv"

	"timepiece/internal/config"
	"timepiece/internal/middleware"
	"timepiece/internal/repository"
	"timepiece/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// idは商品ID
type OrderLineRequest struct {
	ID         int64            `json:"id" validate:"required,gt=0"`
	Quantity   int64            `json:"quantity" validate:"required,gte=1"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

type OrderCreateRequest struct {
	Contact       string             `json:"contact" validate:"required,max=15"`
	Address       string             `json:"address" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"omitempty,max=20"`
	CartItems     []OrderLineRequest `json:"cart_items" validate:"required,min=1,dive"`
	CartItemIDs   []int64            `json:"cart_item_ids" validate:"omitempty,dive,gt=0"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ActiveUserGuard(userRepo))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		lines = append(lines, usecase.OrderLineInput{
			ProductID:  it.ID,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}

	//二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, requestOrigin(c), usecase.PlaceOrderInput{
		Contact:        req.Contact,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		CartItems:      lines,
		CartItemIDs:    req.CartItemIDs,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID, requestOrigin(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), userID, requestOrigin(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
