package handler

import (
	"net/http"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type ReplaceCartRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type CartEnvelope struct {
	Success bool                 `json:"success"`
	Cart    usecase.CartResponse `json:"cart"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart")
	auth := middleware.AuthJWT(cfg)

	g.GET("", h.getCart, auth)
	g.PUT("", h.replaceCart, auth)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CartEnvelope{Success: true, Cart: out})
}

func (h *CartHandler) replaceCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	var req ReplaceCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	items := make([]usecase.CartItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}

	out, err := h.uc.ReplaceCart(c.Request().Context(), userID, items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CartEnvelope{Success: true, Cart: out})
}
