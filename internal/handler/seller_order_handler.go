package handler

import (
	"net/http"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/labstack/echo/v4"
)

// seller dashboard side of /api/order
type SellerOrderHandler struct {
	uc *usecase.SellerOrderUsecase
}

func NewSellerOrderHandler(uc *usecase.SellerOrderUsecase) *SellerOrderHandler {
	return &SellerOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

// absent fields are left as they are
type OrderUpdateRequest struct {
	Status *string `json:"status"`
	IsPaid *bool   `json:"isPaid"`
}

type SellerOrderListResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
	Total   int64         `json:"total"`
}

type OrderResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Order   model.Order `json:"order"`
}

type OrderHistoryResponse struct {
	Success bool             `json:"success"`
	Logs    []model.AuditLog `json:"logs"`
}

func (h *SellerOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/order")
	auth := middleware.AuthJWT(cfg)
	seller := middleware.SellerRoleGuard()

	g.GET("/seller", h.list, auth, seller)
	g.PUT("/status/:orderId", h.updateStatus, auth, seller)
	g.PUT("/mark-paid/:orderId", h.markPaid, auth, seller)
	g.PATCH("/seller/:orderId", h.update, auth, seller)
	g.GET("/seller/:orderId/history", h.history, auth, seller)
}

func (h *SellerOrderHandler) list(c echo.Context) error {
	page, okPage := queryInt(c, "page", 1)
	limit, okLimit := queryInt(c, "limit", 50)
	if !okPage || !okLimit {
		return c.JSON(http.StatusBadRequest, fail("invalid paging"))
	}

	out, err := h.uc.List(c.Request().Context(), usecase.SellerOrderListInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SellerOrderListResponse{Success: true, Orders: out.Orders, Total: out.Total})
}

func (h *SellerOrderHandler) updateStatus(c echo.Context) error {
	actor, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), actor, c.Param("orderId"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Success: true, Message: "Order status updated", Order: order})
}

func (h *SellerOrderHandler) markPaid(c echo.Context) error {
	actor, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	order, err := h.uc.MarkPaid(c.Request().Context(), actor, c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Success: true, Message: "Order marked as paid", Order: order})
}

func (h *SellerOrderHandler) update(c echo.Context) error {
	actor, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	in := usecase.UpdateOrderInput{IsPaid: req.IsPaid}
	if req.Status != nil {
		st, err := model.ParseOrderStatus(*req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, fail("Invalid status"))
		}
		in.Status = &st
	}

	order, err := h.uc.UpdateOrder(c.Request().Context(), actor, c.Param("orderId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Success: true, Message: "Order updated", Order: order})
}

func (h *SellerOrderHandler) history(c echo.Context) error {
	limit, okLimit := queryInt(c, "limit", 50)
	offset, okOffset := queryInt(c, "offset", 0)
	if !okLimit || !okOffset {
		return c.JSON(http.StatusBadRequest, fail("invalid paging"))
	}

	logs, err := h.uc.History(c.Request().Context(), c.Param("orderId"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderHistoryResponse{Success: true, Logs: logs})
}
