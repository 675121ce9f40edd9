package handler

import (
	"net/http"
	"strings"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/usecase"
	"github.com/Raviram02/HostelBite/internal/validator"

	"github.com/labstack/echo/v4"
)

// customer side of /api/order
type OrderHandler struct {
	orders   *usecase.OrderUsecase
	payments *usecase.PaymentUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, payments *usecase.PaymentUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

type OrderItemRequest struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items     []OrderItemRequest     `json:"items"`
	Address   *model.DeliveryAddress `json:"address"`
	OrderMode string                 `json:"orderMode"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
	UserID            string `json:"userId"`
}

type RazorpayOrderResponse struct {
	Success       bool                   `json:"success"`
	OrderID       string                 `json:"orderId"`
	RazorpayOrder map[string]interface{} `json:"razorpayOrder"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}

type OrderListResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/order")
	auth := middleware.AuthJWT(cfg)

	g.POST("/cod", h.placeCOD, auth)
	g.POST("/razorpay", h.placeRazorpay, auth)
	g.POST("/razorpay/verify", h.verifyRazorpay, auth)
	g.POST("/stripe", h.placeStripe, auth)
	g.GET("/user", h.listMine, auth)
}

func (h *OrderHandler) placeCOD(c echo.Context) error {
	if _, err := h.place(c, model.PaymentMethodCOD); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success("Order Placed Successfully"))
}

func (h *OrderHandler) placeRazorpay(c echo.Context) error {
	out, err := h.place(c, model.PaymentMethodRazorpay)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, RazorpayOrderResponse{
		Success:       true,
		OrderID:       out.Order.ID,
		RazorpayOrder: out.Payment.GatewayOrder,
	})
}

func (h *OrderHandler) placeStripe(c echo.Context) error {
	out, err := h.place(c, model.PaymentMethodStripe)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CheckoutResponse{
		Success: true,
		URL:     out.Payment.RedirectURL,
		OrderID: out.Order.ID,
	})
}

func (h *OrderHandler) place(c echo.Context, method model.PaymentMethod) (usecase.PlaceOrderOutput, error) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.PlaceOrderOutput{}, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return usecase.PlaceOrderOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	//pickup orders ignore the address
	if req.Address != nil && model.OrderMode(strings.TrimSpace(req.OrderMode)) == model.OrderModeRoom {
		if err := validator.ValidateDeliveryAddress(*req.Address); err != nil {
			return usecase.PlaceOrderOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "Invalid phone number")
		}
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}

	return h.orders.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Method:    method,
		Items:     items,
		Address:   req.Address,
		OrderMode: req.OrderMode,
		Origin:    c.Request().Header.Get("Origin"),
	})
}

func (h *OrderHandler) verifyRazorpay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	if _, err := h.payments.VerifyGatewayPayment(c.Request().Context(), userID, usecase.VerifyPaymentInput{
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
		OrderID:          req.OrderID,
		UserID:           req.UserID,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success("Payment verified successfully"))
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fail("unauthorized"))
	}

	page, okPage := queryInt(c, "page", 1)
	limit, okLimit := queryInt(c, "limit", 50)
	if !okPage || !okLimit {
		return c.JSON(http.StatusBadRequest, fail("invalid paging"))
	}

	orders, err := h.orders.ListMyOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderListResponse{Success: true, Orders: orders})
}
