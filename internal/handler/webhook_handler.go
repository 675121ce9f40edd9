package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/labstack/echo/v4"
)

// stripe sends at most a few KB per event
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	uc     *usecase.PaymentUsecase
	logger *slog.Logger
}

func NewWebhookHandler(uc *usecase.PaymentUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, logger: logger}
}

type WebhookAck struct {
	Received bool `json:"received"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/stripe", h.stripe)
}

// raw body: the signature covers the exact bytes
func (h *WebhookHandler) stripe(c echo.Context) error {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBody))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.logger.Warn("stripe webhook body too large", "limit", tooLarge.Limit)
		return c.JSON(http.StatusRequestEntityTooLarge, fail("Webhook Error: payload too large"))
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("Webhook Error: unreadable body"))
	}

	res, err := h.uc.HandleCheckoutWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		return writeError(c, err)
	}

	h.logger.Debug("stripe webhook handled", "event", res.EventType, "outcome", res.Outcome, "order_id", res.OrderID)
	return c.JSON(http.StatusOK, WebhookAck{Received: true})
}
