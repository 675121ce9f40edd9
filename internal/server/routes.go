package server

import (
	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Orders       *handler.OrderHandler
	SellerOrders *handler.SellerOrderHandler
	Cart         *handler.CartHandler
	SellerAuth   *handler.SellerAuthHandler
	Webhook      *handler.WebhookHandler
	Health       *handler.HealthHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Webhook.RegisterRoutes(e)
	h.SellerAuth.RegisterRoutes(e)
	h.Orders.RegisterRoutes(e, cfg)
	h.SellerOrders.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
}
