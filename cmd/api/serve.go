package main

import (
	"context"
	"time"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	"github.com/Raviram02/HostelBite/internal/handler"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	"github.com/Raviram02/HostelBite/internal/infra/gateway"
	"github.com/Raviram02/HostelBite/internal/metrics"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/payment"
	"github.com/Raviram02/HostelBite/internal/server"
	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/spf13/cobra"
)

// matches the seller cookie lifetime of the dashboard
const sellerTokenTTL = 7 * 24 * time.Hour

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create or update tables/indexes before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("starting", "version", Version, "env", cfg.GoEnv, "store", cfg.StoreDriver)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	if autoMigrate {
		if err := st.migrate(ctx); err != nil {
			return err
		}
	}

	var publisher usecase.EventPublisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, logger)
		if err != nil {
			return err
		}
		defer func() { _ = nc.Drain() }()
		publisher = events.NewNATSPublisher(nc, logger)
	}

	m := metrics.New()
	clock := &realClock{}
	adapters := buildAdapters(cfg)
	calc := pricing.NewCalculator(pricing.Policy{
		TaxRate:         cfg.TaxRate,
		RoomDeliveryFee: cfg.RoomDeliveryFee,
		Currency:        cfg.Currency,
	}, st.products)

	orderUC := usecase.NewOrderUsecase(st.orders, calc, adapters, &uuidGenerator{}, clock, publisher, m, logger)
	paymentUC := usecase.NewPaymentUsecase(st.tx, st.orders, adapters, clock, publisher, m, logger)
	sellerUC := usecase.NewSellerOrderUsecase(st.tx, st.orders, st.audits, clock, publisher, m, logger)
	cartUC := usecase.NewCartUsecase(st.carts, st.products)
	authUC := usecase.NewSellerAuthUsecase(
		cfg.SellerEmail,
		cfg.SellerPasswordHash,
		usecase.NewBcryptPasswordVerifier(),
		middleware.NewTokenIssuer(cfg.JWTSecret, sellerTokenTTL),
		clock,
		logger,
	)

	e := server.New(cfg, logger, server.Handlers{
		Orders:       handler.NewOrderHandler(orderUC, paymentUC),
		SellerOrders: handler.NewSellerOrderHandler(sellerUC),
		Cart:         handler.NewCartHandler(cartUC),
		SellerAuth:   handler.NewSellerAuthHandler(authUC, cfg),
		Webhook:      handler.NewWebhookHandler(paymentUC, logger),
		Health:       handler.NewHealthHandler(st.ping, m.Registry),
	})

	return server.Start(ctx, e, listenAddr(cfg.Port), logger)
}

// cash is always accepted; gateways only when their keys are configured
func buildAdapters(cfg config.Config) *payment.Registry {
	adapters := payment.NewRegistry(payment.NewCODAdapter())
	if cfg.RazorpayEnabled() {
		adapters.Register(payment.NewRazorpayAdapter(
			gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpaySecretKey),
			cfg.RazorpaySecretKey,
			cfg.Currency,
		))
	}
	if cfg.StripeEnabled() {
		adapters.Register(payment.NewStripeAdapter(
			gateway.NewStripeClient(cfg.StripeSecretKey),
			cfg.StripeWebhookSecret,
			cfg.Currency,
		))
	}
	return adapters
}

func listenAddr(port string) string {
	if port == "" {
		return ":4000"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}
