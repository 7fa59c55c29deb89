// Package app contains the application setup for the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parfumerie-dz/storefront/internal/auth"
	"github.com/parfumerie-dz/storefront/internal/cart"
	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/checkout"
	"github.com/parfumerie-dz/storefront/internal/config"
	"github.com/parfumerie-dz/storefront/internal/favorites"
	"github.com/parfumerie-dz/storefront/internal/order"
	"github.com/parfumerie-dz/storefront/internal/storage"
	"github.com/parfumerie-dz/storefront/internal/transport/rest"
	"github.com/parfumerie-dz/storefront/pkg/messaging"
	"github.com/parfumerie-dz/storefront/pkg/server"
)

// Dependencies holds the wired services of the storefront.
type Dependencies struct {
	ProductService   catalog.ProductService
	CartService      cart.CartService
	FavoritesService favorites.FavoritesService
	CheckoutService  checkout.CheckoutService
	OrderService     order.OrderService
	Verifier         auth.Verifier
	RoleChecker      auth.RoleChecker
	Publisher        *messaging.QueuedPublisher
	Logger           *slog.Logger
}

// SetupDependencies wires stores and services. The order publisher starts
// detached: events queue until the NATS transport attaches at startup.
func SetupDependencies(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	fileStore := storage.NewFileStore(cfg.Storage.Dir, logger)

	products := catalog.NewService(catalog.NewPgStore(dbPool))
	carts := cart.NewService(fileStore)
	favs := favorites.NewService(fileStore)

	publisher := messaging.NewQueuedPublisher(0, logger)
	orders := order.NewService(order.NewPgStore(dbPool), publisher, logger)
	checkoutSvc := checkout.NewService(carts, orders, logger)

	verifier, err := auth.NewJWTVerifier(ctx, cfg.IdP)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT verifier: %w", err)
	}

	return &Dependencies{
		ProductService:   products,
		CartService:      carts,
		FavoritesService: favs,
		CheckoutService:  checkoutSvc,
		OrderService:     orders,
		Verifier:         verifier,
		RoleChecker:      auth.NewPgRoleChecker(dbPool, logger),
		Publisher:        publisher,
		Logger:           logger,
	}, nil
}

// SetupHttpHandler initializes the HTTP routes for the storefront.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(
		deps.ProductService,
		deps.CartService,
		deps.FavoritesService,
		deps.CheckoutService,
		deps.OrderService,
		deps.Logger,
	)
	handler.RegisterRoutes(mux, auth.AdminOnly(deps.Verifier, deps.RoleChecker))
}

// SetupHttpServer creates and configures an HTTP server for the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
