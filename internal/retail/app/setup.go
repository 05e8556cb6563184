// Package app contains the application setup for the retail service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/finwatch/finwatch/internal/retail/config"
	"github.com/finwatch/finwatch/internal/retail/service"
	"github.com/finwatch/finwatch/internal/retail/store"
	"github.com/finwatch/finwatch/internal/retail/transport/rest"
	"github.com/finwatch/finwatch/pkg/messaging"
	"github.com/finwatch/finwatch/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	Stores     service.StoreService
	Employees  service.EmployeeService
	Categories service.CategoryService
	Products   service.ProductService
	Sales      service.SaleService
	Logger     *slog.Logger
}

// SetupDependencies wires the store, services and event publisher together.
// publisher may be nil; the sale workflow then commits without emitting events.
func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)

	return &Dependencies{
		Stores:     service.NewStoreService(pgStore),
		Employees:  service.NewEmployeeService(pgStore),
		Categories: service.NewCategoryService(pgStore),
		Products:   service.NewProductService(pgStore),
		Sales:      service.NewSaleService(pgStore, publisher),
		Logger:     logger,
	}
}

// SetupHttpHandler builds the routed handler with the shared middleware
// chain, separate from the server so callers can mount it directly.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the retail application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Stores, deps.Employees, deps.Categories, deps.Products, deps.Sales, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the retail application.
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
