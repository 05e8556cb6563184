// Package app contains the application setup for the fishery service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/finwatch/finwatch/internal/fishery/config"
	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/finwatch/finwatch/internal/fishery/transport/rest"
	"github.com/finwatch/finwatch/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	Users       service.UserService
	Ships       service.ShipService
	Permits     service.PermitService
	Trips       service.TripService
	Inspections service.InspectionService
	Tickets     service.TicketService
	Reports     service.ReportService
	Logger      *slog.Logger
}

// SetupDependencies wires the store and services together.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)

	return &Dependencies{
		Users:       service.NewUserService(pgStore),
		Ships:       service.NewShipService(pgStore, pgStore),
		Permits:     service.NewPermitService(pgStore, pgStore),
		Trips:       service.NewTripService(pgStore, pgStore),
		Inspections: service.NewInspectionService(pgStore, pgStore, pgStore, pgStore),
		Tickets:     service.NewTicketService(pgStore, pgStore),
		Reports:     service.NewReportService(pgStore, pgStore, pgStore, pgStore),
		Logger:      logger,
	}
}

// SetupHttpHandler builds the routed handler with the shared middleware
// chain, separate from the server so callers can mount it directly.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the fishery application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Users, deps.Ships, deps.Permits, deps.Trips, deps.Inspections, deps.Tickets, deps.Reports, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the fishery application.
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
