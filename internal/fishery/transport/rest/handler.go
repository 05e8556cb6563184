// Package rest provides HTTP handlers for the fishery regulation API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	users       service.UserService
	ships       service.ShipService
	permits     service.PermitService
	trips       service.TripService
	inspections service.InspectionService
	tickets     service.TicketService
	reports     service.ReportService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewHandler creates a new fishery API handler with the provided services.
func NewHandler(
	users service.UserService,
	ships service.ShipService,
	permits service.PermitService,
	trips service.TripService,
	inspections service.InspectionService,
	tickets service.TicketService,
	reports service.ReportService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		users:       users,
		ships:       ships,
		permits:     permits,
		trips:       trips,
		inspections: inspections,
		tickets:     tickets,
		reports:     reports,
		validate:    validator.New(),
		logger:      logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the fishery service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.FindAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindUserByID)
				r.Get("/tickets", h.FindTicketsByUser)
				r.Get("/tickets/active", h.FindActiveTicketForUser)
				r.Get("/inspections", h.FindInspectionsByInspector)
			})
		})
		r.Route("/ships", func(r chi.Router) {
			r.Get("/", h.FindAllShips)
			r.Post("/", h.CreateShip)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindShipByID)
				r.Put("/", h.UpdateShip)
				r.Delete("/", h.DeleteShip)
				r.Get("/permits", h.FindPermitsByShip)
				r.Get("/trips", h.FindTripsByShip)
				r.Get("/statistics", h.ShipStatistics)
			})
		})
		r.Route("/permits", func(r chi.Router) {
			r.Get("/", h.FindAllPermits)
			r.Post("/", h.CreatePermit)
			r.Get("/expiring", h.FindExpiringPermits)
			r.Get("/active", h.FindActivePermits)
			r.Get("/expired", h.FindExpiredPermits)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindPermitByID)
				r.Put("/", h.UpdatePermit)
				r.Delete("/", h.DeletePermit)
			})
		})
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", h.FindAllTrips)
			r.Post("/", h.CreateTrip)
			r.Get("/active", h.FindActiveTrips)
			r.Get("/completed", h.FindCompletedTrips)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindTripByID)
				r.Put("/", h.UpdateTrip)
				r.Delete("/", h.DeleteTrip)
				r.Post("/complete", h.CompleteTrip)
			})
		})
		r.Route("/inspections", func(r chi.Router) {
			r.Get("/", h.FindInspections)
			r.Post("/", h.CreateInspection)
			r.Get("/by-target", h.FindInspectionsByTarget)
			r.Get("/with-fines", h.FindInspectionsWithFines)
			r.Get("/unpaid-fines", h.FindInspectionsWithUnpaidFines)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindInspectionByID)
				r.Put("/", h.UpdateInspection)
				r.Delete("/", h.DeleteInspection)
				r.Post("/fine/pay", h.MarkFinePaid)
			})
		})
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.FindAllTickets)
			r.Post("/", h.PurchaseTicket)
			r.Get("/active", h.FindActiveTickets)
			r.Get("/expired", h.FindExpiredTickets)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindTicketByID)
				r.Delete("/", h.DeleteTicket)
			})
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/expiring-permits", h.ExpiringPermitsReport)
			r.Get("/ship-statistics", h.AllShipStatistics)
			r.Get("/carbon-footprint", h.CarbonFootprintReport)
			r.Get("/top-fishers", h.TopFishersReport)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeValid decodes the request body into T and validates it, writing the
// error response itself when either step fails.
func decodeValid[T any](h *Handler, w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (T, bool) {
	var dto T
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return dto, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	return dto, true
}

// isNotFound reports whether err is one of the fishery reference-lookup failures.
func isNotFound(err error) bool {
	return errors.Is(err, fisheryerrors.ErrUserNotFound) ||
		errors.Is(err, fisheryerrors.ErrShipNotFound) ||
		errors.Is(err, fisheryerrors.ErrPermitNotFound) ||
		errors.Is(err, fisheryerrors.ErrTripNotFound) ||
		errors.Is(err, fisheryerrors.ErrInspectionNotFound) ||
		errors.Is(err, fisheryerrors.ErrFineNotFound) ||
		errors.Is(err, fisheryerrors.ErrTicketNotFound)
}

// isRejected reports whether err is a business-rule rejection.
func isRejected(err error) bool {
	return errors.Is(err, fisheryerrors.ErrRegistrationNumberTaken) ||
		errors.Is(err, fisheryerrors.ErrInvalidPeriod) ||
		errors.Is(err, fisheryerrors.ErrTripAlreadyCompleted) ||
		errors.Is(err, fisheryerrors.ErrInvalidInspector) ||
		errors.Is(err, fisheryerrors.ErrInvalidTargetType) ||
		errors.Is(err, fisheryerrors.ErrNotRecreationalFisher) ||
		errors.Is(err, fisheryerrors.ErrInvalidTicketType)
}

// respondLookupError maps CRUD errors to a response: 404 for missing
// references, 400 for business-rule rejections, 500 otherwise.
func (h *Handler) respondLookupError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, fallback string) {
	switch {
	case isNotFound(err):
		mLogger.WarnContext(r.Context(), "Resource not found", "error", err)
		web.RespondError(w, mLogger, http.StatusNotFound, err.Error())
	case isRejected(err):
		mLogger.WarnContext(r.Context(), "Request rejected", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	default:
		mLogger.ErrorContext(r.Context(), fallback, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fallback)
	}
}
