// Package rest provides HTTP handlers for the retail back-office API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/finwatch/finwatch/internal/retail/service"
	"github.com/finwatch/finwatch/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	stores     service.StoreService
	employees  service.EmployeeService
	categories service.CategoryService
	products   service.ProductService
	sales      service.SaleService
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewHandler creates a new retail API handler with the provided services.
func NewHandler(
	stores service.StoreService,
	employees service.EmployeeService,
	categories service.CategoryService,
	products service.ProductService,
	sales service.SaleService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		stores:     stores,
		employees:  employees,
		categories: categories,
		products:   products,
		sales:      sales,
		validate:   validator.New(),
		logger:     logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the retail service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.FindAllStores)
			r.Post("/", h.CreateStore)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindStoreByID)
				r.Put("/", h.UpdateStore)
				r.Delete("/", h.DeleteStore)
				r.Get("/employees", h.FindEmployeesByStore)
				r.Get("/sales", h.FindSalesByStore)
			})
		})
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.FindAllEmployees)
			r.Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindEmployeeByID)
				r.Put("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)
				r.Get("/sales", h.FindSalesByEmployee)
			})
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.FindAllCategories)
			r.Post("/", h.CreateCategory)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindCategoryByID)
				r.Put("/", h.UpdateCategory)
				r.Delete("/", h.DeleteCategory)
				r.Get("/products", h.FindProductsByCategory)
			})
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.FindAllProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/low-stock", h.FindLowStockProducts)
			r.Get("/expiring", h.FindExpiringProducts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindProductByID)
				r.Put("/", h.UpdateProduct)
				r.Delete("/", h.DeleteProduct)
			})
		})
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.FindSales)
			r.Post("/", h.CreateSale)
			r.Get("/{id}", h.FindSaleByID)
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

// isNotFound reports whether err is one of the retail reference-lookup failures.
func isNotFound(err error) bool {
	return errors.Is(err, retailerrors.ErrStoreNotFound) ||
		errors.Is(err, retailerrors.ErrEmployeeNotFound) ||
		errors.Is(err, retailerrors.ErrCategoryNotFound) ||
		errors.Is(err, retailerrors.ErrProductNotFound) ||
		errors.Is(err, retailerrors.ErrSaleNotFound)
}

// respondLookupError maps CRUD errors to a response: 404 for missing
// references, 400 for constraint conflicts, 500 otherwise.
func (h *Handler) respondLookupError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, fallback string) {
	switch {
	case isNotFound(err):
		mLogger.WarnContext(r.Context(), "Resource not found", "error", err)
		web.RespondError(w, mLogger, http.StatusNotFound, err.Error())
	case errors.Is(err, retailerrors.ErrProductCodeTaken):
		mLogger.WarnContext(r.Context(), "Constraint conflict", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	default:
		mLogger.ErrorContext(r.Context(), fallback, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fallback)
	}
}
