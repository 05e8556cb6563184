package rest

import (
	"errors"
	"net/http"
	"time"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/finwatch/finwatch/internal/retail/service"
	"github.com/finwatch/finwatch/pkg/web"
)

// CreateSale registers a new sale transaction.
//
// Business rejections (unknown store, employee or product, a duplicate sale in
// the same minute, or insufficient stock) all come back as 400 with a message
// body, so the caller can show the reason verbatim.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	dto, ok := decodeValid[service.SaleCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.sales.Create(r.Context(), dto)
	if err != nil {
		var stockErr *retailerrors.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			mLogger.WarnContext(r.Context(), "Sale rejected: insufficient stock",
				"product", stockErr.ProductName, "available", stockErr.Available, "requested", stockErr.Requested)
			web.RespondError(w, mLogger, http.StatusBadRequest, stockErr.Error())
		case errors.Is(err, retailerrors.ErrDuplicateSale):
			mLogger.WarnContext(r.Context(), "Sale rejected: duplicate within the same minute",
				"store_id", dto.StoreID, "employee_id", dto.EmployeeID)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case isNotFound(err):
			mLogger.WarnContext(r.Context(), "Sale rejected: unknown reference", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, retailerrors.ErrTransactionAborted):
			mLogger.ErrorContext(r.Context(), "Sale transaction aborted", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create sale")
		default:
			mLogger.ErrorContext(r.Context(), "Error creating sale", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create sale")
		}
		return
	}

	mLogger.InfoContext(r.Context(), "Sale created",
		"sale_id", created.ID, "store_id", created.StoreID, "total", created.TotalAmount)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindSaleByID handles the request to find a sale by its ID.
func (h *Handler) FindSaleByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	sale, err := h.sales.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find sale")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, sale)
}

// FindSales handles the request to list sales, optionally bounded by a
// from/to date range given as RFC 3339 query parameters.
func (h *Handler) FindSales(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" && toStr == "" {
		sales, err := h.sales.FindAll(r.Context())
		if err != nil {
			mLogger.ErrorContext(r.Context(), "Error listing sales", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list sales")
			return
		}
		web.RespondJSON(w, mLogger, http.StatusOK, sales)
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid 'from' parameter, expected RFC 3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid 'to' parameter, expected RFC 3339 timestamp")
		return
	}
	if to.Before(from) {
		web.RespondError(w, mLogger, http.StatusBadRequest, "'to' must not be before 'from'")
		return
	}

	sales, err := h.sales.FindByDateRange(r.Context(), from, to)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing sales by date range", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list sales")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, sales)
}

// FindSalesByStore lists all sales registered at one store.
func (h *Handler) FindSalesByStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if _, err := h.stores.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find store")
		return
	}

	sales, err := h.sales.FindByStore(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing sales by store", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list sales")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, sales)
}

// FindSalesByEmployee lists all sales registered by one employee.
func (h *Handler) FindSalesByEmployee(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if _, err := h.employees.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find employee")
		return
	}

	sales, err := h.sales.FindByEmployee(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing sales by employee", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list sales")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, sales)
}
