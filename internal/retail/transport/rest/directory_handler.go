package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/retail/service"
	"github.com/finwatch/finwatch/pkg/web"
)

// CreateStore handles the request to register a new store.
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	dto, ok := decodeValid[service.StoreCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.stores.Create(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating store", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create store")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindStoreByID handles the request to find a store by its ID.
func (h *Handler) FindStoreByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.stores.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find store")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllStores handles the request to list all stores.
func (h *Handler) FindAllStores(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	stores, err := h.stores.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing stores", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list stores")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, stores)
}

// UpdateStore handles the request to update an existing store.
func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.StoreCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.stores.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to update store")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteStore handles the request to delete a store.
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.stores.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to delete store")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateEmployee handles the request to register a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	dto, ok := decodeValid[service.EmployeeCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.employees.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to create employee")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindEmployeeByID handles the request to find an employee by their ID.
func (h *Handler) FindEmployeeByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.employees.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find employee")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllEmployees handles the request to list all employees.
func (h *Handler) FindAllEmployees(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	employees, err := h.employees.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing employees", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list employees")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, employees)
}

// FindEmployeesByStore lists the employees assigned to one store.
func (h *Handler) FindEmployeesByStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if _, err := h.stores.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find store")
		return
	}

	employees, err := h.employees.FindByStore(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing employees by store", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list employees")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, employees)
}

// UpdateEmployee handles the request to update an existing employee.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.EmployeeCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.employees.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to update employee")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteEmployee handles the request to delete an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to delete employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
