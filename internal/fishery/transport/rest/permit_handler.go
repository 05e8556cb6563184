package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/pkg/web"
)

const defaultExpiringPermitDays = 30

func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[service.PermitCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	permit, err := h.permits.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error creating permit")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, permit)
}

func (h *Handler) FindPermitByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	permit, err := h.permits.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding permit")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permit)
}

func (h *Handler) FindAllPermits(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	permits, err := h.permits.FindAll(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding permits")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permits)
}

func (h *Handler) FindPermitsByShip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if _, err := h.ships.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding ship")
		return
	}
	permits, err := h.permits.FindByShip(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding permits")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permits)
}

// FindExpiringPermits lists permits expiring within the days query parameter.
func (h *Handler) FindExpiringPermits(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	days, ok := web.ParseOptionalGt(r, w, mLogger, "days", defaultExpiringPermitDays)
	if !ok {
		return
	}
	permits, err := h.permits.FindExpiring(r.Context(), days)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding expiring permits")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permits)
}

func (h *Handler) FindActivePermits(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	permits, err := h.permits.FindActive(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding active permits")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permits)
}

func (h *Handler) FindExpiredPermits(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	permits, err := h.permits.FindExpired(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding expired permits")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permits)
}

func (h *Handler) UpdatePermit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.PermitCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	permit, err := h.permits.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error updating permit")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, permit)
}

func (h *Handler) DeletePermit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.permits.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error deleting permit")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
