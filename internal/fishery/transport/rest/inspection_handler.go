package rest

import (
	"net/http"
	"strconv"

	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/finwatch/finwatch/pkg/web"
)

func (h *Handler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[service.InspectionCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	inspection, err := h.inspections.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error creating inspection")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, inspection)
}

func (h *Handler) FindInspectionByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	inspection, err := h.inspections.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspection")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspection)
}

// FindInspections lists inspections, optionally filtered by the result query
// parameter.
func (h *Handler) FindInspections(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var (
		inspections []service.InspectionDto
		err         error
	)
	if result := r.URL.Query().Get("result"); result != "" {
		switch store.InspectionResult(result) {
		case store.ResultPassed, store.ResultFailed:
		default:
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid result: "+result)
			return
		}
		inspections, err = h.inspections.FindByResult(r.Context(), store.InspectionResult(result))
	} else {
		inspections, err = h.inspections.FindAll(r.Context())
	}
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspections")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspections)
}

func (h *Handler) FindInspectionsByInspector(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	inspections, err := h.inspections.FindByInspector(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspections")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspections)
}

// FindInspectionsByTarget lists inspections against a target, identified by the
// targetType and targetId query parameters.
func (h *Handler) FindInspectionsByTarget(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	targetType := store.TargetType(r.URL.Query().Get("targetType"))
	switch targetType {
	case store.TargetShip, store.TargetFisher, store.TargetFishingTrip:
	default:
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid targetType: "+string(targetType))
		return
	}
	targetID, err := strconv.ParseInt(r.URL.Query().Get("targetId"), 10, 64)
	if err != nil || targetID <= 0 {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid targetId: "+r.URL.Query().Get("targetId"))
		return
	}

	inspections, err := h.inspections.FindByTarget(r.Context(), targetType, targetID)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspections")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspections)
}

func (h *Handler) FindInspectionsWithFines(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	inspections, err := h.inspections.FindWithFines(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspections")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspections)
}

func (h *Handler) FindInspectionsWithUnpaidFines(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	inspections, err := h.inspections.FindWithUnpaidFines(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding inspections")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspections)
}

func (h *Handler) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.InspectionUpdateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	inspection, err := h.inspections.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error updating inspection")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspection)
}

// MarkFinePaid settles the fine attached to an inspection.
func (h *Handler) MarkFinePaid(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	inspection, err := h.inspections.MarkFinePaid(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error marking fine paid")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, inspection)
}

func (h *Handler) DeleteInspection(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.inspections.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error deleting inspection")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
