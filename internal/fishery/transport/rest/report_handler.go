package rest

import (
	"net/http"
	"time"

	"github.com/finwatch/finwatch/pkg/web"
)

const defaultTopFishers = 10

// ExpiringPermitsReport lists permits expiring within the days query parameter
// together with the owners to notify.
func (h *Handler) ExpiringPermitsReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	days, ok := web.ParseOptionalGt(r, w, mLogger, "days", defaultExpiringPermitDays)
	if !ok {
		return
	}
	report, err := h.reports.ExpiringPermits(r.Context(), days)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error building expiring permits report")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// ShipStatistics reports a single ship's activity for the year query
// parameter, defaulting to the current year.
func (h *Handler) ShipStatistics(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	year, ok := web.ParseOptionalGt(r, w, mLogger, "year", int32(time.Now().Year()))
	if !ok {
		return
	}
	stats, err := h.reports.ShipStatistics(r.Context(), id, int(year))
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error building ship statistics")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, stats)
}

// AllShipStatistics reports every ship's activity for the year, ordered by
// yearly catch.
func (h *Handler) AllShipStatistics(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	year, ok := web.ParseOptionalGt(r, w, mLogger, "year", int32(time.Now().Year()))
	if !ok {
		return
	}
	stats, err := h.reports.AllShipStatistics(r.Context(), int(year))
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error building fleet statistics")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, stats)
}

// CarbonFootprintReport rates ships by fuel burned per kilogram of catch.
func (h *Handler) CarbonFootprintReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	year, ok := web.ParseOptionalGt(r, w, mLogger, "year", int32(time.Now().Year()))
	if !ok {
		return
	}
	report, err := h.reports.CarbonFootprint(r.Context(), int(year))
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error building carbon footprint report")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// TopFishersReport ranks recreational fishers by active ticket count.
func (h *Handler) TopFishersReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseOptionalGt(r, w, mLogger, "limit", defaultTopFishers)
	if !ok {
		return
	}
	report, err := h.reports.TopFishers(r.Context(), int(limit))
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error building top fishers report")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}
