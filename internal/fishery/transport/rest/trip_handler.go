package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/pkg/web"
	"github.com/shopspring/decimal"
)

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[service.TripCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	trip, err := h.trips.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error creating trip")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, trip)
}

func (h *Handler) FindTripByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	trip, err := h.trips.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding trip")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trip)
}

func (h *Handler) FindAllTrips(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	trips, err := h.trips.FindAll(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding trips")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trips)
}

func (h *Handler) FindTripsByShip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if _, err := h.ships.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding ship")
		return
	}
	trips, err := h.trips.FindByShip(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding trips")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trips)
}

func (h *Handler) FindActiveTrips(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	trips, err := h.trips.FindActive(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding active trips")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trips)
}

func (h *Handler) FindCompletedTrips(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	trips, err := h.trips.FindCompleted(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding completed trips")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trips)
}

func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.TripUpdateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	trip, err := h.trips.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error updating trip")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trip)
}

type tripCompleteRequest struct {
	FuelUsed *decimal.Decimal `json:"fuelUsed,omitempty"`
}

// CompleteTrip ends a running trip, stamping the end time server side.
func (h *Handler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[tripCompleteRequest](h, w, r, mLogger)
	if !ok {
		return
	}
	trip, err := h.trips.Complete(r.Context(), id, dto.FuelUsed)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error completing trip")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, trip)
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.trips.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error deleting trip")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
