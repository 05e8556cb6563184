package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/pkg/web"
)

func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[service.TicketPurchaseDto](h, w, r, mLogger)
	if !ok {
		return
	}
	ticket, err := h.tickets.Purchase(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error purchasing ticket")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, ticket)
}

func (h *Handler) FindTicketByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	ticket, err := h.tickets.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding ticket")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, ticket)
}

func (h *Handler) FindAllTickets(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	tickets, err := h.tickets.FindAll(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding tickets")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, tickets)
}

func (h *Handler) FindTicketsByUser(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	tickets, err := h.tickets.FindByUser(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding tickets")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, tickets)
}

func (h *Handler) FindActiveTicketForUser(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	ticket, err := h.tickets.FindActiveForUser(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding active ticket")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, ticket)
}

func (h *Handler) FindActiveTickets(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	tickets, err := h.tickets.FindActive(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding active tickets")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, tickets)
}

func (h *Handler) FindExpiredTickets(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	tickets, err := h.tickets.FindExpired(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding expired tickets")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, tickets)
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.tickets.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error deleting ticket")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
