package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/finwatch/finwatch/pkg/web"
)

// FindAllUsers lists users, optionally filtered by the role query parameter.
func (h *Handler) FindAllUsers(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var (
		users []service.UserDto
		err   error
	)
	if role := r.URL.Query().Get("role"); role != "" {
		switch store.UserRole(role) {
		case store.RoleAdmin, store.RoleInspector, store.RoleShipOwner, store.RoleRecreationalFisher:
		default:
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid role: "+role)
			return
		}
		users, err = h.users.FindByRole(r.Context(), store.UserRole(role))
	} else {
		users, err = h.users.FindAll(r.Context())
	}
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding users")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, users)
}

func (h *Handler) FindUserByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding user")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, user)
}

func (h *Handler) CreateShip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[service.ShipCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	ship, err := h.ships.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error creating ship")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, ship)
}

func (h *Handler) FindShipByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	ship, err := h.ships.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding ship")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, ship)
}

func (h *Handler) FindAllShips(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	ships, err := h.ships.FindAll(r.Context())
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error finding ships")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, ships)
}

func (h *Handler) UpdateShip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.ShipCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	ship, err := h.ships.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error updating ship")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, ship)
}

func (h *Handler) DeleteShip(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseIntID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.ships.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Error deleting ship")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
