package api

import (
	"encoding/json"
	"net/http"

	"github.com/nathanndk/BitHealth-parking-app/internal/auth"
	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, httperrors.Unauthorized("Authentication required"))
		return
	}

	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid startTime or endTime")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "parkingId, startTime, and endTime are required")
		return
	}

	res, err := h.Service.Create(user, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListMine handles GET /reservations?status=&past= for the calling user.
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, httperrors.Unauthorized("Authentication required"))
		return
	}

	var filter entities.ListReservationsFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := db.ParseReservationStatus(raw)
		if err != nil {
			writeBadRequest(w, "status must be PENDING, CONFIRMED, or CANCELED")
			return
		}
		filter.Status = &status
	}
	switch r.URL.Query().Get("past") {
	case "":
	case "true":
		v := true
		filter.Past = &v
	case "false":
		v := false
		filter.Past = &v
	default:
		writeBadRequest(w, "past must be true or false")
		return
	}

	items, err := h.Service.ListForUser(user.ID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, httperrors.Unauthorized("Authentication required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.Service.GetByID(user, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, httperrors.Unauthorized("Authentication required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.Service.Cancel(user, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
