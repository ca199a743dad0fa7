package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/service"
)

type ParkingHandler struct {
	Service *service.ParkingService
}

func NewParkingHandler(svc *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{Service: svc}
}

func (h *ParkingHandler) List(w http.ResponseWriter, r *http.Request) {
	lots, err := h.Service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lots)
}

// Available handles GET /parking/available?startTime=...&endTime=... Both
// bounds are required RFC 3339 timestamps.
func (h *ParkingHandler) Available(w http.ResponseWriter, r *http.Request) {
	startRaw := r.URL.Query().Get("startTime")
	endRaw := r.URL.Query().Get("endTime")
	if startRaw == "" || endRaw == "" {
		writeBadRequest(w, "startTime and endTime are required")
		return
	}
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		writeBadRequest(w, "Invalid date format")
		return
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		writeBadRequest(w, "Invalid date format")
		return
	}

	lots, err := h.Service.ListAvailable(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lots)
}

func (h *ParkingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	lot, err := h.Service.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lot)
}

func (h *ParkingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateParkingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, httperrors.BadRequest("name, location, and capacity are required"))
		return
	}

	lot, err := h.Service.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lot)
}

func (h *ParkingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req entities.UpdateParkingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, httperrors.BadRequest("capacity must be a positive integer"))
		return
	}

	lot, err := h.Service.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lot)
}

func (h *ParkingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// pathID parses the {id} route variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "Invalid ID format")
		return 0, false
	}
	return id, true
}
