package api

import (
	"encoding/json"
	"net/http"

	"github.com/nathanndk/BitHealth-parking-app/internal/auth"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/service"
)

type AuthHandler struct {
	Service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req entities.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, httperrors.Unprocessable("Validation failed", validationIssues(err)))
		return
	}

	user, err := h.Service.Signup(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, httperrors.Unauthorized("Authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponse(user))
}
