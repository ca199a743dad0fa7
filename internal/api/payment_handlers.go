package api

import (
	"net/http"

	"github.com/nathanndk/BitHealth-parking-app/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// ListPending returns every cash reservation awaiting confirmation.
func (h *PaymentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Service.ListPending()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// Confirm marks a pending cash reservation as paid.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.Service.Confirm(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
