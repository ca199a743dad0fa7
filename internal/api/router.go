package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nathanndk/BitHealth-parking-app/internal/auth"
)

// NewRouter assembles the full route table. Officer-gated routes live on
// their own subrouters so the role check composes with authentication.
func NewRouter(
	mw *auth.Middleware,
	authHandler *AuthHandler,
	parkingHandler *ParkingHandler,
	reservationHandler *ReservationHandler,
	paymentHandler *PaymentHandler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", mw.Authenticate(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	// Parking reads (any authenticated user). /available is registered ahead
	// of the numeric {id} route.
	parking := api.PathPrefix("/parking").Subrouter()
	parking.Use(mw.Authenticate)
	parking.HandleFunc("/available", parkingHandler.Available).Methods(http.MethodGet)
	parking.HandleFunc("", parkingHandler.List).Methods(http.MethodGet)
	parking.HandleFunc("/{id:[0-9]+}", parkingHandler.Get).Methods(http.MethodGet)

	// Parking mutations (officer only)
	parkingAdmin := api.PathPrefix("/parking").Subrouter()
	parkingAdmin.Use(mw.Authenticate, auth.RequireOfficer)
	parkingAdmin.HandleFunc("", parkingHandler.Create).Methods(http.MethodPost)
	parkingAdmin.HandleFunc("/{id:[0-9]+}", parkingHandler.Update).Methods(http.MethodPut)
	parkingAdmin.HandleFunc("/{id:[0-9]+}", parkingHandler.Delete).Methods(http.MethodDelete)

	// Reservations (owner-scoped)
	reservations := api.PathPrefix("/reservations").Subrouter()
	reservations.Use(mw.Authenticate)
	reservations.HandleFunc("", reservationHandler.Create).Methods(http.MethodPost)
	reservations.HandleFunc("", reservationHandler.ListMine).Methods(http.MethodGet)
	reservations.HandleFunc("/{id:[0-9]+}/cancel", reservationHandler.Cancel).Methods(http.MethodPatch)

	// Single-reservation read is officer-gated at the route; the handler
	// additionally allows the owner through.
	reservationAdmin := api.PathPrefix("/reservations").Subrouter()
	reservationAdmin.Use(mw.Authenticate, auth.RequireOfficer)
	reservationAdmin.HandleFunc("/{id:[0-9]+}", reservationHandler.Get).Methods(http.MethodGet)

	// Cash payments (officer only)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(mw.Authenticate, auth.RequireOfficer)
	payments.HandleFunc("", paymentHandler.ListPending).Methods(http.MethodGet)
	payments.HandleFunc("/{id:[0-9]+}/confirm", paymentHandler.Confirm).Methods(http.MethodPatch)

	return r
}
