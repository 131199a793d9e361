package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"freightledger/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Bookings
		r.Post("/api/bookings", h.createBooking)
		r.Get("/api/bookings", h.listBookings)
		r.Get("/api/bookings/{id}", h.getBooking)
		r.Put("/api/bookings/{id}", h.updateBooking)
		r.Delete("/api/bookings/{id}", h.deleteBooking)

		// Payments and per-entity ledgers
		r.Post("/api/ledgers/party/payments", h.recordPartyPayment)
		r.Post("/api/ledgers/truck/payments", h.recordTruckPayment)
		r.Get("/api/ledgers/party", h.partySummaries)
		r.Get("/api/ledgers/party/{partyId}", h.partyLedger)
		r.Get("/api/ledgers/party/{partyId}/tally", h.partyTally)
		r.Get("/api/ledgers/truck", h.truckSummaries)
		r.Get("/api/ledgers/truck/{truckId}", h.truckLedger)
		r.Get("/api/ledgers/truck/{truckId}/tally", h.truckTally)

		// Accounting reports
		r.Get("/api/accounting/day-book", h.dayBook)
		r.Get("/api/accounting/trial-balance", h.trialBalance)
		r.Get("/api/accounting/commission-ledger", h.commissionLedger)
		r.Get("/api/accounting/profit-loss", h.profitLoss)
		r.Get("/api/accounting/balance-sheet", h.balanceSheet)

		// Master data
		r.Post("/api/parties", h.createParty)
		r.Get("/api/parties", h.listParties)
		r.Get("/api/parties/{id}", h.getParty)
		r.Put("/api/parties/{id}", h.updateParty)
		r.Get("/api/companies", h.listCompanies)
		r.Get("/api/companies/{id}", h.getCompany)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlParamInt extracts a numeric URL parameter; returns false after writing
// a 400 response when the value is not a positive integer.
func urlParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeError(w, r, "invalid "+name, "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// queryInt parses an optional integer query parameter, returning 0 when absent.
func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
