package web

import (
	"net/http"

	"freightledger/internal/core"
)

// createBooking handles POST /api/bookings.
func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var input core.BookingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), input, claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, booking)
}

// listBookings handles GET /api/bookings.
func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.BookingFilter{
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
		FromDate:  q.Get("fromDate"),
		ToDate:    q.Get("toDate"),
		CompanyID: queryInt(r, "companyId"),
		PartyID:   queryInt(r, "partyId"),
		TruckID:   queryInt(r, "truckId"),
	}

	page, err := h.svc.GetBookings(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, page)
}

// getBooking handles GET /api/bookings/{id}.
func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, booking)
}

// updateBooking handles PUT /api/bookings/{id}: full replace of the booking
// and all of its child records.
func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var input core.BookingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	booking, err := h.svc.UpdateBooking(r.Context(), id, input, claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, booking)
}

// deleteBooking handles DELETE /api/bookings/{id}.
func (h *Handler) deleteBooking(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.SoftDeleteBooking(r.Context(), id, claims.UserID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Deleted bool `json:"deleted"`
		ID      int  `json:"id"`
	}
	writeJSON(w, response{Deleted: true, ID: id})
}
