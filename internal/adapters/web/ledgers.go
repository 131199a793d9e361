package web

import (
	"net/http"

	"freightledger/internal/core"
)

// recordPartyPayment handles POST /api/ledgers/party/payments.
func (h *Handler) recordPartyPayment(w http.ResponseWriter, r *http.Request) {
	var input core.PartyPaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	receipt, err := h.svc.RecordPartyPayment(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, receipt)
}

// recordTruckPayment handles POST /api/ledgers/truck/payments.
func (h *Handler) recordTruckPayment(w http.ResponseWriter, r *http.Request) {
	var input core.TruckPaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	receipt, err := h.svc.RecordTruckPayment(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, receipt)
}

// partySummaries handles GET /api/ledgers/party.
func (h *Handler) partySummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.GetPartySummaries(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, summaries)
}

// partyLedger handles GET /api/ledgers/party/{partyId}.
func (h *Handler) partyLedger(w http.ResponseWriter, r *http.Request) {
	partyID, ok := urlParamInt(w, r, "partyId")
	if !ok {
		return
	}
	q := r.URL.Query()

	detail, err := h.svc.GetPartyLedger(r.Context(), partyID, q.Get("fromDate"), q.Get("toDate"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

// partyTally handles GET /api/ledgers/party/{partyId}/tally.
func (h *Handler) partyTally(w http.ResponseWriter, r *http.Request) {
	partyID, ok := urlParamInt(w, r, "partyId")
	if !ok {
		return
	}
	q := r.URL.Query()

	tally, err := h.svc.GetPartyTally(r.Context(), partyID, q.Get("fromDate"), q.Get("toDate"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, tally)
}

// truckSummaries handles GET /api/ledgers/truck.
func (h *Handler) truckSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.GetTruckSummaries(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, summaries)
}

// truckLedger handles GET /api/ledgers/truck/{truckId}.
func (h *Handler) truckLedger(w http.ResponseWriter, r *http.Request) {
	truckID, ok := urlParamInt(w, r, "truckId")
	if !ok {
		return
	}
	q := r.URL.Query()

	detail, err := h.svc.GetTruckLedger(r.Context(), truckID, q.Get("fromDate"), q.Get("toDate"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

// truckTally handles GET /api/ledgers/truck/{truckId}/tally.
func (h *Handler) truckTally(w http.ResponseWriter, r *http.Request) {
	truckID, ok := urlParamInt(w, r, "truckId")
	if !ok {
		return
	}
	q := r.URL.Query()

	tally, err := h.svc.GetTruckTally(r.Context(), truckID, q.Get("fromDate"), q.Get("toDate"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, tally)
}
