package web

import (
	"net/http"

	"freightledger/internal/core"
)

// createParty handles POST /api/parties.
func (h *Handler) createParty(w http.ResponseWriter, r *http.Request) {
	var input core.PartyInput
	if !decodeJSON(w, r, &input) {
		return
	}

	party, err := h.svc.CreateParty(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, party)
}

// listParties handles GET /api/parties.
func (h *Handler) listParties(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetParties(r.Context(), r.URL.Query().Get("search"),
		queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, page)
}

// getParty handles GET /api/parties/{id}.
func (h *Handler) getParty(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	party, err := h.svc.GetParty(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, party)
}

// updateParty handles PUT /api/parties/{id}.
func (h *Handler) updateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var input core.PartyInput
	if !decodeJSON(w, r, &input) {
		return
	}

	party, err := h.svc.UpdateParty(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, party)
}

// listCompanies handles GET /api/companies.
func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.GetCompanies(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, companies)
}

// getCompany handles GET /api/companies/{id}.
func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	company, err := h.svc.GetCompany(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, company)
}
