package web

import (
	"net/http"

	"freightledger/internal/core"
)

// dayBook handles GET /api/accounting/day-book. Accepts either a single
// ?date= or a ?fromDate=&toDate= range.
func (h *Handler) dayBook(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)

	book, err := h.svc.GetDayBook(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, book)
}

// trialBalance handles GET /api/accounting/trial-balance.
func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)

	tb, err := h.svc.GetTrialBalance(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, tb)
}

// commissionLedger handles GET /api/accounting/commission-ledger.
func (h *Handler) commissionLedger(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)

	ledger, err := h.svc.GetCommissionLedger(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, ledger)
}

// profitLoss handles GET /api/accounting/profit-loss. ?view=net|gross selects
// the income formula; net is the default.
func (h *Handler) profitLoss(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	view := core.ProfitLossView(r.URL.Query().Get("view"))

	pl, err := h.svc.GetProfitLoss(r.Context(), from, to, view)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, pl)
}

// balanceSheet handles GET /api/accounting/balance-sheet.
func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)

	sheet, err := h.svc.GetBalanceSheet(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, sheet)
}

// dateRange reads the period from the query: a single date collapses to a
// one-day range.
func dateRange(r *http.Request) (from, to string) {
	q := r.URL.Query()
	if date := q.Get("date"); date != "" {
		return date, date
	}
	return q.Get("fromDate"), q.Get("toDate")
}
