package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one raw debit/credit line in the day-book. Ledger views are
// derived, never stored: entries are rebuilt from bookings, payments and
// commissions on every call.
type LedgerEntry struct {
	Date        string          `json:"date"`
	VoucherNo   string          `json:"voucher_no"`
	LedgerName  string          `json:"ledger_name"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

const (
	ledgerDifferenceIncome = "Difference Income"
	ledgerCommissionIncome = "Commission Income"
	ledgerCash             = "Cash"
)

func partyLedgerName(name string) string    { return "Party - " + name }
func truckLedgerName(truckNo string) string { return "Truck - " + truckNo }

// cashLedgerName maps a payment mode to the cash-side ledger it hits.
func cashLedgerName(mode PaymentMode, bankName string) string {
	if mode == ModeBank {
		if bankName != "" {
			return "Bank - " + bankName
		}
		return "Bank"
	}
	return ledgerCash
}

// bookingEntries emits the freight entries of one booking: the party is
// debited what it owes, the truck credited what it is owed, and a positive
// margin is credited to difference income so the set stays balanced.
func bookingEntries(b Booking) []LedgerEntry {
	voucher := fmt.Sprintf("BK-%d", b.ID)
	particulars := fmt.Sprintf("Freight %s to %s", b.FromLocation, b.ToLocation)

	entries := []LedgerEntry{
		{
			Date:        b.Date,
			VoucherNo:   voucher,
			LedgerName:  partyLedgerName(b.PartyName),
			Particulars: particulars,
			Debit:       b.PartyFreight,
		},
		{
			Date:        b.Date,
			VoucherNo:   voucher,
			LedgerName:  truckLedgerName(b.TruckNo),
			Particulars: particulars,
			Credit:      b.TruckFreight,
		},
	}
	margin := b.PartyFreight.Sub(b.TruckFreight)
	if margin.IsPositive() {
		entries = append(entries, LedgerEntry{
			Date:        b.Date,
			VoucherNo:   voucher,
			LedgerName:  ledgerDifferenceIncome,
			Particulars: particulars,
			Credit:      margin,
		})
	}
	return entries
}

// receiptEntries emits the mirrored pair for one party payment: cash/bank is
// debited, the party credited.
func receiptEntries(p PartyPayment, partyName string) []LedgerEntry {
	voucher := fmt.Sprintf("RC-%d", p.ID)
	particulars := fmt.Sprintf("Receipt from %s", partyName)
	return []LedgerEntry{
		{
			Date:        p.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  cashLedgerName(p.PaymentMode, p.BankName),
			Particulars: particulars,
			Debit:       p.Amount,
		},
		{
			Date:        p.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  partyLedgerName(partyName),
			Particulars: particulars,
			Credit:      p.Amount,
		},
	}
}

// paymentEntries emits the mirrored pair for one truck payment: the truck is
// debited, cash/bank credited.
func paymentEntries(p TruckPayment, truckNo string) []LedgerEntry {
	voucher := fmt.Sprintf("PM-%d", p.ID)
	particulars := fmt.Sprintf("Payment to %s", truckNo)
	return []LedgerEntry{
		{
			Date:        p.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  truckLedgerName(truckNo),
			Particulars: particulars,
			Debit:       p.Amount,
		},
		{
			Date:        p.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  cashLedgerName(p.PaymentMode, p.BankName),
			Particulars: particulars,
			Credit:      p.Amount,
		},
	}
}

// commissionEntries emits the pair for one truck-type commission: cash/bank
// debited, commission income credited.
func commissionEntries(c Commission, truckNo string) []LedgerEntry {
	voucher := fmt.Sprintf("CM-%d", c.ID)
	particulars := fmt.Sprintf("Commission on %s", truckNo)
	return []LedgerEntry{
		{
			Date:        c.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  cashLedgerName(c.PaymentMode, ""),
			Particulars: particulars,
			Debit:       c.Amount,
		},
		{
			Date:        c.PaymentDate,
			VoucherNo:   voucher,
			LedgerName:  ledgerCommissionIncome,
			Particulars: particulars,
			Credit:      c.Amount,
		},
	}
}

// sortEntriesByDate orders day-book entries date ascending. The sort is
// stable so entries emitted together keep their relative order within a day.
func sortEntriesByDate(entries []LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

func sortCommissionEntries(entries []CommissionLedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

// TrialBalanceRow is the net position of one ledger name.
type TrialBalanceRow struct {
	LedgerName string          `json:"ledger_name"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

// TrialBalance is the folded day-book: one row per ledger name with the net
// balance assigned to the debit or credit column.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Balanced    bool              `json:"balanced"`
}

// foldTrialBalance accumulates entries per ledger name, then nets each ledger
// to a single column: a positive debit − credit lands in the debit column,
// otherwise its absolute value lands in credit.
func foldTrialBalance(entries []LedgerEntry) TrialBalance {
	type sums struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byLedger := make(map[string]*sums)
	var names []string
	for _, e := range entries {
		s, ok := byLedger[e.LedgerName]
		if !ok {
			s = &sums{}
			byLedger[e.LedgerName] = s
			names = append(names, e.LedgerName)
		}
		s.debit = s.debit.Add(e.Debit)
		s.credit = s.credit.Add(e.Credit)
	}
	sort.Strings(names)

	tb := TrialBalance{Rows: []TrialBalanceRow{}}
	for _, name := range names {
		s := byLedger[name]
		net := s.debit.Sub(s.credit)
		row := TrialBalanceRow{LedgerName: name}
		if net.IsNegative() {
			row.Credit = net.Abs()
		} else {
			row.Debit = net
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb
}

// TallyRow is one line of a running-balance statement.
type TallyRow struct {
	Date        string          `json:"date"`
	VoucherNo   string          `json:"voucher_no"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balance_type"` // "Dr" or "Cr"
}

// foldPartyTally computes the party running balance: debits (freight owed)
// raise it, credits (receipts) lower it. A non-negative balance is a debtor
// position and reported "Dr".
func foldPartyTally(entries []LedgerEntry) []TallyRow {
	rows := make([]TallyRow, 0, len(entries))
	var balance decimal.Decimal
	for _, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
		rows = append(rows, tallyRow(e, balance, "Dr", "Cr"))
	}
	return rows
}

// foldTruckTally is the mirror convention: credits (freight owed to the
// truck) raise the balance, debits (payments and commissions) lower it. A
// non-negative balance means the business owes the truck and reports "Cr".
func foldTruckTally(entries []LedgerEntry) []TallyRow {
	rows := make([]TallyRow, 0, len(entries))
	var balance decimal.Decimal
	for _, e := range entries {
		balance = balance.Add(e.Credit).Sub(e.Debit)
		rows = append(rows, tallyRow(e, balance, "Cr", "Dr"))
	}
	return rows
}

func tallyRow(e LedgerEntry, balance decimal.Decimal, positive, negative string) TallyRow {
	balanceType := positive
	if balance.IsNegative() {
		balanceType = negative
	}
	return TallyRow{
		Date:        e.Date,
		VoucherNo:   e.VoucherNo,
		Particulars: e.Particulars,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Balance:     balance.Abs(),
		BalanceType: balanceType,
	}
}
