package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerService derives the consolidated accounting views: day-book, trial
// balance and commission ledger. Everything is recomputed from the underlying
// rows on every call.
type LedgerService interface {
	GetDayBook(ctx context.Context, fromDate, toDate string) (*DayBook, error)
	GetTrialBalance(ctx context.Context, fromDate, toDate string) (*TrialBalance, error)
	GetCommissionLedger(ctx context.Context, fromDate, toDate string) (*CommissionLedger, error)
}

// DayBook is the chronological list of raw debit/credit entries for a period.
type DayBook struct {
	Entries     []LedgerEntry   `json:"entries"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// CommissionLedger lists the income entries of a period: booking margins and
// truck commissions.
type CommissionLedger struct {
	Entries         []CommissionLedgerEntry `json:"entries"`
	TotalDifference decimal.Decimal         `json:"total_difference"`
	TotalCommission decimal.Decimal         `json:"total_commission"`
	TotalIncome     decimal.Decimal         `json:"total_income"`
}

type CommissionLedgerEntry struct {
	Date        string          `json:"date"`
	Source      string          `json:"source"` // "difference" or "commission"
	BookingID   int             `json:"booking_id"`
	PartyName   string          `json:"party_name"`
	TruckNo     string          `json:"truck_no"`
	Particulars string          `json:"particulars"`
	Amount      decimal.Decimal `json:"amount"`
}

type ledgerService struct {
	pool *pgxpool.Pool
}

func NewLedgerService(pool *pgxpool.Pool) LedgerService {
	return &ledgerService{pool: pool}
}

// dateRangeClause appends optional from/to conditions on the given column.
func dateRangeClause(column, fromDate, toDate string, args *[]any) string {
	clause := ""
	if fromDate != "" {
		*args = append(*args, fromDate)
		clause += fmt.Sprintf(" AND %s >= $%d", column, len(*args))
	}
	if toDate != "" {
		*args = append(*args, toDate)
		clause += fmt.Sprintf(" AND %s <= $%d", column, len(*args))
	}
	return clause
}

func (s *ledgerService) GetDayBook(ctx context.Context, fromDate, toDate string) (*DayBook, error) {
	entries, err := s.collectEntries(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	sortEntriesByDate(entries)

	book := &DayBook{Entries: entries}
	for _, e := range entries {
		book.TotalDebit = book.TotalDebit.Add(e.Debit)
		book.TotalCredit = book.TotalCredit.Add(e.Credit)
	}
	return book, nil
}

func (s *ledgerService) GetTrialBalance(ctx context.Context, fromDate, toDate string) (*TrialBalance, error) {
	entries, err := s.collectEntries(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	tb := foldTrialBalance(entries)
	return &tb, nil
}

// collectEntries rebuilds the full day-book entry set for a period from
// bookings, payments and truck commissions.
func (s *ledgerService) collectEntries(ctx context.Context, fromDate, toDate string) ([]LedgerEntry, error) {
	var entries []LedgerEntry

	var args []any
	query := `
		SELECT b.id, b.date::text, b.from_location, b.to_location,
		       b.party_freight, b.truck_freight, p.party_name, t.truck_no
		FROM bookings b
		JOIN parties p ON p.id = b.party_id
		JOIN trucks t ON t.id = b.truck_id
		WHERE b.is_deleted = false` + dateRangeClause("b.date", fromDate, toDate, &args) + `
		ORDER BY b.date, b.id`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for day-book: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.Date, &b.FromLocation, &b.ToLocation,
			&b.PartyFreight, &b.TruckFreight, &b.PartyName, &b.TruckNo); err != nil {
			return nil, fmt.Errorf("failed to scan booking for day-book: %w", err)
		}
		entries = append(entries, bookingEntries(b)...)
	}
	rows.Close()

	args = nil
	query = `
		SELECT pp.id, pp.payment_date::text, pp.amount, pp.payment_mode, pp.bank_name, p.party_name
		FROM party_payments pp
		JOIN bookings b ON b.id = pp.booking_id AND b.is_deleted = false
		JOIN parties p ON p.id = pp.party_id
		WHERE pp.is_deleted = false` + dateRangeClause("pp.payment_date", fromDate, toDate, &args) + `
		ORDER BY pp.payment_date, pp.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query party payments for day-book: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PartyPayment
		var partyName string
		if err := rows.Scan(&p.ID, &p.PaymentDate, &p.Amount, &p.PaymentMode, &p.BankName, &partyName); err != nil {
			return nil, fmt.Errorf("failed to scan party payment for day-book: %w", err)
		}
		entries = append(entries, receiptEntries(p, partyName)...)
	}
	rows.Close()

	args = nil
	query = `
		SELECT tp.id, tp.payment_date::text, tp.amount, tp.payment_mode, tp.bank_name, t.truck_no
		FROM truck_payments tp
		JOIN bookings b ON b.id = tp.booking_id AND b.is_deleted = false
		JOIN trucks t ON t.id = tp.truck_id
		WHERE tp.is_deleted = false` + dateRangeClause("tp.payment_date", fromDate, toDate, &args) + `
		ORDER BY tp.payment_date, tp.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query truck payments for day-book: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p TruckPayment
		var truckNo string
		if err := rows.Scan(&p.ID, &p.PaymentDate, &p.Amount, &p.PaymentMode, &p.BankName, &truckNo); err != nil {
			return nil, fmt.Errorf("failed to scan truck payment for day-book: %w", err)
		}
		entries = append(entries, paymentEntries(p, truckNo)...)
	}
	rows.Close()

	args = nil
	query = `
		SELECT c.id, c.payment_date::text, c.amount, c.payment_mode, t.truck_no
		FROM commissions c
		JOIN bookings b ON b.id = c.booking_id AND b.is_deleted = false
		JOIN trucks t ON t.id = b.truck_id
		WHERE c.is_deleted = false AND c.commission_type = 'truck'` +
		dateRangeClause("c.payment_date", fromDate, toDate, &args) + `
		ORDER BY c.payment_date, c.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions for day-book: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Commission
		var truckNo string
		if err := rows.Scan(&c.ID, &c.PaymentDate, &c.Amount, &c.PaymentMode, &truckNo); err != nil {
			return nil, fmt.Errorf("failed to scan commission for day-book: %w", err)
		}
		entries = append(entries, commissionEntries(c, truckNo)...)
	}

	return entries, nil
}

func (s *ledgerService) GetCommissionLedger(ctx context.Context, fromDate, toDate string) (*CommissionLedger, error) {
	ledger := &CommissionLedger{Entries: []CommissionLedgerEntry{}}

	var args []any
	query := `
		SELECT b.id, b.date::text, b.difference_amount, b.from_location, b.to_location,
		       p.party_name, t.truck_no
		FROM bookings b
		JOIN parties p ON p.id = b.party_id
		JOIN trucks t ON t.id = b.truck_id
		WHERE b.is_deleted = false AND b.difference_amount > 0` +
		dateRangeClause("b.date", fromDate, toDate, &args) + `
		ORDER BY b.date, b.id`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking margins: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e CommissionLedgerEntry
		var from, to string
		if err := rows.Scan(&e.BookingID, &e.Date, &e.Amount, &from, &to, &e.PartyName, &e.TruckNo); err != nil {
			return nil, fmt.Errorf("failed to scan booking margin: %w", err)
		}
		e.Source = "difference"
		e.Particulars = fmt.Sprintf("Freight margin %s to %s", from, to)
		ledger.Entries = append(ledger.Entries, e)
		ledger.TotalDifference = ledger.TotalDifference.Add(e.Amount)
	}
	rows.Close()

	args = nil
	query = `
		SELECT c.booking_id, c.payment_date::text, c.amount, c.remark, p.party_name, t.truck_no
		FROM commissions c
		JOIN bookings b ON b.id = c.booking_id AND b.is_deleted = false
		JOIN parties p ON p.id = b.party_id
		JOIN trucks t ON t.id = b.truck_id
		WHERE c.is_deleted = false AND c.commission_type = 'truck'` +
		dateRangeClause("c.payment_date", fromDate, toDate, &args) + `
		ORDER BY c.payment_date, c.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commission income: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e CommissionLedgerEntry
		var remark string
		if err := rows.Scan(&e.BookingID, &e.Date, &e.Amount, &remark, &e.PartyName, &e.TruckNo); err != nil {
			return nil, fmt.Errorf("failed to scan commission income: %w", err)
		}
		e.Source = "commission"
		e.Particulars = "Truck commission"
		if remark != "" {
			e.Particulars = remark
		}
		ledger.Entries = append(ledger.Entries, e)
		ledger.TotalCommission = ledger.TotalCommission.Add(e.Amount)
	}

	sortCommissionEntries(ledger.Entries)
	ledger.TotalIncome = ledger.TotalDifference.Add(ledger.TotalCommission)
	return ledger, nil
}
