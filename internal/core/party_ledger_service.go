package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PartyLedgerService derives per-party receivable views: summaries across all
// parties, per-booking detail, and the chronological tally statement.
type PartyLedgerService interface {
	GetPartySummaries(ctx context.Context, search string) ([]PartyLedgerSummary, error)
	GetPartyLedger(ctx context.Context, partyID int, fromDate, toDate string) (*PartyLedgerDetail, error)
	GetPartyTally(ctx context.Context, partyID int, fromDate, toDate string) (*PartyTally, error)
}

// PartyLedgerSummary is the receivable position of one party.
type PartyLedgerSummary struct {
	PartyID       int             `json:"party_id"`
	PartyName     string          `json:"party_name"`
	PartyPhone    string          `json:"party_phone"`
	BookingCount  int             `json:"booking_count"`
	TotalFreight  decimal.Decimal `json:"total_freight"`
	TotalReceived decimal.Decimal `json:"total_received"`
	Balance       decimal.Decimal `json:"balance"`
}

// PartyLedgerBooking is one booking with its receipts and outstanding amount.
type PartyLedgerBooking struct {
	Booking
	Payments []PartyPayment  `json:"payments"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

type PartyLedgerDetail struct {
	Summary  PartyLedgerSummary   `json:"summary"`
	Bookings []PartyLedgerBooking `json:"bookings"`
}

// PartyTally is the chronological running-balance statement for one party.
type PartyTally struct {
	PartyID        int             `json:"party_id"`
	PartyName      string          `json:"party_name"`
	Rows           []TallyRow      `json:"rows"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	BalanceType    string          `json:"balance_type"`
}

type partyLedgerService struct {
	pool *pgxpool.Pool
}

func NewPartyLedgerService(pool *pgxpool.Pool) PartyLedgerService {
	return &partyLedgerService{pool: pool}
}

func (s *partyLedgerService) GetPartySummaries(ctx context.Context, search string) ([]PartyLedgerSummary, error) {
	query := `
		SELECT p.id, p.party_name, p.party_phone,
		       COUNT(DISTINCT b.id),
		       COALESCE(SUM(b.party_freight), 0),
		       COALESCE((SELECT SUM(pp.amount) FROM party_payments pp
		                 JOIN bookings pb ON pb.id = pp.booking_id AND pb.is_deleted = false
		                 WHERE pp.party_id = p.id AND pp.is_deleted = false), 0)
		FROM parties p
		LEFT JOIN bookings b ON b.party_id = p.id AND b.is_deleted = false
		WHERE p.status = 'Active'
	`
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		query += " AND (p.party_name ILIKE $1 OR p.party_phone ILIKE $1)"
	}
	query += " GROUP BY p.id, p.party_name, p.party_phone ORDER BY p.party_name"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query party summaries: %w", err)
	}
	defer rows.Close()

	summaries := []PartyLedgerSummary{}
	for rows.Next() {
		var sm PartyLedgerSummary
		if err := rows.Scan(&sm.PartyID, &sm.PartyName, &sm.PartyPhone,
			&sm.BookingCount, &sm.TotalFreight, &sm.TotalReceived); err != nil {
			return nil, fmt.Errorf("failed to scan party summary: %w", err)
		}
		sm.Balance = sm.TotalFreight.Sub(sm.TotalReceived)
		summaries = append(summaries, sm)
	}
	return summaries, nil
}

func (s *partyLedgerService) resolveParty(ctx context.Context, partyID int) (*Party, error) {
	var p Party
	err := s.pool.QueryRow(ctx,
		"SELECT id, party_name, party_phone, party_address, status, created_at FROM parties WHERE id = $1",
		partyID,
	).Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "party", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch party %d: %w", partyID, err)
	}
	return &p, nil
}

func (s *partyLedgerService) GetPartyLedger(ctx context.Context, partyID int, fromDate, toDate string) (*PartyLedgerDetail, error) {
	party, err := s.resolveParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	args := []any{partyID}
	query := `
		SELECT b.id, b.date::text, b.commodity, b.from_location, b.to_location,
		       b.party_freight, b.truck_freight, b.difference_amount, b.status, t.truck_no
		FROM bookings b
		JOIN trucks t ON t.id = b.truck_id
		WHERE b.party_id = $1 AND b.is_deleted = false` +
		dateRangeClause("b.date", fromDate, toDate, &args) + `
		ORDER BY b.date, b.id`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query party bookings: %w", err)
	}
	defer rows.Close()

	detail := &PartyLedgerDetail{
		Summary: PartyLedgerSummary{
			PartyID:    party.ID,
			PartyName:  party.Name,
			PartyPhone: party.Phone,
		},
		Bookings: []PartyLedgerBooking{},
	}
	for rows.Next() {
		var lb PartyLedgerBooking
		if err := rows.Scan(&lb.ID, &lb.Date, &lb.Commodity, &lb.FromLocation, &lb.ToLocation,
			&lb.PartyFreight, &lb.TruckFreight, &lb.DifferenceAmount, &lb.Status, &lb.TruckNo); err != nil {
			return nil, fmt.Errorf("failed to scan party booking: %w", err)
		}
		detail.Bookings = append(detail.Bookings, lb)
	}
	rows.Close()

	for i := range detail.Bookings {
		lb := &detail.Bookings[i]
		lb.Payments, err = fetchPartyPayments(ctx, s.pool, lb.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range lb.Payments {
			lb.Paid = lb.Paid.Add(p.Amount)
		}
		lb.Balance = lb.PartyFreight.Sub(lb.Paid)

		detail.Summary.BookingCount++
		detail.Summary.TotalFreight = detail.Summary.TotalFreight.Add(lb.PartyFreight)
		detail.Summary.TotalReceived = detail.Summary.TotalReceived.Add(lb.Paid)
	}
	detail.Summary.Balance = detail.Summary.TotalFreight.Sub(detail.Summary.TotalReceived)
	return detail, nil
}

func (s *partyLedgerService) GetPartyTally(ctx context.Context, partyID int, fromDate, toDate string) (*PartyTally, error) {
	party, err := s.resolveParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	var entries []LedgerEntry

	args := []any{partyID}
	query := `
		SELECT b.id, b.date::text, b.from_location, b.to_location, b.party_freight
		FROM bookings b
		WHERE b.party_id = $1 AND b.is_deleted = false` +
		dateRangeClause("b.date", fromDate, toDate, &args) + `
		ORDER BY b.date, b.id`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for tally: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var date, from, to string
		var freight decimal.Decimal
		if err := rows.Scan(&id, &date, &from, &to, &freight); err != nil {
			return nil, fmt.Errorf("failed to scan booking for tally: %w", err)
		}
		entries = append(entries, LedgerEntry{
			Date:        date,
			VoucherNo:   fmt.Sprintf("BK-%d", id),
			Particulars: fmt.Sprintf("Freight %s to %s", from, to),
			Debit:       freight,
		})
	}
	rows.Close()

	args = []any{partyID}
	query = `
		SELECT pp.id, pp.payment_date::text, pp.amount, pp.payment_mode, pp.bank_name
		FROM party_payments pp
		JOIN bookings b ON b.id = pp.booking_id AND b.is_deleted = false
		WHERE pp.party_id = $1 AND pp.is_deleted = false` +
		dateRangeClause("pp.payment_date", fromDate, toDate, &args) + `
		ORDER BY pp.payment_date, pp.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for tally: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var date, bankName string
		var mode PaymentMode
		var amount decimal.Decimal
		if err := rows.Scan(&id, &date, &amount, &mode, &bankName); err != nil {
			return nil, fmt.Errorf("failed to scan receipt for tally: %w", err)
		}
		entries = append(entries, LedgerEntry{
			Date:        date,
			VoucherNo:   fmt.Sprintf("RC-%d", id),
			Particulars: "Receipt via " + cashLedgerName(mode, bankName),
			Credit:      amount,
		})
	}

	sortEntriesByDate(entries)
	tallyRows := foldPartyTally(entries)

	tally := &PartyTally{
		PartyID:     party.ID,
		PartyName:   party.Name,
		Rows:        tallyRows,
		BalanceType: "Dr",
	}
	if len(tallyRows) > 0 {
		last := tallyRows[len(tallyRows)-1]
		tally.ClosingBalance = last.Balance
		tally.BalanceType = last.BalanceType
	}
	return tally, nil
}
