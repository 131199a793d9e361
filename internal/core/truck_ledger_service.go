package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TruckLedgerService is the payable mirror of the party ledger: what the
// business owes each truck, net of truck-type commissions.
type TruckLedgerService interface {
	GetTruckSummaries(ctx context.Context, search string) ([]TruckLedgerSummary, error)
	GetTruckLedger(ctx context.Context, truckID int, fromDate, toDate string) (*TruckLedgerDetail, error)
	GetTruckTally(ctx context.Context, truckID int, fromDate, toDate string) (*TruckTally, error)
}

// TruckLedgerSummary is the payable position of one truck.
type TruckLedgerSummary struct {
	TruckID         int             `json:"truck_id"`
	TruckNo         string          `json:"truck_no"`
	DriverName      string          `json:"driver_name"`
	BookingCount    int             `json:"booking_count"`
	TotalFreight    decimal.Decimal `json:"total_freight"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	NetPayable      decimal.Decimal `json:"net_payable"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Balance         decimal.Decimal `json:"balance"`
}

// TruckLedgerBooking is one booking with its disbursements and commissions.
type TruckLedgerBooking struct {
	Booking
	Payments    []TruckPayment  `json:"payments"`
	Commissions []Commission    `json:"commissions"`
	Commission  decimal.Decimal `json:"commission"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
}

type TruckLedgerDetail struct {
	Summary  TruckLedgerSummary   `json:"summary"`
	Bookings []TruckLedgerBooking `json:"bookings"`
}

// TruckTally is the chronological running-balance statement for one truck.
type TruckTally struct {
	TruckID        int             `json:"truck_id"`
	TruckNo        string          `json:"truck_no"`
	Rows           []TallyRow      `json:"rows"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	BalanceType    string          `json:"balance_type"`
}

type truckLedgerService struct {
	pool *pgxpool.Pool
}

func NewTruckLedgerService(pool *pgxpool.Pool) TruckLedgerService {
	return &truckLedgerService{pool: pool}
}

func (s *truckLedgerService) GetTruckSummaries(ctx context.Context, search string) ([]TruckLedgerSummary, error) {
	query := `
		SELECT t.id, t.truck_no, t.driver_name,
		       COUNT(DISTINCT b.id),
		       COALESCE(SUM(b.truck_freight), 0),
		       COALESCE((SELECT SUM(c.amount) FROM commissions c
		                 JOIN bookings cb ON cb.id = c.booking_id AND cb.is_deleted = false
		                 WHERE cb.truck_id = t.id AND c.commission_type = 'truck' AND c.is_deleted = false), 0),
		       COALESCE((SELECT SUM(tp.amount) FROM truck_payments tp
		                 JOIN bookings pb ON pb.id = tp.booking_id AND pb.is_deleted = false
		                 WHERE tp.truck_id = t.id AND tp.payment_for = 'freight' AND tp.is_deleted = false), 0)
		FROM trucks t
		LEFT JOIN bookings b ON b.truck_id = t.id AND b.is_deleted = false
		WHERE t.status = 'Active'
	`
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		query += " AND (t.truck_no ILIKE $1 OR t.driver_name ILIKE $1 OR t.transporter_name ILIKE $1)"
	}
	query += " GROUP BY t.id, t.truck_no, t.driver_name ORDER BY t.truck_no"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query truck summaries: %w", err)
	}
	defer rows.Close()

	summaries := []TruckLedgerSummary{}
	for rows.Next() {
		var sm TruckLedgerSummary
		if err := rows.Scan(&sm.TruckID, &sm.TruckNo, &sm.DriverName,
			&sm.BookingCount, &sm.TotalFreight, &sm.TotalCommission, &sm.TotalPaid); err != nil {
			return nil, fmt.Errorf("failed to scan truck summary: %w", err)
		}
		sm.NetPayable = sm.TotalFreight.Sub(sm.TotalCommission)
		sm.Balance = sm.NetPayable.Sub(sm.TotalPaid)
		summaries = append(summaries, sm)
	}
	return summaries, nil
}

func (s *truckLedgerService) resolveTruck(ctx context.Context, truckID int) (*Truck, error) {
	var t Truck
	err := s.pool.QueryRow(ctx, `
		SELECT id, truck_no, tyre_count, driver_name, driver_phone,
		       transporter_name, transporter_phone, status, created_at
		FROM trucks WHERE id = $1
	`, truckID).Scan(&t.ID, &t.TruckNo, &t.TyreCount, &t.DriverName, &t.DriverPhone,
		&t.TransporterName, &t.TransporterPhone, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "truck", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch truck %d: %w", truckID, err)
	}
	return &t, nil
}

func (s *truckLedgerService) GetTruckLedger(ctx context.Context, truckID int, fromDate, toDate string) (*TruckLedgerDetail, error) {
	truck, err := s.resolveTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	args := []any{truckID}
	query := `
		SELECT b.id, b.date::text, b.commodity, b.from_location, b.to_location,
		       b.party_freight, b.truck_freight, b.difference_amount, b.status, p.party_name
		FROM bookings b
		JOIN parties p ON p.id = b.party_id
		WHERE b.truck_id = $1 AND b.is_deleted = false` +
		dateRangeClause("b.date", fromDate, toDate, &args) + `
		ORDER BY b.date, b.id`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query truck bookings: %w", err)
	}
	defer rows.Close()

	detail := &TruckLedgerDetail{
		Summary: TruckLedgerSummary{
			TruckID:    truck.ID,
			TruckNo:    truck.TruckNo,
			DriverName: truck.DriverName,
		},
		Bookings: []TruckLedgerBooking{},
	}
	for rows.Next() {
		var lb TruckLedgerBooking
		if err := rows.Scan(&lb.ID, &lb.Date, &lb.Commodity, &lb.FromLocation, &lb.ToLocation,
			&lb.PartyFreight, &lb.TruckFreight, &lb.DifferenceAmount, &lb.Status, &lb.PartyName); err != nil {
			return nil, fmt.Errorf("failed to scan truck booking: %w", err)
		}
		detail.Bookings = append(detail.Bookings, lb)
	}
	rows.Close()

	for i := range detail.Bookings {
		lb := &detail.Bookings[i]
		lb.Payments, err = fetchTruckPayments(ctx, s.pool, lb.ID)
		if err != nil {
			return nil, err
		}
		lb.Commissions, err = fetchCommissions(ctx, s.pool, lb.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range lb.Payments {
			if p.PaymentFor == ForFreight {
				lb.Paid = lb.Paid.Add(p.Amount)
			}
		}
		for _, c := range lb.Commissions {
			if c.CommissionType == CommissionTruck {
				lb.Commission = lb.Commission.Add(c.Amount)
			}
		}
		lb.Balance = lb.TruckFreight.Sub(lb.Commission).Sub(lb.Paid)

		detail.Summary.BookingCount++
		detail.Summary.TotalFreight = detail.Summary.TotalFreight.Add(lb.TruckFreight)
		detail.Summary.TotalCommission = detail.Summary.TotalCommission.Add(lb.Commission)
		detail.Summary.TotalPaid = detail.Summary.TotalPaid.Add(lb.Paid)
	}
	detail.Summary.NetPayable = detail.Summary.TotalFreight.Sub(detail.Summary.TotalCommission)
	detail.Summary.Balance = detail.Summary.NetPayable.Sub(detail.Summary.TotalPaid)
	return detail, nil
}

func (s *truckLedgerService) GetTruckTally(ctx context.Context, truckID int, fromDate, toDate string) (*TruckTally, error) {
	truck, err := s.resolveTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	var entries []LedgerEntry

	args := []any{truckID}
	query := `
		SELECT b.id, b.date::text, b.from_location, b.to_location, b.truck_freight
		FROM bookings b
		WHERE b.truck_id = $1 AND b.is_deleted = false` +
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
			Credit:      freight,
		})
	}
	rows.Close()

	args = []any{truckID}
	query = `
		SELECT tp.id, tp.payment_date::text, tp.amount, tp.payment_mode, tp.bank_name, tp.payment_for
		FROM truck_payments tp
		JOIN bookings b ON b.id = tp.booking_id AND b.is_deleted = false
		WHERE tp.truck_id = $1 AND tp.is_deleted = false` +
		dateRangeClause("tp.payment_date", fromDate, toDate, &args) + `
		ORDER BY tp.payment_date, tp.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for tally: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var date, bankName string
		var mode PaymentMode
		var paymentFor PaymentFor
		var amount decimal.Decimal
		if err := rows.Scan(&id, &date, &amount, &mode, &bankName, &paymentFor); err != nil {
			return nil, fmt.Errorf("failed to scan payment for tally: %w", err)
		}
		particulars := "Payment via " + cashLedgerName(mode, bankName)
		if paymentFor == ForHalting {
			particulars = "Halting payment via " + cashLedgerName(mode, bankName)
		}
		entries = append(entries, LedgerEntry{
			Date:        date,
			VoucherNo:   fmt.Sprintf("PM-%d", id),
			Particulars: particulars,
			Debit:       amount,
		})
	}
	rows.Close()

	args = []any{truckID}
	query = `
		SELECT c.id, c.payment_date::text, c.amount
		FROM commissions c
		JOIN bookings b ON b.id = c.booking_id AND b.is_deleted = false
		WHERE b.truck_id = $1 AND c.commission_type = 'truck' AND c.is_deleted = false` +
		dateRangeClause("c.payment_date", fromDate, toDate, &args) + `
		ORDER BY c.payment_date, c.id`
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions for tally: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var date string
		var amount decimal.Decimal
		if err := rows.Scan(&id, &date, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan commission for tally: %w", err)
		}
		entries = append(entries, LedgerEntry{
			Date:        date,
			VoucherNo:   fmt.Sprintf("CM-%d", id),
			Particulars: "Commission deducted",
			Debit:       amount,
		})
	}

	sortEntriesByDate(entries)
	tallyRows := foldTruckTally(entries)

	tally := &TruckTally{
		TruckID:     truck.ID,
		TruckNo:     truck.TruckNo,
		Rows:        tallyRows,
		BalanceType: "Cr",
	}
	if len(tallyRows) > 0 {
		last := tallyRows[len(tallyRows)-1]
		tally.ClosingBalance = last.Balance
		tally.BalanceType = last.BalanceType
	}
	return tally, nil
}
