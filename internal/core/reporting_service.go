package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProfitLossView selects the income recognition formula.
type ProfitLossView string

const (
	// ViewNet recognizes only the freight margin as income. Canonical.
	ViewNet ProfitLossView = "net"
	// ViewGross recognizes full party freight as income and truck freight as expense.
	ViewGross ProfitLossView = "gross"
)

// ReportingService derives the profit/loss statement and the balance sheet.
type ReportingService interface {
	GetProfitLoss(ctx context.Context, fromDate, toDate string, view ProfitLossView) (*ProfitLoss, error)
	GetBalanceSheet(ctx context.Context, fromDate, toDate string) (*BalanceSheet, error)
}

type ProfitLoss struct {
	View      ProfitLossView  `json:"view"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	NetProfit decimal.Decimal `json:"net_profit"`
	Result    string          `json:"result"` // "PROFIT" or "LOSS"
}

type BalanceSheet struct {
	PartyReceivable decimal.Decimal `json:"party_receivable"`
	TruckPayable    decimal.Decimal `json:"truck_payable"`
	Capital         decimal.Decimal `json:"capital"`
	Balanced        bool            `json:"balanced"`
}

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

// bookingTotals sums the freight columns of active bookings in range.
func (s *reportingService) bookingTotals(ctx context.Context, fromDate, toDate string) (partyFreight, truckFreight, difference decimal.Decimal, err error) {
	var args []any
	query := `
		SELECT COALESCE(SUM(party_freight), 0), COALESCE(SUM(truck_freight), 0),
		       COALESCE(SUM(difference_amount), 0)
		FROM bookings
		WHERE is_deleted = false` + dateRangeClause("date", fromDate, toDate, &args)
	err = s.pool.QueryRow(ctx, query, args...).Scan(&partyFreight, &truckFreight, &difference)
	if err != nil {
		err = fmt.Errorf("failed to sum booking freights: %w", err)
	}
	return
}

func (s *reportingService) GetProfitLoss(ctx context.Context, fromDate, toDate string, view ProfitLossView) (*ProfitLoss, error) {
	if view == "" {
		view = ViewNet
	}
	if view != ViewNet && view != ViewGross {
		return nil, ValidationError{Field: "view", Msg: "must be net or gross"}
	}

	partyFreight, truckFreight, difference, err := s.bookingTotals(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	var args []any
	query := `
		SELECT COALESCE(SUM(c.amount), 0)
		FROM commissions c
		JOIN bookings b ON b.id = c.booking_id AND b.is_deleted = false
		WHERE c.is_deleted = false AND c.commission_type = 'truck'` +
		dateRangeClause("c.payment_date", fromDate, toDate, &args)
	var commission decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&commission); err != nil {
		return nil, fmt.Errorf("failed to sum commissions: %w", err)
	}

	pl := &ProfitLoss{View: view}
	if view == ViewGross {
		pl.Income = partyFreight.Add(commission)
		pl.Expense = truckFreight
	} else {
		pl.Income = difference.Add(commission)
	}
	pl.NetProfit = pl.Income.Sub(pl.Expense)
	pl.Result = "PROFIT"
	if pl.NetProfit.IsNegative() {
		pl.Result = "LOSS"
	}
	return pl, nil
}

// GetBalanceSheet reports outstanding receivables against outstanding
// payables plus margin capital. Commissions are excluded from capital so the
// balanced flag reduces to: total receipts equal total disbursements.
func (s *reportingService) GetBalanceSheet(ctx context.Context, fromDate, toDate string) (*BalanceSheet, error) {
	partyFreight, truckFreight, difference, err := s.bookingTotals(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	var args []any
	query := `
		SELECT COALESCE(SUM(pp.amount), 0)
		FROM party_payments pp
		JOIN bookings b ON b.id = pp.booking_id AND b.is_deleted = false
		WHERE pp.is_deleted = false` + dateRangeClause("pp.payment_date", fromDate, toDate, &args)
	var partyPaid decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&partyPaid); err != nil {
		return nil, fmt.Errorf("failed to sum party payments: %w", err)
	}

	args = nil
	query = `
		SELECT COALESCE(SUM(tp.amount), 0)
		FROM truck_payments tp
		JOIN bookings b ON b.id = tp.booking_id AND b.is_deleted = false
		WHERE tp.is_deleted = false AND tp.payment_for = 'freight'` +
		dateRangeClause("tp.payment_date", fromDate, toDate, &args)
	var truckPaid decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&truckPaid); err != nil {
		return nil, fmt.Errorf("failed to sum truck payments: %w", err)
	}

	sheet := &BalanceSheet{
		PartyReceivable: partyFreight.Sub(partyPaid),
		TruckPayable:    truckFreight.Sub(truckPaid),
		Capital:         difference,
	}
	sheet.Balanced = sheet.PartyReceivable.Equal(sheet.TruckPayable.Add(sheet.Capital))
	return sheet, nil
}
