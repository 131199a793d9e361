package core_test

import (
	"context"
	"testing"

	"freightledger/internal/core"

	"github.com/shopspring/decimal"
)

// seedReportingData creates one margin booking (10000/8500 with a 500 truck
// commission) and one zero-margin booking. Net income is 1500 + 500 = 2000.
func seedReportingData(t *testing.T, bookings core.BookingService) {
	t.Helper()
	ctx := context.Background()

	input := newBookingInput()
	input.CommissionAmount = decimal.NewFromInt(500)
	input.CommissionType = core.CommissionTruck
	if _, err := bookings.CreateBooking(ctx, input, 1); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	second := newBookingInput()
	second.PartyID = 2
	second.TruckNo = "MH12XY9999"
	second.PartyFreight = decimal.NewFromInt(5000)
	second.TruckFreight = decimal.NewFromInt(5000)
	if _, err := bookings.CreateBooking(ctx, second, 1); err != nil {
		t.Fatalf("second CreateBooking failed: %v", err)
	}
}

func TestReportingService_ProfitLossNetView(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	reports := core.NewReportingService(pool)
	seedReportingData(t, bookings)

	pl, err := reports.GetProfitLoss(context.Background(), "", "", core.ViewNet)
	if err != nil {
		t.Fatalf("GetProfitLoss failed: %v", err)
	}
	if !pl.Income.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected income 2000, got %s", pl.Income)
	}
	if !pl.Expense.IsZero() {
		t.Errorf("net view carries no expense, got %s", pl.Expense)
	}
	if !pl.NetProfit.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected net profit 2000, got %s", pl.NetProfit)
	}
	if pl.Result != "PROFIT" {
		t.Errorf("expected PROFIT, got %s", pl.Result)
	}
}

func TestReportingService_ProfitLossGrossView(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	reports := core.NewReportingService(pool)
	seedReportingData(t, bookings)

	pl, err := reports.GetProfitLoss(context.Background(), "", "", core.ViewGross)
	if err != nil {
		t.Fatalf("GetProfitLoss failed: %v", err)
	}
	// 15000 freight + 500 commission against 13500 truck freight.
	if !pl.Income.Equal(decimal.NewFromInt(15500)) {
		t.Errorf("expected income 15500, got %s", pl.Income)
	}
	if !pl.Expense.Equal(decimal.NewFromInt(13500)) {
		t.Errorf("expected expense 13500, got %s", pl.Expense)
	}
	// Both views agree on the bottom line.
	if !pl.NetProfit.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected net profit 2000, got %s", pl.NetProfit)
	}
}

func TestReportingService_ProfitLossEmptyPeriod(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	reports := core.NewReportingService(pool)
	seedReportingData(t, bookings)

	pl, err := reports.GetProfitLoss(context.Background(), "2027-01-01", "2027-12-31", core.ViewNet)
	if err != nil {
		t.Fatalf("GetProfitLoss failed: %v", err)
	}
	if !pl.Income.IsZero() || !pl.NetProfit.IsZero() {
		t.Errorf("expected zero income and profit for empty period, got %s / %s", pl.Income, pl.NetProfit)
	}
}

func TestReportingService_BalanceSheetBalanced(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	reports := core.NewReportingService(pool)
	seedReportingData(t, bookings)

	// With no payments on either side: receivable 15000, payable 13500,
	// capital 1500, and the equation holds.
	bs, err := reports.GetBalanceSheet(context.Background(), "", "")
	if err != nil {
		t.Fatalf("GetBalanceSheet failed: %v", err)
	}
	if !bs.PartyReceivable.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected receivable 15000, got %s", bs.PartyReceivable)
	}
	if !bs.TruckPayable.Equal(decimal.NewFromInt(13500)) {
		t.Errorf("expected payable 13500, got %s", bs.TruckPayable)
	}
	if !bs.Capital.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected capital 1500, got %s", bs.Capital)
	}
	if !bs.Balanced {
		t.Error("expected balanced sheet")
	}
}

func TestReportingService_BalanceSheetUnbalancedByOneSidedPayment(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	reports := core.NewReportingService(pool)
	ctx := context.Background()

	booking, err := bookings.CreateBooking(ctx, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	// A party receipt with no matching truck disbursement leaves cash
	// unmodeled, so the three reported lines no longer close.
	if _, err := payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		PartyID:     booking.PartyID,
		Amount:      decimal.NewFromInt(6000),
		PaymentDate: "2026-03-05",
	}); err != nil {
		t.Fatalf("RecordPartyPayment failed: %v", err)
	}

	bs, err := reports.GetBalanceSheet(ctx, "", "")
	if err != nil {
		t.Fatalf("GetBalanceSheet failed: %v", err)
	}
	if !bs.PartyReceivable.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected receivable 4000, got %s", bs.PartyReceivable)
	}
	if bs.Balanced {
		t.Error("expected unbalanced sheet after one-sided payment")
	}
}
