package core_test

import (
	"context"
	"testing"

	"freightledger/internal/core"

	"github.com/shopspring/decimal"
)

// seedLedgerData creates two bookings with payments and a truck commission:
//
//	booking 1: party 1, freight 10000/8500, commission 500, receipt 6000, payment 3000
//	booking 2: party 2, freight 5000/5000 (zero margin)
func seedLedgerData(t *testing.T, bookings core.BookingService, payments core.PaymentService) (int, int) {
	t.Helper()
	ctx := context.Background()

	input := newBookingInput()
	input.CommissionAmount = decimal.NewFromInt(500)
	input.CommissionType = core.CommissionTruck
	input.CommissionDate = "2026-03-01"
	first, err := bookings.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	second := newBookingInput()
	second.PartyID = 2
	second.TruckNo = "MH12XY9999"
	second.Date = "2026-03-02"
	second.PartyFreight = decimal.NewFromInt(5000)
	second.TruckFreight = decimal.NewFromInt(5000)
	other, err := bookings.CreateBooking(ctx, second, 1)
	if err != nil {
		t.Fatalf("second CreateBooking failed: %v", err)
	}

	if _, err := payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   first.ID,
		PartyID:     first.PartyID,
		Amount:      decimal.NewFromInt(6000),
		PaymentDate: "2026-03-05",
		PaymentMode: core.ModeCash,
	}); err != nil {
		t.Fatalf("RecordPartyPayment failed: %v", err)
	}
	if _, err := payments.RecordTruckPayment(ctx, core.TruckPaymentInput{
		BookingID:   first.ID,
		Amount:      decimal.NewFromInt(3000),
		PaymentDate: "2026-03-06",
		PaymentMode: core.ModeBank,
		BankName:    "HDFC",
	}); err != nil {
		t.Fatalf("RecordTruckPayment failed: %v", err)
	}

	return first.ID, other.ID
}

func TestLedgerService_DayBookBalancedAndOrdered(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ledgers := core.NewLedgerService(pool)
	seedLedgerData(t, bookings, payments)

	book, err := ledgers.GetDayBook(context.Background(), "", "")
	if err != nil {
		t.Fatalf("GetDayBook failed: %v", err)
	}
	if len(book.Entries) == 0 {
		t.Fatal("expected day-book entries")
	}
	if !book.TotalDebit.Equal(book.TotalCredit) {
		t.Errorf("day-book unbalanced: debit %s, credit %s", book.TotalDebit, book.TotalCredit)
	}
	for i := 1; i < len(book.Entries); i++ {
		if book.Entries[i].Date < book.Entries[i-1].Date {
			t.Fatalf("entries not date-ascending at index %d: %s after %s",
				i, book.Entries[i].Date, book.Entries[i-1].Date)
		}
	}
}

func TestLedgerService_DayBookDateFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ledgers := core.NewLedgerService(pool)
	seedLedgerData(t, bookings, payments)

	// Only the 2026-03-05 receipt falls in this window.
	book, err := ledgers.GetDayBook(context.Background(), "2026-03-05", "2026-03-05")
	if err != nil {
		t.Fatalf("GetDayBook failed: %v", err)
	}
	if len(book.Entries) != 2 {
		t.Fatalf("expected the receipt pair only, got %d entries", len(book.Entries))
	}
	if book.Entries[0].VoucherNo != book.Entries[1].VoucherNo {
		t.Errorf("receipt pair should share a voucher, got %s and %s",
			book.Entries[0].VoucherNo, book.Entries[1].VoucherNo)
	}
}

func TestLedgerService_TrialBalance(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ledgers := core.NewLedgerService(pool)
	seedLedgerData(t, bookings, payments)

	tb, err := ledgers.GetTrialBalance(context.Background(), "", "")
	if err != nil {
		t.Fatalf("GetTrialBalance failed: %v", err)
	}
	if !tb.Balanced {
		t.Errorf("expected balanced trial balance: debit %s, credit %s", tb.TotalDebit, tb.TotalCredit)
	}

	rows := make(map[string]core.TrialBalanceRow)
	for _, r := range tb.Rows {
		rows[r.LedgerName] = r
	}
	// Party 1: 10000 freight debit less 6000 receipt credit.
	if r := rows["Party - Agarwal Traders"]; !r.Debit.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Party - Agarwal Traders: expected 4000 Dr, got %+v", r)
	}
	// Difference income: 1500 from booking 1 only.
	if r := rows["Difference Income"]; !r.Credit.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Difference Income: expected 1500 Cr, got %+v", r)
	}
}

func TestLedgerService_SoftDeletedBookingInvisible(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ledgers := core.NewLedgerService(pool)
	ctx := context.Background()

	firstID, secondID := seedLedgerData(t, bookings, payments)
	if err := bookings.SoftDeleteBooking(ctx, firstID, 1); err != nil {
		t.Fatalf("SoftDeleteBooking failed: %v", err)
	}

	book, err := ledgers.GetDayBook(ctx, "", "")
	if err != nil {
		t.Fatalf("GetDayBook failed: %v", err)
	}
	// Only booking 2's pair survives (zero margin, no payments).
	if len(book.Entries) != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", len(book.Entries))
	}
	wantVoucher := "BK-"
	for _, e := range book.Entries {
		if len(e.VoucherNo) < len(wantVoucher) || e.VoucherNo[:3] != wantVoucher {
			t.Errorf("unexpected entry after delete: %+v", e)
		}
	}
	_ = secondID
}

func TestLedgerService_CommissionLedgerTotals(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ledgers := core.NewLedgerService(pool)
	seedLedgerData(t, bookings, payments)

	ledger, err := ledgers.GetCommissionLedger(context.Background(), "", "")
	if err != nil {
		t.Fatalf("GetCommissionLedger failed: %v", err)
	}
	if !ledger.TotalDifference.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected total difference 1500, got %s", ledger.TotalDifference)
	}
	if !ledger.TotalCommission.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected total commission 500, got %s", ledger.TotalCommission)
	}
	if !ledger.TotalIncome.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected total income 2000, got %s", ledger.TotalIncome)
	}
}
