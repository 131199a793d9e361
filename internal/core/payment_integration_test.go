package core_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"freightledger/internal/core"

	"github.com/shopspring/decimal"
)

func TestPaymentService_PartyPaymentLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	booking, err := bookings.CreateBooking(ctx, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// 6000 of 10000: balance 4000, booking stays pending.
	receipt, err := payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		PartyID:     booking.PartyID,
		Amount:      decimal.NewFromInt(6000),
		PaymentDate: "2026-03-05",
		PaymentMode: core.ModeCash,
	})
	if err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	if !receipt.Balance.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected balance 4000, got %s", receipt.Balance)
	}
	after, err := bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if after.Status != core.BookingPending {
		t.Errorf("expected pending after partial payment, got %s", after.Status)
	}

	// Exact payoff flips the booking to complete.
	receipt, err = payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		PartyID:     booking.PartyID,
		Amount:      decimal.NewFromInt(4000),
		PaymentDate: "2026-03-10",
		PaymentMode: core.ModeBank,
		BankName:    "HDFC",
	})
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	if !receipt.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", receipt.Balance)
	}
	after, err = bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if after.Status != core.BookingComplete {
		t.Errorf("expected complete after exact payoff, got %s", after.Status)
	}

	// Any further positive amount is an over-payment.
	_, err = payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		PartyID:     booking.PartyID,
		Amount:      decimal.NewFromInt(1),
		PaymentDate: "2026-03-11",
	})
	if !core.IsAmount(err) {
		t.Fatalf("expected amount error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Remaining: 0") {
		t.Errorf("error should carry the remaining balance, got %q", err.Error())
	}
}

func TestPaymentService_RejectsPartyMismatch(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	// Booking belongs to party 1; party 2 must not be able to pay against it.
	booking, err := bookings.CreateBooking(ctx, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	_, err = payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		PartyID:     2,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: "2026-03-05",
	})
	if !core.IsNotFound(err) {
		t.Fatalf("expected not-found for foreign party, got %v", err)
	}

	_, err = payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   booking.ID,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: "2026-03-05",
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error without party_id, got %v", err)
	}
}

func TestPaymentService_BankModeRequiresDetails(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	_, err := payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
		BookingID:   1,
		PartyID:     1,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: "2026-03-05",
		PaymentMode: core.ModeBank,
	})
	if !core.IsValidation(err) {
		t.Errorf("party payment: expected validation error, got %v", err)
	}

	_, err = payments.RecordTruckPayment(ctx, core.TruckPaymentInput{
		BookingID:   1,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: "2026-03-05",
		PaymentMode: core.ModeBank,
	})
	if !core.IsValidation(err) {
		t.Errorf("truck payment: expected validation error, got %v", err)
	}
}

func TestPaymentService_RejectsNonPositiveAmount(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	payments := core.NewPaymentService(pool)

	_, err := payments.RecordPartyPayment(context.Background(), core.PartyPaymentInput{
		BookingID:   1,
		Amount:      decimal.Zero,
		PaymentDate: "2026-03-05",
	})
	if !core.IsValidation(err) {
		t.Errorf("expected validation error for zero amount, got %v", err)
	}
}

func TestPaymentService_TruckCeilingNetsCommission(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	// Truck freight 8500 less 500 truck commission: 8000 payable. The paid
	// halting amount is tagged 'halting' and must not consume the ceiling.
	input := newBookingInput()
	input.CommissionAmount = decimal.NewFromInt(500)
	input.CommissionType = core.CommissionTruck
	input.Haltings = []core.HaltingInput{
		{HaltingDate: "2026-03-02", Days: 1, PricePerDay: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(500)},
	}
	booking, err := bookings.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	receipt, err := payments.RecordTruckPayment(ctx, core.TruckPaymentInput{
		BookingID:   booking.ID,
		Amount:      decimal.NewFromInt(8000),
		PaymentDate: "2026-03-06",
	})
	if err != nil {
		t.Fatalf("full truck payment failed: %v", err)
	}
	if !receipt.Balance.IsZero() {
		t.Errorf("expected zero truck balance, got %s", receipt.Balance)
	}

	_, err = payments.RecordTruckPayment(ctx, core.TruckPaymentInput{
		BookingID:   booking.ID,
		Amount:      decimal.NewFromInt(1),
		PaymentDate: "2026-03-07",
	})
	if !core.IsAmount(err) {
		t.Errorf("expected amount error above ceiling, got %v", err)
	}

	// No status flip is defined for the truck side.
	after, err := bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if after.Status != core.BookingPending {
		t.Errorf("truck payoff must not complete the booking, got %s", after.Status)
	}
}

func TestPaymentService_ConcurrentPaymentsNeverOvercommit(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	bookings := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	booking, err := bookings.CreateBooking(ctx, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// Two concurrent 6000 payments against a 10000 freight: the row lock
	// serializes them, so exactly one must succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = payments.RecordPartyPayment(ctx, core.PartyPaymentInput{
				BookingID:   booking.ID,
				PartyID:     booking.PartyID,
				Amount:      decimal.NewFromInt(6000),
				PaymentDate: "2026-03-05",
			})
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			if !core.IsAmount(err) {
				t.Errorf("unexpected error kind: %v", err)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly one rejected payment, got %d failures", failures)
	}

	var total decimal.Decimal
	err = pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM party_payments WHERE booking_id = $1 AND is_deleted = false",
		booking.ID,
	).Scan(&total)
	if err != nil {
		t.Fatalf("failed to sum payments: %v", err)
	}
	if total.GreaterThan(decimal.NewFromInt(10000)) {
		t.Errorf("payments overcommitted the booking: %s", total)
	}
}
