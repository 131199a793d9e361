package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PaymentService records partial payments against existing bookings. The
// booking row is locked for the whole read-check-write so two concurrent
// payments can never jointly exceed the outstanding balance.
type PaymentService interface {
	RecordPartyPayment(ctx context.Context, input PartyPaymentInput) (*PaymentReceipt, error)
	RecordTruckPayment(ctx context.Context, input TruckPaymentInput) (*PaymentReceipt, error)
}

// PartyPaymentInput is a receipt from a party against one booking. The
// booking must belong to PartyID; a mismatch reads as not found.
type PartyPaymentInput struct {
	BookingID     int             `json:"booking_id"`
	PartyID       int             `json:"party_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	BankAccountNo string          `json:"bank_account_no"`
	BankName      string          `json:"bank_name"`
	UTRNo         string          `json:"utr_no"`
	BankID        *int            `json:"bank_id"`
	Remarks       string          `json:"remarks"`
}

// TruckPaymentInput is a freight disbursement to a truck against one booking.
type TruckPaymentInput struct {
	BookingID     int             `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	BankAccountNo string          `json:"bank_account_no"`
	BankName      string          `json:"bank_name"`
	UTRNo         string          `json:"utr_no"`
	PANNumber     string          `json:"pan_number"`
	Remarks       string          `json:"remarks"`
}

// PaymentReceipt reports the state of the booking side after a payment.
type PaymentReceipt struct {
	BookingID int             `json:"booking_id"`
	PaidNow   decimal.Decimal `json:"paid_now"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Balance   decimal.Decimal `json:"balance"`
}

type paymentService struct {
	pool *pgxpool.Pool
}

func NewPaymentService(pool *pgxpool.Pool) PaymentService {
	return &paymentService{pool: pool}
}

// lockBooking fetches the freight figures under FOR UPDATE so concurrent
// payments against the same booking serialize.
func lockBooking(ctx context.Context, tx pgx.Tx, bookingID int) (partyID, truckID int, partyFreight, truckFreight decimal.Decimal, err error) {
	var isDeleted bool
	err = tx.QueryRow(ctx, `
		SELECT party_id, truck_id, party_freight, truck_freight, is_deleted
		FROM bookings WHERE id = $1 FOR UPDATE
	`, bookingID).Scan(&partyID, &truckID, &partyFreight, &truckFreight, &isDeleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = NotFoundError{Resource: "booking", Err: err}
			return
		}
		err = fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
		return
	}
	if isDeleted {
		err = NotFoundError{Resource: "booking"}
	}
	return
}

func (s *paymentService) RecordPartyPayment(ctx context.Context, input PartyPaymentInput) (*PaymentReceipt, error) {
	if !input.Amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if input.PaymentDate == "" {
		return nil, ValidationError{Field: "payment_date", Msg: "is required"}
	}
	if input.PartyID <= 0 {
		return nil, ValidationError{Field: "party_id", Msg: "is required"}
	}
	if input.BankID == nil {
		if err := validateBankDetails(input.PaymentMode, input.BankAccountNo, input.BankName, input.UTRNo); err != nil {
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	partyID, _, partyFreight, _, err := lockBooking(ctx, tx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if partyID != input.PartyID {
		return nil, NotFoundError{Resource: "booking"}
	}

	var alreadyPaid decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM party_payments
		WHERE booking_id = $1 AND is_deleted = false
	`, input.BookingID).Scan(&alreadyPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum party payments: %w", err)
	}

	remaining := partyFreight.Sub(alreadyPaid)
	if input.Amount.GreaterThan(remaining) {
		return nil, AmountError{
			Msg:       fmt.Sprintf("Payment exceeds remaining balance. Remaining: %s", remaining.String()),
			Remaining: remaining,
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO party_payments (booking_id, party_id, amount, payment_date, payment_mode,
			payment_type, bank_account_no, bank_name, utr_no, bank_id, remarks)
		VALUES ($1, $2, $3, $4, $5, 'Credit', $6, $7, $8, $9, $10)
	`, input.BookingID, partyID, input.Amount, input.PaymentDate, orMode(input.PaymentMode),
		input.BankAccountNo, input.BankName, input.UTRNo, input.BankID, input.Remarks)
	if err != nil {
		return nil, TransactionError{Op: "insert party payment", Err: err}
	}

	totalPaid := alreadyPaid.Add(input.Amount)
	balance := partyFreight.Sub(totalPaid)

	// Exact payoff completes the booking on the party side.
	if balance.IsZero() {
		if _, err := tx.Exec(ctx,
			"UPDATE bookings SET status = 'complete' WHERE id = $1", input.BookingID); err != nil {
			return nil, TransactionError{Op: "complete booking", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit party payment: %w", err)
	}

	return &PaymentReceipt{
		BookingID: input.BookingID,
		PaidNow:   input.Amount,
		TotalPaid: totalPaid,
		Balance:   balance,
	}, nil
}

func (s *paymentService) RecordTruckPayment(ctx context.Context, input TruckPaymentInput) (*PaymentReceipt, error) {
	if !input.Amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if input.PaymentDate == "" {
		return nil, ValidationError{Field: "payment_date", Msg: "is required"}
	}
	if err := validateBankDetails(input.PaymentMode, input.BankAccountNo, input.BankName, input.UTRNo); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, truckID, _, truckFreight, err := lockBooking(ctx, tx, input.BookingID)
	if err != nil {
		return nil, err
	}

	// The payable ceiling nets truck-type commissions out of the freight.
	// Halting payouts are tracked separately and do not count against it.
	var alreadyPaid, truckCommission decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM truck_payments
		WHERE booking_id = $1 AND payment_for = 'freight' AND is_deleted = false
	`, input.BookingID).Scan(&alreadyPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum truck payments: %w", err)
	}
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM commissions
		WHERE booking_id = $1 AND commission_type = 'truck' AND is_deleted = false
	`, input.BookingID).Scan(&truckCommission)
	if err != nil {
		return nil, fmt.Errorf("failed to sum truck commissions: %w", err)
	}

	payable := truckFreight.Sub(truckCommission)
	remaining := payable.Sub(alreadyPaid)
	if input.Amount.GreaterThan(remaining) {
		return nil, AmountError{
			Msg:       fmt.Sprintf("Payment exceeds remaining balance. Remaining: %s", remaining.String()),
			Remaining: remaining,
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO truck_payments (booking_id, truck_id, amount, payment_date, payment_mode,
			payment_type, payment_for, bank_account_no, bank_name, utr_no, pan_number, remarks)
		VALUES ($1, $2, $3, $4, $5, 'Debit', 'freight', $6, $7, $8, $9, $10)
	`, input.BookingID, truckID, input.Amount, input.PaymentDate, orMode(input.PaymentMode),
		input.BankAccountNo, input.BankName, input.UTRNo, input.PANNumber, input.Remarks)
	if err != nil {
		return nil, TransactionError{Op: "insert truck payment", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit truck payment: %w", err)
	}

	totalPaid := alreadyPaid.Add(input.Amount)
	return &PaymentReceipt{
		BookingID: input.BookingID,
		PaidNow:   input.Amount,
		TotalPaid: totalPaid,
		Balance:   payable.Sub(totalPaid),
	}, nil
}
