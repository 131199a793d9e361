package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BookingService manages the booking lifecycle. Every mutation runs in a
// single transaction so a booking and its child records never diverge.
type BookingService interface {
	CreateBooking(ctx context.Context, input BookingInput, actingUserID int) (*BookingDetail, error)
	// UpdateBooking replaces the booking header and ALL child records from the
	// payload. Prior payments, commissions and haltings are destroyed first.
	UpdateBooking(ctx context.Context, bookingID int, input BookingInput, actingUserID int) (*BookingDetail, error)
	SoftDeleteBooking(ctx context.Context, bookingID, actingUserID int) error
	GetBooking(ctx context.Context, bookingID int) (*BookingDetail, error)
	GetBookings(ctx context.Context, filter BookingFilter) (*BookingPage, error)
}

type bookingService struct {
	pool *pgxpool.Pool
}

func NewBookingService(pool *pgxpool.Pool) BookingService {
	return &bookingService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxRowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx (for Query).
type pgxRowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func validateBookingInput(input BookingInput) error {
	if input.Date == "" {
		return ValidationError{Field: "date", Msg: "is required"}
	}
	if input.FromLocation == "" {
		return ValidationError{Field: "from_location", Msg: "is required"}
	}
	if input.ToLocation == "" {
		return ValidationError{Field: "to_location", Msg: "is required"}
	}
	if strings.TrimSpace(input.TruckNo) == "" {
		return ValidationError{Field: "truck_no", Msg: "is required"}
	}
	if input.PartyID <= 0 {
		return ValidationError{Field: "party_id", Msg: "is required"}
	}
	if input.CompanyID <= 0 {
		return ValidationError{Field: "company_id", Msg: "is required"}
	}
	if input.PartyFreight.IsNegative() {
		return ValidationError{Field: "party_freight", Msg: "must not be negative"}
	}
	if input.TruckFreight.IsNegative() {
		return ValidationError{Field: "truck_freight", Msg: "must not be negative"}
	}
	if input.DifferenceAmount != nil {
		want := input.PartyFreight.Sub(input.TruckFreight)
		if !input.DifferenceAmount.Equal(want) {
			return ValidationError{
				Field: "difference_amount",
				Msg:   fmt.Sprintf("must equal party_freight - truck_freight (%s)", want.String()),
			}
		}
	}
	if input.InitialPartyPayment.IsNegative() {
		return ValidationError{Field: "initial_party_payment", Msg: "must not be negative"}
	}
	if input.InitialPartyPayment.GreaterThan(input.PartyFreight) {
		return AmountError{
			Msg:       fmt.Sprintf("Payment exceeds remaining balance. Remaining: %s", input.PartyFreight.String()),
			Remaining: input.PartyFreight,
		}
	}
	if input.InitialTruckPayment.IsNegative() {
		return ValidationError{Field: "initial_truck_payment", Msg: "must not be negative"}
	}
	if input.CommissionAmount.IsNegative() {
		return ValidationError{Field: "commission_amount", Msg: "must not be negative"}
	}
	// The truck ceiling is net of a truck-type commission carried in the same
	// payload, so a booking can never be created already over-paid.
	truckPayable := input.TruckFreight
	if orCommissionType(input.CommissionType) == CommissionTruck && input.CommissionAmount.IsPositive() {
		truckPayable = truckPayable.Sub(input.CommissionAmount)
	}
	if truckPayable.IsNegative() {
		return ValidationError{Field: "commission_amount", Msg: "must not exceed truck_freight"}
	}
	if input.InitialTruckPayment.GreaterThan(truckPayable) {
		return AmountError{
			Msg:       fmt.Sprintf("Payment exceeds remaining balance. Remaining: %s", truckPayable.String()),
			Remaining: truckPayable,
		}
	}
	if input.InitialPartyPayment.IsPositive() {
		if err := validateBankDetails(input.PartyPaymentMode, input.PartyAccountNo, input.PartyUTRNo); err != nil {
			return err
		}
	}
	if input.InitialTruckPayment.IsPositive() {
		if err := validateBankDetails(input.TruckPaymentMode, input.TruckAccountNo, input.TruckBankName, input.TruckUTRNo); err != nil {
			return err
		}
	}
	return nil
}

// upsertTruck finds the truck by its registration number or creates it.
// Existing trucks are returned as-is: driver and transporter details are
// frozen at first creation and never overwritten by later bookings.
func upsertTruck(ctx context.Context, tx pgx.Tx, input BookingInput) (int, error) {
	truckNo := strings.ToUpper(strings.TrimSpace(input.TruckNo))

	var truckID int
	err := tx.QueryRow(ctx, "SELECT id FROM trucks WHERE truck_no = $1", truckNo).Scan(&truckID)
	if err == nil {
		return truckID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up truck %s: %w", truckNo, err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO trucks (truck_no, tyre_count, driver_name, driver_phone, transporter_name, transporter_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, truckNo, input.TyreCount, input.DriverName, input.DriverPhone,
		input.TransporterName, input.TransporterPhone).Scan(&truckID)
	if err != nil {
		return 0, fmt.Errorf("failed to create truck %s: %w", truckNo, err)
	}
	return truckID, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, input BookingInput, actingUserID int) (*BookingDetail, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.verifyReferences(ctx, tx, input); err != nil {
		return nil, err
	}

	truckID, err := upsertTruck(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	difference := input.PartyFreight.Sub(input.TruckFreight)
	status := BookingPending
	if input.InitialPartyPayment.Equal(input.PartyFreight) && input.PartyFreight.IsPositive() {
		status = BookingComplete
	}

	var bookingID int
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (date, booking_type, commodity, from_location, to_location,
			rate, truck_rate, weight, weight_type, party_freight, truck_freight,
			difference_amount, status, company_id, party_id, truck_id, update_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`, input.Date, input.BookingType, input.Commodity, input.FromLocation, input.ToLocation,
		input.Rate, input.TruckRate, input.Weight, input.WeightType,
		input.PartyFreight, input.TruckFreight, difference, status,
		input.CompanyID, input.PartyID, truckID, actingUserID).Scan(&bookingID)
	if err != nil {
		return nil, TransactionError{Op: "insert booking", Err: err}
	}

	if err := createChildRecords(ctx, tx, bookingID, truckID, input); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking creation: %w", err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int, input BookingInput, actingUserID int) (*BookingDetail, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var isDeleted bool
	err = tx.QueryRow(ctx, "SELECT is_deleted FROM bookings WHERE id = $1 FOR UPDATE", bookingID).Scan(&isDeleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "booking", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
	}
	if isDeleted {
		return nil, NotFoundError{Resource: "booking"}
	}

	if err := s.verifyReferences(ctx, tx, input); err != nil {
		return nil, err
	}

	truckID, err := upsertTruck(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	// Destroy all child records before recreating them from the payload.
	for _, table := range []string{"party_payments", "truck_payments", "commissions", "booking_haltings"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE booking_id = $1", table), bookingID); err != nil {
			return nil, TransactionError{Op: "clear " + table, Err: err}
		}
	}

	difference := input.PartyFreight.Sub(input.TruckFreight)
	status := BookingPending
	if input.InitialPartyPayment.Equal(input.PartyFreight) && input.PartyFreight.IsPositive() {
		status = BookingComplete
	}

	_, err = tx.Exec(ctx, `
		UPDATE bookings
		SET date = $1, booking_type = $2, commodity = $3, from_location = $4, to_location = $5,
			rate = $6, truck_rate = $7, weight = $8, weight_type = $9,
			party_freight = $10, truck_freight = $11, difference_amount = $12, status = $13,
			company_id = $14, party_id = $15, truck_id = $16, update_by = $17
		WHERE id = $18
	`, input.Date, input.BookingType, input.Commodity, input.FromLocation, input.ToLocation,
		input.Rate, input.TruckRate, input.Weight, input.WeightType,
		input.PartyFreight, input.TruckFreight, difference, status,
		input.CompanyID, input.PartyID, truckID, actingUserID, bookingID)
	if err != nil {
		return nil, TransactionError{Op: "update booking", Err: err}
	}

	if err := createChildRecords(ctx, tx, bookingID, truckID, input); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking update: %w", err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *bookingService) SoftDeleteBooking(ctx context.Context, bookingID, actingUserID int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var isDeleted bool
	err = tx.QueryRow(ctx, "SELECT is_deleted FROM bookings WHERE id = $1 FOR UPDATE", bookingID).Scan(&isDeleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Resource: "booking", Err: err}
		}
		return fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
	}
	if isDeleted {
		return NotFoundError{Resource: "booking"}
	}

	_, err = tx.Exec(ctx, `
		UPDATE bookings
		SET is_deleted = true, deleted_at = NOW(), deleted_by = $1
		WHERE id = $2
	`, actingUserID, bookingID)
	if err != nil {
		return TransactionError{Op: "soft delete booking", Err: err}
	}

	for _, table := range []string{"party_payments", "truck_payments", "commissions", "booking_haltings"} {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf("UPDATE %s SET is_deleted = true WHERE booking_id = $1", table), bookingID); err != nil {
			return TransactionError{Op: "soft delete " + table, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking deletion: %w", err)
	}
	return nil
}

// verifyReferences checks that the party and company exist and are active.
func (s *bookingService) verifyReferences(ctx context.Context, q pgxQuerier, input BookingInput) error {
	var partyStatus string
	err := q.QueryRow(ctx, "SELECT status FROM parties WHERE id = $1", input.PartyID).Scan(&partyStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Resource: "party", Err: err}
		}
		return fmt.Errorf("failed to verify party %d: %w", input.PartyID, err)
	}
	if partyStatus != string(StatusActive) {
		return ValidationError{Field: "party_id", Msg: "party is inactive"}
	}

	var companyID int
	err = q.QueryRow(ctx, "SELECT id FROM companies WHERE id = $1", input.CompanyID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Resource: "company", Err: err}
		}
		return fmt.Errorf("failed to verify company %d: %w", input.CompanyID, err)
	}
	return nil
}

// createChildRecords writes the conditional payment, commission and halting
// rows for a booking. Shared between create and the full-replace update.
func createChildRecords(ctx context.Context, tx pgx.Tx, bookingID, truckID int, input BookingInput) error {
	if input.InitialPartyPayment.IsPositive() {
		date := input.PartyPaymentDate
		if date == "" {
			date = input.Date
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO party_payments (booking_id, party_id, amount, payment_date, payment_mode,
				payment_type, bank_account_no, utr_no, remarks)
			VALUES ($1, $2, $3, $4, $5, 'Credit', $6, $7, 'Freight Advance')
		`, bookingID, input.PartyID, input.InitialPartyPayment, date,
			orMode(input.PartyPaymentMode), input.PartyAccountNo, input.PartyUTRNo)
		if err != nil {
			return TransactionError{Op: "insert party payment", Err: err}
		}
	}

	if input.InitialTruckPayment.IsPositive() {
		date := input.TruckPaymentDate
		if date == "" {
			date = input.Date
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO truck_payments (booking_id, truck_id, amount, payment_date, payment_mode,
				payment_type, payment_for, bank_account_no, bank_name, utr_no, pan_number, remarks)
			VALUES ($1, $2, $3, $4, $5, 'Debit', 'freight', $6, $7, $8, $9, 'Advance')
		`, bookingID, truckID, input.InitialTruckPayment, date,
			orMode(input.TruckPaymentMode), input.TruckAccountNo, input.TruckBankName,
			input.TruckUTRNo, input.TruckPANNumber)
		if err != nil {
			return TransactionError{Op: "insert truck payment", Err: err}
		}
	}

	if input.CommissionAmount.IsPositive() {
		date := input.CommissionDate
		if date == "" {
			date = input.Date
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO commissions (booking_id, commission_type, amount, payment_mode, payment_date, utr_no, remark)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, bookingID, orCommissionType(input.CommissionType), input.CommissionAmount,
			orMode(input.CommissionPaymentMode), date, input.CommissionUTRNo, input.CommissionRemark)
		if err != nil {
			return TransactionError{Op: "insert commission", Err: err}
		}
	}

	for _, h := range input.Haltings {
		if h.Days <= 0 {
			continue
		}
		amount := h.PricePerDay.Mul(decimal.NewFromInt(int64(h.Days)))
		date := h.HaltingDate
		if date == "" {
			date = input.Date
		}
		paymentStatus := h.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = "pending"
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_haltings (booking_id, truck_id, halting_date, arrival_time,
				days, price_per_day, amount, payment_status, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, bookingID, truckID, date, h.ArrivalTime, h.Days, h.PricePerDay, amount, paymentStatus, h.Reason)
		if err != nil {
			return TransactionError{Op: "insert halting", Err: err}
		}

		if h.PaidAmount.IsPositive() {
			_, err := tx.Exec(ctx, `
				INSERT INTO truck_payments (booking_id, truck_id, amount, payment_date, payment_mode,
					payment_type, payment_for, remarks)
				VALUES ($1, $2, $3, $4, $5, 'Debit', 'halting', $6)
			`, bookingID, truckID, h.PaidAmount, date, orMode(h.PaymentMode), h.Remark)
			if err != nil {
				return TransactionError{Op: "insert halting payment", Err: err}
			}
		}
	}
	return nil
}

func orMode(mode PaymentMode) PaymentMode {
	if mode == "" {
		return ModeCash
	}
	return mode
}

func orCommissionType(t CommissionType) CommissionType {
	if t == "" {
		return CommissionTruck
	}
	return t
}

// validateBankDetails rejects a bank-mode payment that carries no bank
// reference at all. At least one of the reference fields must be set.
func validateBankDetails(mode PaymentMode, refs ...string) error {
	if orMode(mode) != ModeBank {
		return nil
	}
	for _, r := range refs {
		if strings.TrimSpace(r) != "" {
			return nil
		}
	}
	return ValidationError{Field: "payment_mode", Msg: "bank details are required for bank payments"}
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int) (*BookingDetail, error) {
	var d BookingDetail
	err := s.pool.QueryRow(ctx, `
		SELECT b.id, b.date::text, b.booking_type, b.commodity, b.from_location, b.to_location,
		       b.rate, b.truck_rate, b.weight, b.weight_type,
		       b.party_freight, b.truck_freight, b.difference_amount, b.status,
		       b.company_id, b.party_id, b.truck_id, b.update_by, b.created_at,
		       p.party_name, p.party_phone, t.truck_no, t.driver_name, t.driver_phone, c.company_name
		FROM bookings b
		JOIN parties p ON p.id = b.party_id
		JOIN trucks t ON t.id = b.truck_id
		JOIN companies c ON c.id = b.company_id
		WHERE b.id = $1 AND b.is_deleted = false
	`, bookingID).Scan(
		&d.ID, &d.Date, &d.BookingType, &d.Commodity, &d.FromLocation, &d.ToLocation,
		&d.Rate, &d.TruckRate, &d.Weight, &d.WeightType,
		&d.PartyFreight, &d.TruckFreight, &d.DifferenceAmount, &d.Status,
		&d.CompanyID, &d.PartyID, &d.TruckID, &d.UpdateBy, &d.CreatedAt,
		&d.PartyName, &d.PartyPhone, &d.TruckNo, &d.DriverName, &d.DriverPhone, &d.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "booking", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch booking %d: %w", bookingID, err)
	}

	if d.PartyPayments, err = fetchPartyPayments(ctx, s.pool, bookingID); err != nil {
		return nil, err
	}
	if d.TruckPayments, err = fetchTruckPayments(ctx, s.pool, bookingID); err != nil {
		return nil, err
	}
	if d.Commissions, err = fetchCommissions(ctx, s.pool, bookingID); err != nil {
		return nil, err
	}
	if d.Haltings, err = fetchHaltings(ctx, s.pool, bookingID); err != nil {
		return nil, err
	}
	return &d, nil
}

func fetchPartyPayments(ctx context.Context, q pgxRowQuerier, bookingID int) ([]PartyPayment, error) {
	rows, err := q.Query(ctx, `
		SELECT id, booking_id, party_id, amount, payment_date::text, payment_mode, payment_type,
		       bank_account_no, bank_name, utr_no, bank_id, remarks
		FROM party_payments
		WHERE booking_id = $1 AND is_deleted = false
		ORDER BY payment_date, id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query party payments: %w", err)
	}
	defer rows.Close()

	var payments []PartyPayment
	for rows.Next() {
		var p PartyPayment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.PartyID, &p.Amount, &p.PaymentDate,
			&p.PaymentMode, &p.PaymentType, &p.BankAccountNo, &p.BankName, &p.UTRNo,
			&p.BankID, &p.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan party payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func fetchTruckPayments(ctx context.Context, q pgxRowQuerier, bookingID int) ([]TruckPayment, error) {
	rows, err := q.Query(ctx, `
		SELECT id, booking_id, truck_id, amount, payment_date::text, payment_mode, payment_type,
		       payment_for, bank_account_no, bank_name, utr_no, pan_number, remarks
		FROM truck_payments
		WHERE booking_id = $1 AND is_deleted = false
		ORDER BY payment_date, id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query truck payments: %w", err)
	}
	defer rows.Close()

	var payments []TruckPayment
	for rows.Next() {
		var p TruckPayment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.TruckID, &p.Amount, &p.PaymentDate,
			&p.PaymentMode, &p.PaymentType, &p.PaymentFor, &p.BankAccountNo, &p.BankName,
			&p.UTRNo, &p.PANNumber, &p.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan truck payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func fetchCommissions(ctx context.Context, q pgxRowQuerier, bookingID int) ([]Commission, error) {
	rows, err := q.Query(ctx, `
		SELECT id, booking_id, commission_type, amount, payment_mode, payment_date::text, utr_no, remark
		FROM commissions
		WHERE booking_id = $1 AND is_deleted = false
		ORDER BY payment_date, id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions: %w", err)
	}
	defer rows.Close()

	var commissions []Commission
	for rows.Next() {
		var c Commission
		if err := rows.Scan(&c.ID, &c.BookingID, &c.CommissionType, &c.Amount,
			&c.PaymentMode, &c.PaymentDate, &c.UTRNo, &c.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		commissions = append(commissions, c)
	}
	return commissions, nil
}

func fetchHaltings(ctx context.Context, q pgxRowQuerier, bookingID int) ([]BookingHalting, error) {
	rows, err := q.Query(ctx, `
		SELECT id, booking_id, truck_id, halting_date::text, arrival_time, days,
		       price_per_day, amount, payment_status, reason
		FROM booking_haltings
		WHERE booking_id = $1 AND is_deleted = false
		ORDER BY halting_date, id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query haltings: %w", err)
	}
	defer rows.Close()

	var haltings []BookingHalting
	for rows.Next() {
		var h BookingHalting
		if err := rows.Scan(&h.ID, &h.BookingID, &h.TruckID, &h.HaltingDate, &h.ArrivalTime,
			&h.Days, &h.PricePerDay, &h.Amount, &h.PaymentStatus, &h.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan halting: %w", err)
		}
		haltings = append(haltings, h)
	}
	return haltings, nil
}

func (s *bookingService) GetBookings(ctx context.Context, filter BookingFilter) (*BookingPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 20
	}

	where := []string{"b.is_deleted = false"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" && filter.Status != "all" {
		where = append(where, "b.status = "+arg(filter.Status))
	}
	if filter.FromDate != "" {
		where = append(where, "b.date >= "+arg(filter.FromDate))
	}
	if filter.ToDate != "" {
		where = append(where, "b.date <= "+arg(filter.ToDate))
	}
	if filter.CompanyID > 0 {
		where = append(where, "b.company_id = "+arg(filter.CompanyID))
	}
	if filter.PartyID > 0 {
		where = append(where, "b.party_id = "+arg(filter.PartyID))
	}
	if filter.TruckID > 0 {
		where = append(where, "b.truck_id = "+arg(filter.TruckID))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(`(b.commodity ILIKE %[1]s OR b.from_location ILIKE %[1]s
			OR b.to_location ILIKE %[1]s OR p.party_name ILIKE %[1]s OR p.party_phone ILIKE %[1]s
			OR t.truck_no ILIKE %[1]s OR t.driver_name ILIKE %[1]s OR t.driver_phone ILIKE %[1]s)`, pattern))
	}

	whereClause := strings.Join(where, " AND ")
	fromClause := `
		FROM bookings b
		JOIN parties p ON p.id = b.party_id
		JOIN trucks t ON t.id = b.truck_id
		JOIN companies c ON c.id = b.company_id
		WHERE ` + whereClause

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) "+fromClause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT b.id, b.date::text, b.booking_type, b.commodity, b.from_location, b.to_location,
		       b.rate, b.truck_rate, b.weight, b.weight_type,
		       b.party_freight, b.truck_freight, b.difference_amount, b.status,
		       b.company_id, b.party_id, b.truck_id, b.update_by, b.created_at,
		       p.party_name, p.party_phone, t.truck_no, t.driver_name, t.driver_phone, c.company_name` +
		fromClause +
		fmt.Sprintf(" ORDER BY b.date DESC, b.id DESC LIMIT %s OFFSET %s", arg(filter.Limit), arg(offset))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Date, &b.BookingType, &b.Commodity, &b.FromLocation, &b.ToLocation,
			&b.Rate, &b.TruckRate, &b.Weight, &b.WeightType,
			&b.PartyFreight, &b.TruckFreight, &b.DifferenceAmount, &b.Status,
			&b.CompanyID, &b.PartyID, &b.TruckID, &b.UpdateBy, &b.CreatedAt,
			&b.PartyName, &b.PartyPhone, &b.TruckNo, &b.DriverName, &b.DriverPhone, &b.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return &BookingPage{
		Data:       bookings,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
