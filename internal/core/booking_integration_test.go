package core_test

import (
	"context"
	"os"
	"testing"

	"freightledger/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed: one company, one staff user, two parties.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE booking_haltings, commissions, truck_payments, party_payments,
			bookings, trucks, parties, users, banks, companies RESTART IDENTITY CASCADE;

		INSERT INTO companies (company_name) VALUES ('Test Transport Co');

		INSERT INTO users (full_name, email, password_hash, role)
		VALUES ('Test User', 'test@example.com', 'not-a-real-hash', 'admin');

		INSERT INTO parties (party_name, party_phone, party_address) VALUES
		('Agarwal Traders', '9811111111', 'Indore'),
		('Mahesh Agro', '9822222222', 'Ujjain');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

// newBookingInput returns a standard payload: 10000 party freight against
// 8500 truck freight for party 1 on a fresh truck.
func newBookingInput() core.BookingInput {
	return core.BookingInput{
		Date:         "2026-03-01",
		Commodity:    "Soybean",
		FromLocation: "Indore",
		ToLocation:   "Mumbai",
		WeightType:   "ton",
		Weight:       decimal.NewFromInt(25),
		PartyFreight: decimal.NewFromInt(10000),
		TruckFreight: decimal.NewFromInt(8500),
		CompanyID:    1,
		PartyID:      1,
		TruckNo:      "MP09AB1234",
		TyreCount:    10,
		DriverName:   "Ramesh",
		DriverPhone:  "9900000001",
	}
}

func TestBookingService_CreateWithChildren(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)
	ctx := context.Background()

	input := newBookingInput()
	input.InitialPartyPayment = decimal.NewFromInt(3000)
	input.PartyPaymentMode = core.ModeBank
	input.PartyAccountNo = "50100200300401"
	input.PartyPaymentDate = "2026-03-01"
	input.InitialTruckPayment = decimal.NewFromInt(2000)
	input.CommissionAmount = decimal.NewFromInt(500)
	input.CommissionType = core.CommissionTruck
	input.Haltings = []core.HaltingInput{
		{HaltingDate: "2026-03-02", Days: 2, PricePerDay: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(300)},
		{HaltingDate: "2026-03-03", Days: 0, PricePerDay: decimal.NewFromInt(500)}, // skipped
	}

	booking, err := svc.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if !booking.DifferenceAmount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected difference 1500, got %s", booking.DifferenceAmount)
	}
	if booking.Status != core.BookingPending {
		t.Errorf("expected pending status, got %s", booking.Status)
	}
	if len(booking.PartyPayments) != 1 {
		t.Fatalf("expected 1 party payment, got %d", len(booking.PartyPayments))
	}
	if booking.PartyPayments[0].PaymentType != core.TypeCredit {
		t.Errorf("party payment should be Credit, got %s", booking.PartyPayments[0].PaymentType)
	}
	// One freight advance plus one halting payout.
	if len(booking.TruckPayments) != 2 {
		t.Fatalf("expected 2 truck payments, got %d", len(booking.TruckPayments))
	}
	var haltingPaid bool
	for _, p := range booking.TruckPayments {
		if p.PaymentFor == core.ForHalting && p.Amount.Equal(decimal.NewFromInt(300)) {
			haltingPaid = true
		}
	}
	if !haltingPaid {
		t.Error("expected a halting-tagged truck payment of 300")
	}
	if len(booking.Commissions) != 1 || booking.Commissions[0].CommissionType != core.CommissionTruck {
		t.Fatalf("unexpected commissions: %+v", booking.Commissions)
	}
	if len(booking.Haltings) != 1 {
		t.Fatalf("expected 1 halting (zero-day entry skipped), got %d", len(booking.Haltings))
	}
	if !booking.Haltings[0].Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected halting amount 1000 (2 days x 500), got %s", booking.Haltings[0].Amount)
	}
}

func TestBookingService_TruckUpsertFreezesFields(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("first CreateBooking failed: %v", err)
	}

	second := newBookingInput()
	second.PartyID = 2
	second.DriverName = "Someone Else"
	second.DriverPhone = "9999999999"
	created, err := svc.CreateBooking(ctx, second, 1)
	if err != nil {
		t.Fatalf("second CreateBooking failed: %v", err)
	}

	if created.TruckID != first.TruckID {
		t.Errorf("expected truck reuse, got %d vs %d", created.TruckID, first.TruckID)
	}

	var driverName string
	err = pool.QueryRow(ctx, "SELECT driver_name FROM trucks WHERE id = $1", created.TruckID).Scan(&driverName)
	if err != nil {
		t.Fatalf("failed to read truck: %v", err)
	}
	if driverName != "Ramesh" {
		t.Errorf("driver fields must be frozen after first creation, got %q", driverName)
	}

	var truckCount int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM trucks").Scan(&truckCount); err != nil {
		t.Fatalf("failed to count trucks: %v", err)
	}
	if truckCount != 1 {
		t.Errorf("expected exactly 1 truck row, got %d", truckCount)
	}
}

func TestBookingService_UpdateReplacesChildren(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)
	ctx := context.Background()

	input := newBookingInput()
	input.InitialPartyPayment = decimal.NewFromInt(3000)
	input.CommissionAmount = decimal.NewFromInt(500)
	booking, err := svc.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// Update with a payload carrying no payments or commissions: the prior
	// child records must be gone afterward, not merged.
	updated, err := svc.UpdateBooking(ctx, booking.ID, newBookingInput(), 1)
	if err != nil {
		t.Fatalf("UpdateBooking failed: %v", err)
	}
	if len(updated.PartyPayments) != 0 {
		t.Errorf("expected 0 party payments after replace, got %d", len(updated.PartyPayments))
	}
	if len(updated.Commissions) != 0 {
		t.Errorf("expected 0 commissions after replace, got %d", len(updated.Commissions))
	}
}

func TestBookingService_SoftDeleteCascade(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)
	ctx := context.Background()

	input := newBookingInput()
	input.InitialPartyPayment = decimal.NewFromInt(3000)
	input.InitialTruckPayment = decimal.NewFromInt(2000)
	input.CommissionAmount = decimal.NewFromInt(500)
	input.Haltings = []core.HaltingInput{{HaltingDate: "2026-03-02", Days: 1, PricePerDay: decimal.NewFromInt(500)}}
	booking, err := svc.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if err := svc.SoftDeleteBooking(ctx, booking.ID, 1); err != nil {
		t.Fatalf("SoftDeleteBooking failed: %v", err)
	}

	if _, err := svc.GetBooking(ctx, booking.ID); !core.IsNotFound(err) {
		t.Errorf("expected not-found after soft delete, got %v", err)
	}

	// Deleting again reports not-found.
	if err := svc.SoftDeleteBooking(ctx, booking.ID, 1); !core.IsNotFound(err) {
		t.Errorf("expected not-found on double delete, got %v", err)
	}

	// Rows are retained for audit, only flagged.
	for _, table := range []string{"party_payments", "truck_payments", "commissions", "booking_haltings"} {
		var total, flagged int
		err := pool.QueryRow(ctx,
			"SELECT count(*), count(*) FILTER (WHERE is_deleted) FROM "+table+" WHERE booking_id = $1",
			booking.ID,
		).Scan(&total, &flagged)
		if err != nil {
			t.Fatalf("failed to inspect %s: %v", table, err)
		}
		if total == 0 {
			t.Errorf("%s: rows should be retained after soft delete", table)
		}
		if total != flagged {
			t.Errorf("%s: expected all %d rows flagged deleted, got %d", table, total, flagged)
		}
	}
}

func TestBookingService_RejectsTruckAdvanceOverNetPayable(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)
	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	// 8500 freight with a 500 truck commission leaves 8000 payable, so an
	// 8500 advance would create the booking already over-paid.
	input := newBookingInput()
	input.CommissionAmount = decimal.NewFromInt(500)
	input.CommissionType = core.CommissionTruck
	input.InitialTruckPayment = decimal.NewFromInt(8500)
	if _, err := svc.CreateBooking(ctx, input, 1); !core.IsAmount(err) {
		t.Fatalf("expected amount error, got %v", err)
	}

	// At exactly the net payable the booking is created with no remaining
	// truck balance.
	input.InitialTruckPayment = decimal.NewFromInt(8000)
	booking, err := svc.CreateBooking(ctx, input, 1)
	if err != nil {
		t.Fatalf("CreateBooking at net payable failed: %v", err)
	}
	_, err = payments.RecordTruckPayment(ctx, core.TruckPaymentInput{
		BookingID:   booking.ID,
		Amount:      decimal.NewFromInt(1),
		PaymentDate: "2026-03-06",
	})
	if !core.IsAmount(err) {
		t.Fatalf("expected amount error above ceiling, got %v", err)
	}
}

func TestBookingService_UnknownPartyRejected(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewBookingService(pool)

	input := newBookingInput()
	input.PartyID = 999
	if _, err := svc.CreateBooking(context.Background(), input, 1); !core.IsNotFound(err) {
		t.Errorf("expected not-found for unknown party, got %v", err)
	}
}
