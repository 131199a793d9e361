package app

import (
	"context"

	"freightledger/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic. Implementations must contain
// no display logic of any kind.
type ApplicationService interface {
	// Authentication
	Login(ctx context.Context, email, password string) (*core.User, error)
	GetUser(ctx context.Context, userID int) (*core.User, error)

	// Booking lifecycle. actingUserID comes from the verified session.
	CreateBooking(ctx context.Context, input core.BookingInput, actingUserID int) (*core.BookingDetail, error)
	UpdateBooking(ctx context.Context, bookingID int, input core.BookingInput, actingUserID int) (*core.BookingDetail, error)
	SoftDeleteBooking(ctx context.Context, bookingID, actingUserID int) error
	GetBooking(ctx context.Context, bookingID int) (*core.BookingDetail, error)
	GetBookings(ctx context.Context, filter core.BookingFilter) (*core.BookingPage, error)

	// Partial payments
	RecordPartyPayment(ctx context.Context, input core.PartyPaymentInput) (*core.PaymentReceipt, error)
	RecordTruckPayment(ctx context.Context, input core.TruckPaymentInput) (*core.PaymentReceipt, error)

	// Ledger views
	GetPartySummaries(ctx context.Context, search string) ([]core.PartyLedgerSummary, error)
	GetPartyLedger(ctx context.Context, partyID int, fromDate, toDate string) (*core.PartyLedgerDetail, error)
	GetPartyTally(ctx context.Context, partyID int, fromDate, toDate string) (*core.PartyTally, error)
	GetTruckSummaries(ctx context.Context, search string) ([]core.TruckLedgerSummary, error)
	GetTruckLedger(ctx context.Context, truckID int, fromDate, toDate string) (*core.TruckLedgerDetail, error)
	GetTruckTally(ctx context.Context, truckID int, fromDate, toDate string) (*core.TruckTally, error)

	// Accounting reports
	GetDayBook(ctx context.Context, fromDate, toDate string) (*core.DayBook, error)
	GetTrialBalance(ctx context.Context, fromDate, toDate string) (*core.TrialBalance, error)
	GetCommissionLedger(ctx context.Context, fromDate, toDate string) (*core.CommissionLedger, error)
	GetProfitLoss(ctx context.Context, fromDate, toDate string, view core.ProfitLossView) (*core.ProfitLoss, error)
	GetBalanceSheet(ctx context.Context, fromDate, toDate string) (*core.BalanceSheet, error)

	// Master data
	CreateParty(ctx context.Context, input core.PartyInput) (*core.Party, error)
	GetParty(ctx context.Context, partyID int) (*core.Party, error)
	UpdateParty(ctx context.Context, partyID int, input core.PartyInput) (*core.Party, error)
	GetParties(ctx context.Context, search string, page, limit int) (*core.PartyPage, error)
	GetCompanies(ctx context.Context) ([]core.Company, error)
	GetCompany(ctx context.Context, companyID int) (*core.Company, error)
}
