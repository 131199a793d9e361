package app

import (
	"context"

	"freightledger/internal/core"
)

type appService struct {
	users        core.UserService
	bookings     core.BookingService
	payments     core.PaymentService
	ledgers      core.LedgerService
	partyLedgers core.PartyLedgerService
	truckLedgers core.TruckLedgerService
	reports      core.ReportingService
	parties      core.PartyService
	companies    core.CompanyService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	users core.UserService,
	bookings core.BookingService,
	payments core.PaymentService,
	ledgers core.LedgerService,
	partyLedgers core.PartyLedgerService,
	truckLedgers core.TruckLedgerService,
	reports core.ReportingService,
	parties core.PartyService,
	companies core.CompanyService,
) ApplicationService {
	return &appService{
		users:        users,
		bookings:     bookings,
		payments:     payments,
		ledgers:      ledgers,
		partyLedgers: partyLedgers,
		truckLedgers: truckLedgers,
		reports:      reports,
		parties:      parties,
		companies:    companies,
	}
}

func (s *appService) Login(ctx context.Context, email, password string) (*core.User, error) {
	return s.users.Authenticate(ctx, email, password)
}

func (s *appService) GetUser(ctx context.Context, userID int) (*core.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *appService) CreateBooking(ctx context.Context, input core.BookingInput, actingUserID int) (*core.BookingDetail, error) {
	return s.bookings.CreateBooking(ctx, input, actingUserID)
}

func (s *appService) UpdateBooking(ctx context.Context, bookingID int, input core.BookingInput, actingUserID int) (*core.BookingDetail, error) {
	return s.bookings.UpdateBooking(ctx, bookingID, input, actingUserID)
}

func (s *appService) SoftDeleteBooking(ctx context.Context, bookingID, actingUserID int) error {
	return s.bookings.SoftDeleteBooking(ctx, bookingID, actingUserID)
}

func (s *appService) GetBooking(ctx context.Context, bookingID int) (*core.BookingDetail, error) {
	return s.bookings.GetBooking(ctx, bookingID)
}

func (s *appService) GetBookings(ctx context.Context, filter core.BookingFilter) (*core.BookingPage, error) {
	return s.bookings.GetBookings(ctx, filter)
}

func (s *appService) RecordPartyPayment(ctx context.Context, input core.PartyPaymentInput) (*core.PaymentReceipt, error) {
	return s.payments.RecordPartyPayment(ctx, input)
}

func (s *appService) RecordTruckPayment(ctx context.Context, input core.TruckPaymentInput) (*core.PaymentReceipt, error) {
	return s.payments.RecordTruckPayment(ctx, input)
}

func (s *appService) GetPartySummaries(ctx context.Context, search string) ([]core.PartyLedgerSummary, error) {
	return s.partyLedgers.GetPartySummaries(ctx, search)
}

func (s *appService) GetPartyLedger(ctx context.Context, partyID int, fromDate, toDate string) (*core.PartyLedgerDetail, error) {
	return s.partyLedgers.GetPartyLedger(ctx, partyID, fromDate, toDate)
}

func (s *appService) GetPartyTally(ctx context.Context, partyID int, fromDate, toDate string) (*core.PartyTally, error) {
	return s.partyLedgers.GetPartyTally(ctx, partyID, fromDate, toDate)
}

func (s *appService) GetTruckSummaries(ctx context.Context, search string) ([]core.TruckLedgerSummary, error) {
	return s.truckLedgers.GetTruckSummaries(ctx, search)
}

func (s *appService) GetTruckLedger(ctx context.Context, truckID int, fromDate, toDate string) (*core.TruckLedgerDetail, error) {
	return s.truckLedgers.GetTruckLedger(ctx, truckID, fromDate, toDate)
}

func (s *appService) GetTruckTally(ctx context.Context, truckID int, fromDate, toDate string) (*core.TruckTally, error) {
	return s.truckLedgers.GetTruckTally(ctx, truckID, fromDate, toDate)
}

func (s *appService) GetDayBook(ctx context.Context, fromDate, toDate string) (*core.DayBook, error) {
	return s.ledgers.GetDayBook(ctx, fromDate, toDate)
}

func (s *appService) GetTrialBalance(ctx context.Context, fromDate, toDate string) (*core.TrialBalance, error) {
	return s.ledgers.GetTrialBalance(ctx, fromDate, toDate)
}

func (s *appService) GetCommissionLedger(ctx context.Context, fromDate, toDate string) (*core.CommissionLedger, error) {
	return s.ledgers.GetCommissionLedger(ctx, fromDate, toDate)
}

func (s *appService) GetProfitLoss(ctx context.Context, fromDate, toDate string, view core.ProfitLossView) (*core.ProfitLoss, error) {
	return s.reports.GetProfitLoss(ctx, fromDate, toDate, view)
}

func (s *appService) GetBalanceSheet(ctx context.Context, fromDate, toDate string) (*core.BalanceSheet, error) {
	return s.reports.GetBalanceSheet(ctx, fromDate, toDate)
}

func (s *appService) CreateParty(ctx context.Context, input core.PartyInput) (*core.Party, error) {
	return s.parties.CreateParty(ctx, input)
}

func (s *appService) GetParty(ctx context.Context, partyID int) (*core.Party, error) {
	return s.parties.GetParty(ctx, partyID)
}

func (s *appService) UpdateParty(ctx context.Context, partyID int, input core.PartyInput) (*core.Party, error) {
	return s.parties.UpdateParty(ctx, partyID, input)
}

func (s *appService) GetParties(ctx context.Context, search string, page, limit int) (*core.PartyPage, error) {
	return s.parties.GetParties(ctx, search, page, limit)
}

func (s *appService) GetCompanies(ctx context.Context) ([]core.Company, error) {
	return s.companies.GetCompanies(ctx)
}

func (s *appService) GetCompany(ctx context.Context, companyID int) (*core.Company, error) {
	return s.companies.GetCompany(ctx, companyID)
}
