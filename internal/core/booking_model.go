package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the central transaction record linking one party to one truck.
// DifferenceAmount is always recomputed as PartyFreight − TruckFreight when
// the row is written; it is stored for query convenience only.
type Booking struct {
	ID               int             `json:"id"`
	Date             string          `json:"date"` // YYYY-MM-DD
	BookingType      string          `json:"booking_type"`
	Commodity        string          `json:"commodity"`
	FromLocation     string          `json:"from_location"`
	ToLocation       string          `json:"to_location"`
	Rate             decimal.Decimal `json:"rate"`
	TruckRate        decimal.Decimal `json:"truck_rate"`
	Weight           decimal.Decimal `json:"weight"`
	WeightType       string          `json:"weight_type"`
	PartyFreight     decimal.Decimal `json:"party_freight"`
	TruckFreight     decimal.Decimal `json:"truck_freight"`
	DifferenceAmount decimal.Decimal `json:"difference_amount"`
	Status           BookingStatus   `json:"status"`
	CompanyID        int             `json:"company_id"`
	PartyID          int             `json:"party_id"`
	TruckID          int             `json:"truck_id"`
	UpdateBy         int             `json:"update_by"`
	IsDeleted        bool            `json:"is_deleted"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy        *int            `json:"deleted_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`

	// Joined display fields, populated by list/detail queries.
	PartyName   string `json:"party_name,omitempty"`
	PartyPhone  string `json:"party_phone,omitempty"`
	TruckNo     string `json:"truck_no,omitempty"`
	DriverName  string `json:"driver_name,omitempty"`
	DriverPhone string `json:"driver_phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// PartyPayment is a receipt from a party against one booking.
type PartyPayment struct {
	ID            int             `json:"id"`
	BookingID     int             `json:"booking_id"`
	PartyID       int             `json:"party_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	PaymentType   PaymentType     `json:"payment_type"`
	BankAccountNo string          `json:"bank_account_no,omitempty"`
	BankName      string          `json:"bank_name,omitempty"`
	UTRNo         string          `json:"utr_no,omitempty"`
	BankID        *int            `json:"bank_id,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	IsDeleted     bool            `json:"is_deleted"`
}

// TruckPayment is a disbursement to a truck against one booking, tagged by
// PaymentFor as a freight settlement or a halting payout.
type TruckPayment struct {
	ID            int             `json:"id"`
	BookingID     int             `json:"booking_id"`
	TruckID       int             `json:"truck_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	PaymentType   PaymentType     `json:"payment_type"`
	PaymentFor    PaymentFor      `json:"payment_for"`
	BankAccountNo string          `json:"bank_account_no,omitempty"`
	BankName      string          `json:"bank_name,omitempty"`
	UTRNo         string          `json:"utr_no,omitempty"`
	PANNumber     string          `json:"pan_number,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	IsDeleted     bool            `json:"is_deleted"`
}

// Commission is an income record tied to a booking, earned against either
// the truck side or the party side.
type Commission struct {
	ID             int             `json:"id"`
	BookingID      int             `json:"booking_id"`
	CommissionType CommissionType  `json:"commission_type"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMode    PaymentMode     `json:"payment_mode"`
	PaymentDate    string          `json:"payment_date"`
	UTRNo          string          `json:"utr_no,omitempty"`
	Remark         string          `json:"remark,omitempty"`
	IsDeleted      bool            `json:"is_deleted"`
}

// BookingHalting is a detention charge: days × pricePerDay owed to the truck
// for delay at loading or unloading.
type BookingHalting struct {
	ID            int             `json:"id"`
	BookingID     int             `json:"booking_id"`
	TruckID       int             `json:"truck_id"`
	HaltingDate   string          `json:"halting_date"`
	ArrivalTime   string          `json:"arrival_time,omitempty"`
	Days          int             `json:"days"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus string          `json:"payment_status"`
	Reason        string          `json:"reason,omitempty"`
	IsDeleted     bool            `json:"is_deleted"`
}

// BookingDetail is a booking with all of its child records attached.
type BookingDetail struct {
	Booking
	PartyPayments []PartyPayment   `json:"party_payments"`
	TruckPayments []TruckPayment   `json:"truck_payments"`
	Commissions   []Commission     `json:"commissions"`
	Haltings      []BookingHalting `json:"haltings"`
}

// HaltingInput is one detention entry in a booking payload. Entries with
// Days ≤ 0 are skipped. A positive PaidAmount additionally records a
// halting-tagged truck payment.
type HaltingInput struct {
	HaltingDate   string          `json:"halting_date"`
	ArrivalTime   string          `json:"arrival_time"`
	Days          int             `json:"days"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	Reason        string          `json:"reason"`
	PaymentStatus string          `json:"payment_status"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	Remark        string          `json:"remark"`
}

// BookingInput is the full payload for creating or replacing a booking.
// Updates are full-replace: child payment/commission/halting records are
// destroyed and recreated from this payload every time.
type BookingInput struct {
	Date         string          `json:"date"`
	BookingType  string          `json:"booking_type"`
	Commodity    string          `json:"commodity"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Rate         decimal.Decimal `json:"rate"`
	TruckRate    decimal.Decimal `json:"truck_rate"`
	Weight       decimal.Decimal `json:"weight"`
	WeightType   string          `json:"weight_type"`
	PartyFreight decimal.Decimal `json:"party_freight"`
	TruckFreight decimal.Decimal `json:"truck_freight"`
	// DifferenceAmount is optional; when supplied it must agree with
	// PartyFreight − TruckFreight or the payload is rejected.
	DifferenceAmount *decimal.Decimal `json:"difference_amount,omitempty"`
	CompanyID        int              `json:"company_id"`
	PartyID          int              `json:"party_id"`

	TruckNo          string `json:"truck_no"`
	TyreCount        int    `json:"tyre_count"`
	DriverName       string `json:"driver_name"`
	DriverPhone      string `json:"driver_phone"`
	TransporterName  string `json:"transporter_name"`
	TransporterPhone string `json:"transporter_phone"`

	InitialPartyPayment decimal.Decimal `json:"initial_party_payment"`
	PartyPaymentMode    PaymentMode     `json:"party_payment_mode"`
	PartyPaymentDate    string          `json:"party_payment_date"`
	PartyAccountNo      string          `json:"party_account_no"`
	PartyUTRNo          string          `json:"party_utr_no"`

	InitialTruckPayment decimal.Decimal `json:"initial_truck_payment"`
	TruckPaymentMode    PaymentMode     `json:"truck_payment_mode"`
	TruckPaymentDate    string          `json:"truck_payment_date"`
	TruckAccountNo      string          `json:"truck_account_no"`
	TruckBankName       string          `json:"truck_bank_name"`
	TruckUTRNo          string          `json:"truck_utr_no"`
	TruckPANNumber      string          `json:"truck_pan_number"`

	CommissionAmount      decimal.Decimal `json:"commission_amount"`
	CommissionType        CommissionType  `json:"commission_type"`
	CommissionPaymentMode PaymentMode     `json:"commission_payment_mode"`
	CommissionDate        string          `json:"commission_date"`
	CommissionUTRNo       string          `json:"commission_utr_no"`
	CommissionRemark      string          `json:"commission_remark"`

	Haltings []HaltingInput `json:"halting_details"`
}

// BookingFilter selects bookings for listing.
type BookingFilter struct {
	Page      int
	Limit     int
	Status    string // "pending", "complete", or "" / "all"
	Search    string // matches commodity, locations, party name/phone, truck no, driver name/phone
	FromDate  string
	ToDate    string
	CompanyID int
	PartyID   int
	TruckID   int
}

// BookingPage is one page of booking list results.
type BookingPage struct {
	Data       []Booking `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
