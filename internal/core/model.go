package core

import "time"

// EntityStatus is the Active/Inactive flag carried by master data records.
// Parties and trucks are never hard-deleted once referenced by a booking;
// they are flipped to Inactive instead.
type EntityStatus string

const (
	StatusActive   EntityStatus = "Active"
	StatusInactive EntityStatus = "Inactive"
)

type PaymentMode string

const (
	ModeCash PaymentMode = "cash"
	ModeBank PaymentMode = "bank"
)

type PaymentType string

const (
	TypeCredit PaymentType = "Credit"
	TypeDebit  PaymentType = "Debit"
)

// PaymentFor tags a truck disbursement as freight settlement or a halting
// (detention) payout.
type PaymentFor string

const (
	ForFreight PaymentFor = "freight"
	ForHalting PaymentFor = "halting"
)

type CommissionType string

const (
	CommissionTruck CommissionType = "truck"
	CommissionParty CommissionType = "party"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingComplete BookingStatus = "complete"
)

// Party is a paying customer of the brokerage.
type Party struct {
	ID        int          `json:"id"`
	Name      string       `json:"party_name"`
	Phone     string       `json:"party_phone"`
	Address   string       `json:"party_address"`
	Status    EntityStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// Truck is a vehicle/driver/transporter unit hired for bookings. Rows are
// keyed by TruckNo for upsert at booking time; driver and transporter fields
// are frozen after first creation.
type Truck struct {
	ID               int          `json:"id"`
	TruckNo          string       `json:"truck_no"`
	TyreCount        int          `json:"tyre_count"`
	DriverName       string       `json:"driver_name"`
	DriverPhone      string       `json:"driver_phone"`
	TransporterName  string       `json:"transporter_name"`
	TransporterPhone string       `json:"transporter_phone"`
	Status           EntityStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Company is the invoicing identity a booking is billed under.
type Company struct {
	ID          int          `json:"id"`
	Name        string       `json:"company_name"`
	Address     string       `json:"company_address"`
	Email       string       `json:"company_email"`
	GSTNo       string       `json:"gst_no"`
	PANNo       string       `json:"pan_no"`
	PhoneNumber string       `json:"phone_number"`
	Status      EntityStatus `json:"status"`
	Banks       []Bank       `json:"banks,omitempty"`
}

// Bank is a company bank account printed on slips and referenced by payments.
type Bank struct {
	ID         int    `json:"id"`
	CompanyID  int    `json:"company_id"`
	HolderName string `json:"ac_holder_name"`
	AccountNo  string `json:"account_no"`
	BranchName string `json:"branch_name"`
	IFSCCode   string `json:"ifsc_code"`
	IsPrimary  bool   `json:"is_primary"`
}

// User is a staff account. Booking mutations record the acting user's ID.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
