package rentadmin

import "context"

// SessionStore persists the current Identity across page reloads.
// Implementations: store/ (memory, file). The store is a durable mirror
// of the in-memory Identity, not a second owner — on conflict the
// authenticator's copy wins and is the one written back.
type SessionStore interface {
	// Load returns the persisted Identity, or nil when absent.
	// Corrupted content must be treated as absent, not as an error.
	Load() (*Identity, error)

	// Save replaces the persisted Identity. A nil identity clears it.
	Save(id *Identity) error

	// Clear removes the persisted Identity.
	Clear() error
}

// TokenSource is the narrow capability the request gateway depends on.
// It deliberately exposes nothing about login or logout.
type TokenSource interface {
	// Token returns the current bearer token, or "" when anonymous.
	Token() string
}

// Authenticator drives the session lifecycle: login, logout and the
// password-reset sub-flows. Implementations: auth/ .
//
// Login and SendResetCode report failure as data; ConfirmReset reports
// failure as an error. The asymmetry is part of the contract: callers
// of ConfirmReset must handle the error explicitly.
type Authenticator interface {
	TokenSource

	// Login authenticates with email/password credentials.
	Login(ctx context.Context, creds Credentials) LoginResult

	// Logout clears the identity and the session store. Never fails.
	Logout(ctx context.Context)

	// SendResetCode requests a one-time reset code for the email.
	SendResetCode(ctx context.Context, email string) ResetResult

	// ConfirmReset submits the one-time code and the new password.
	ConfirmReset(ctx context.Context, email, otp, newPassword string) error

	// Identity returns the current identity, or nil when anonymous.
	Identity() *Identity

	// Authenticated reports whether an identity is present.
	Authenticated() bool

	// Loading reports whether a login/reset call is in flight.
	Loading() bool
}

// FleetService manages vehicles, branches and categories.
type FleetService interface {
	ListVehicles(ctx context.Context, opts ListOptions) ([]Vehicle, int, error)
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	CreateVehicle(ctx context.Context, v Vehicle) (*Vehicle, error)
	UpdateVehicle(ctx context.Context, v Vehicle) (*Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	ListBranches(ctx context.Context) ([]Branch, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// BookingService manages bookings and discount codes.
type BookingService interface {
	ListBookings(ctx context.Context, opts ListOptions) ([]Booking, int, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	CreateBooking(ctx context.Context, b Booking) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	CancelBooking(ctx context.Context, id string) error

	ListDiscounts(ctx context.Context) ([]Discount, error)
	CreateDiscount(ctx context.Context, d Discount) (*Discount, error)
}

// BillingService exposes payments and refunds.
type BillingService interface {
	ListPayments(ctx context.Context, opts ListOptions) ([]Payment, int, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	RequestRefund(ctx context.Context, paymentID string, amount float64, reason string) (*Refund, error)
	ApproveRefund(ctx context.Context, refundID string) error
}

// CRMService exposes customers, incidents and notifications.
type CRMService interface {
	ListCustomers(ctx context.Context, opts ListOptions) ([]Customer, int, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)

	ListIncidents(ctx context.Context, opts ListOptions) ([]Incident, int, error)
	ReportIncident(ctx context.Context, inc Incident) (*Incident, error)
	ResolveIncident(ctx context.Context, id string) error

	ListNotifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}
