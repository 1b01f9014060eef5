package rentadmin

import (
	"fmt"
	"time"
)

// Claims represents the claims read from a bearer token's payload segment.
// The client reads claims for UX purposes only (expiry display); it never
// verifies the signature — authorization is enforced by the server.
type Claims struct {
	Subject   string
	Email     string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// Identity represents the currently authenticated operator.
// It is created on successful login, replaced wholesale on every login,
// and destroyed on logout. A zero ExpiresAt means the token's expiry
// could not be read and cannot be enforced client-side.
type Identity struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Credentials holds the login form input.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a login attempt. Failures are reported
// as data (OK=false plus a message), never as a panic or error.
type LoginResult struct {
	OK      bool
	Message string
	User    *User
}

// ResetResult is the outcome of a password-reset code request.
type ResetResult struct {
	OK      bool
	Message string
}

// User represents an operator account as returned by the API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Vehicle represents a rentable vehicle.
type Vehicle struct {
	ID           string  `json:"id"`
	Plate        string  `json:"plate"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	CategoryID   string  `json:"category_id"`
	BranchID     string  `json:"branch_id"`
	DailyRate    float64 `json:"daily_rate"`
	Status       string  `json:"status"` // available, rented, maintenance
	Odometer     int     `json:"odometer"`
	Transmission string  `json:"transmission"`
}

// Branch represents a rental branch location.
type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// Category represents a vehicle category (economy, SUV, van, ...).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Booking represents a rental booking.
type Booking struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	CustomerID string    `json:"customer_id"`
	BranchID   string    `json:"branch_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"` // pending, confirmed, active, completed, cancelled
	TotalPrice float64   `json:"total_price"`
	DiscountID string    `json:"discount_id,omitempty"`
}

// Customer represents a renter.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LicenseNo string `json:"license_no"`
}

// Discount represents a discount code.
type Discount struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Percent   float64   `json:"percent"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}

// Incident represents a damage or accident report tied to a booking.
type Incident struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	VehicleID   string    `json:"vehicle_id"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"` // minor, major, total_loss
	ReportedAt  time.Time `json:"reported_at"`
	Resolved    bool      `json:"resolved"`
}

// Notification represents an operator notification.
type Notification struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Payment represents a payment captured for a booking.
type Payment struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	Status    string    `json:"status"` // pending, captured, failed, refunded
	CreatedAt time.Time `json:"created_at"`
}

// Refund represents a refund issued against a payment.
type Refund struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"` // requested, approved, rejected
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions holds pagination parameters.
type ListOptions struct {
	Page     int
	PageSize int
}

// Query renders the options as a URL query string, applying the
// defaults page=1 and page_size=20.
func (o ListOptions) Query() string {
	page := o.Page
	if page < 1 {
		page = 1
	}
	size := o.PageSize
	if size < 1 {
		size = 20
	}
	return fmt.Sprintf("page=%d&page_size=%d", page, size)
}
