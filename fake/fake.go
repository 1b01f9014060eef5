// Package fake provides in-memory implementations of all rentadmin
// interfaces for testing.
//
// Use fake.NewClient() in unit tests to avoid network calls and
// external dependencies.
package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	rentadmin "github.com/fleetly/rentadmin-go"
)

// Option configures the fake client.
type Option func(*state)

type state struct {
	mu            sync.RWMutex
	operators     map[string]*operatorEntry // email → entry
	vehicles      map[string]*rentadmin.Vehicle
	branches      map[string]*rentadmin.Branch
	categories    map[string]*rentadmin.Category
	bookings      map[string]*rentadmin.Booking
	discounts     map[string]*rentadmin.Discount
	customers     map[string]*rentadmin.Customer
	payments      map[string]*rentadmin.Payment
	refunds       map[string]*rentadmin.Refund
	incidents     map[string]*rentadmin.Incident
	notifications map[string]*rentadmin.Notification
	resetCodes    map[string]string // email → OTP
	nextID        int

	identity *rentadmin.Identity
}

type operatorEntry struct {
	user     rentadmin.User
	password string
}

// WithOperator seeds an operator account that can log in.
func WithOperator(id, name, email, role, password string) Option {
	return func(s *state) {
		s.operators[email] = &operatorEntry{
			user:     rentadmin.User{ID: id, Name: name, Email: email, Role: role},
			password: password,
		}
	}
}

// WithVehicle seeds a vehicle.
func WithVehicle(v rentadmin.Vehicle) Option {
	return func(s *state) { s.vehicles[v.ID] = &v }
}

// WithBranch seeds a branch.
func WithBranch(b rentadmin.Branch) Option {
	return func(s *state) { s.branches[b.ID] = &b }
}

// WithCategory seeds a vehicle category.
func WithCategory(c rentadmin.Category) Option {
	return func(s *state) { s.categories[c.ID] = &c }
}

// WithBooking seeds a booking.
func WithBooking(b rentadmin.Booking) Option {
	return func(s *state) { s.bookings[b.ID] = &b }
}

// WithCustomer seeds a customer.
func WithCustomer(c rentadmin.Customer) Option {
	return func(s *state) { s.customers[c.ID] = &c }
}

// WithPayment seeds a payment.
func WithPayment(p rentadmin.Payment) Option {
	return func(s *state) { s.payments[p.ID] = &p }
}

// WithNotification seeds a notification.
func WithNotification(n rentadmin.Notification) Option {
	return func(s *state) { s.notifications[n.ID] = &n }
}

// WithResetCode seeds a pending password-reset OTP for an email.
func WithResetCode(email, otp string) Option {
	return func(s *state) { s.resetCodes[email] = otp }
}

// NewClient creates a *rentadmin.Client with all services wired to
// in-memory fakes.
func NewClient(opts ...Option) *rentadmin.Client {
	s := &state{
		operators:     make(map[string]*operatorEntry),
		vehicles:      make(map[string]*rentadmin.Vehicle),
		branches:      make(map[string]*rentadmin.Branch),
		categories:    make(map[string]*rentadmin.Category),
		bookings:      make(map[string]*rentadmin.Booking),
		discounts:     make(map[string]*rentadmin.Discount),
		customers:     make(map[string]*rentadmin.Customer),
		payments:      make(map[string]*rentadmin.Payment),
		refunds:       make(map[string]*rentadmin.Refund),
		incidents:     make(map[string]*rentadmin.Incident),
		notifications: make(map[string]*rentadmin.Notification),
		resetCodes:    make(map[string]string),
	}
	for _, o := range opts {
		o(s)
	}

	c, _ := rentadmin.NewClient(
		rentadmin.Config{BaseURL: "fake://localhost"},
		rentadmin.WithAuthenticator(&fakeAuth{s: s}),
		rentadmin.WithFleetService(&fakeFleet{s: s}),
		rentadmin.WithBookingService(&fakeBooking{s: s}),
		rentadmin.WithBillingService(&fakeBilling{s: s}),
		rentadmin.WithCRMService(&fakeCRM{s: s}),
	)
	return c
}

func (s *state) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

// --- Authenticator ---

type fakeAuth struct{ s *state }

func (f *fakeAuth) Login(_ context.Context, creds rentadmin.Credentials) rentadmin.LoginResult {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	op, ok := f.s.operators[creds.Email]
	if !ok || op.password != creds.Password {
		return rentadmin.LoginResult{Message: "invalid credentials"}
	}

	user := op.user
	f.s.identity = &rentadmin.Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     "fake-token-" + user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return rentadmin.LoginResult{OK: true, User: &user}
}

func (f *fakeAuth) Logout(context.Context) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.identity = nil
}

func (f *fakeAuth) SendResetCode(_ context.Context, email string) rentadmin.ResetResult {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.operators[email]; !ok {
		return rentadmin.ResetResult{Message: "unknown email"}
	}
	f.s.resetCodes[email] = "123456"
	return rentadmin.ResetResult{OK: true, Message: "code sent"}
}

func (f *fakeAuth) ConfirmReset(_ context.Context, email, otp, newPassword string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.resetCodes[email] != otp {
		return fmt.Errorf("rentadmin/fake: invalid OTP for %q", email)
	}
	delete(f.s.resetCodes, email)
	if op, ok := f.s.operators[email]; ok {
		op.password = newPassword
	}
	return nil
}

func (f *fakeAuth) Identity() *rentadmin.Identity {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	if f.s.identity == nil {
		return nil
	}
	id := *f.s.identity
	return &id
}

func (f *fakeAuth) Authenticated() bool { return f.Identity() != nil }

func (f *fakeAuth) Token() string {
	if id := f.Identity(); id != nil {
		return id.Token
	}
	return ""
}

func (f *fakeAuth) Loading() bool { return false }

// --- FleetService ---

type fakeFleet struct{ s *state }

func (f *fakeFleet) ListVehicles(_ context.Context, opts rentadmin.ListOptions) ([]rentadmin.Vehicle, int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	all := make([]rentadmin.Vehicle, 0, len(f.s.vehicles))
	for _, v := range f.s.vehicles {
		all = append(all, *v)
	}
	return paginate(all, opts)
}

func (f *fakeFleet) GetVehicle(_ context.Context, id string) (*rentadmin.Vehicle, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	v, ok := f.s.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: vehicle %q not found", id)
	}
	out := *v
	return &out, nil
}

func (f *fakeFleet) CreateVehicle(_ context.Context, v rentadmin.Vehicle) (*rentadmin.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	v.ID = f.s.newID("vehicle")
	if v.Status == "" {
		v.Status = "available"
	}
	f.s.vehicles[v.ID] = &v
	out := v
	return &out, nil
}

func (f *fakeFleet) UpdateVehicle(_ context.Context, v rentadmin.Vehicle) (*rentadmin.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.vehicles[v.ID]; !ok {
		return nil, fmt.Errorf("rentadmin/fake: vehicle %q not found", v.ID)
	}
	f.s.vehicles[v.ID] = &v
	out := v
	return &out, nil
}

func (f *fakeFleet) DeleteVehicle(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.vehicles[id]; !ok {
		return fmt.Errorf("rentadmin/fake: vehicle %q not found", id)
	}
	delete(f.s.vehicles, id)
	return nil
}

func (f *fakeFleet) ListBranches(context.Context) ([]rentadmin.Branch, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	out := make([]rentadmin.Branch, 0, len(f.s.branches))
	for _, b := range f.s.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeFleet) ListCategories(context.Context) ([]rentadmin.Category, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	out := make([]rentadmin.Category, 0, len(f.s.categories))
	for _, c := range f.s.categories {
		out = append(out, *c)
	}
	return out, nil
}

// --- BookingService ---

type fakeBooking struct{ s *state }

func (f *fakeBooking) ListBookings(_ context.Context, opts rentadmin.ListOptions) ([]rentadmin.Booking, int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	all := make([]rentadmin.Booking, 0, len(f.s.bookings))
	for _, b := range f.s.bookings {
		all = append(all, *b)
	}
	return paginate(all, opts)
}

func (f *fakeBooking) GetBooking(_ context.Context, id string) (*rentadmin.Booking, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	b, ok := f.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: booking %q not found", id)
	}
	out := *b
	return &out, nil
}

func (f *fakeBooking) CreateBooking(_ context.Context, b rentadmin.Booking) (*rentadmin.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	v, ok := f.s.vehicles[b.VehicleID]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: vehicle %q not found", b.VehicleID)
	}

	b.ID = f.s.newID("booking")
	b.Status = "pending"
	days := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	b.TotalPrice = float64(days) * v.DailyRate
	f.s.bookings[b.ID] = &b
	out := b
	return &out, nil
}

func (f *fakeBooking) UpdateBookingStatus(_ context.Context, id, status string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.setStatusLocked(id, status)
}

func (f *fakeBooking) CancelBooking(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.setStatusLocked(id, "cancelled")
}

func (f *fakeBooking) setStatusLocked(id, status string) error {
	b, ok := f.s.bookings[id]
	if !ok {
		return fmt.Errorf("rentadmin/fake: booking %q not found", id)
	}
	if b.Status == "completed" || b.Status == "cancelled" {
		return fmt.Errorf("rentadmin/fake: booking %q is %s and cannot change status", id, b.Status)
	}
	b.Status = status
	return nil
}

func (f *fakeBooking) ListDiscounts(context.Context) ([]rentadmin.Discount, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	out := make([]rentadmin.Discount, 0, len(f.s.discounts))
	for _, d := range f.s.discounts {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeBooking) CreateDiscount(_ context.Context, d rentadmin.Discount) (*rentadmin.Discount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d.ID = f.s.newID("discount")
	d.Active = true
	f.s.discounts[d.ID] = &d
	out := d
	return &out, nil
}

// --- BillingService ---

type fakeBilling struct{ s *state }

func (f *fakeBilling) ListPayments(_ context.Context, opts rentadmin.ListOptions) ([]rentadmin.Payment, int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	all := make([]rentadmin.Payment, 0, len(f.s.payments))
	for _, p := range f.s.payments {
		all = append(all, *p)
	}
	return paginate(all, opts)
}

func (f *fakeBilling) GetPayment(_ context.Context, id string) (*rentadmin.Payment, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	p, ok := f.s.payments[id]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: payment %q not found", id)
	}
	out := *p
	return &out, nil
}

func (f *fakeBilling) RequestRefund(_ context.Context, paymentID string, amount float64, reason string) (*rentadmin.Refund, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	p, ok := f.s.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: payment %q not found", paymentID)
	}
	if amount > p.Amount {
		return nil, fmt.Errorf("rentadmin/fake: refund amount exceeds captured total")
	}

	r := rentadmin.Refund{
		ID:        f.s.newID("refund"),
		PaymentID: paymentID,
		Amount:    amount,
		Reason:    reason,
		Status:    "requested",
		CreatedAt: time.Now(),
	}
	f.s.refunds[r.ID] = &r
	out := r
	return &out, nil
}

func (f *fakeBilling) ApproveRefund(_ context.Context, refundID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, ok := f.s.refunds[refundID]
	if !ok {
		return fmt.Errorf("rentadmin/fake: refund %q not found", refundID)
	}
	r.Status = "approved"
	if p, ok := f.s.payments[r.PaymentID]; ok {
		p.Status = "refunded"
	}
	return nil
}

// --- CRMService ---

type fakeCRM struct{ s *state }

func (f *fakeCRM) ListCustomers(_ context.Context, opts rentadmin.ListOptions) ([]rentadmin.Customer, int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	all := make([]rentadmin.Customer, 0, len(f.s.customers))
	for _, c := range f.s.customers {
		all = append(all, *c)
	}
	return paginate(all, opts)
}

func (f *fakeCRM) GetCustomer(_ context.Context, id string) (*rentadmin.Customer, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	c, ok := f.s.customers[id]
	if !ok {
		return nil, fmt.Errorf("rentadmin/fake: customer %q not found", id)
	}
	out := *c
	return &out, nil
}

func (f *fakeCRM) ListIncidents(_ context.Context, opts rentadmin.ListOptions) ([]rentadmin.Incident, int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	all := make([]rentadmin.Incident, 0, len(f.s.incidents))
	for _, i := range f.s.incidents {
		all = append(all, *i)
	}
	return paginate(all, opts)
}

func (f *fakeCRM) ReportIncident(_ context.Context, inc rentadmin.Incident) (*rentadmin.Incident, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	inc.ID = f.s.newID("incident")
	inc.ReportedAt = time.Now()
	inc.Resolved = false
	f.s.incidents[inc.ID] = &inc
	out := inc
	return &out, nil
}

func (f *fakeCRM) ResolveIncident(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	i, ok := f.s.incidents[id]
	if !ok {
		return fmt.Errorf("rentadmin/fake: incident %q not found", id)
	}
	i.Resolved = true
	return nil
}

func (f *fakeCRM) ListNotifications(context.Context) ([]rentadmin.Notification, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	out := make([]rentadmin.Notification, 0, len(f.s.notifications))
	for _, n := range f.s.notifications {
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeCRM) MarkNotificationRead(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	n, ok := f.s.notifications[id]
	if !ok {
		return fmt.Errorf("rentadmin/fake: notification %q not found", id)
	}
	n.Read = true
	return nil
}

func paginate[T any](all []T, opts rentadmin.ListOptions) ([]T, int, error) {
	total := len(all)
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = 20
	}

	start := (page - 1) * size
	if start >= total {
		return nil, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
