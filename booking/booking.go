// Package booking provides the BookingService implementation over the
// API gateway: bookings, status transitions and discount codes.
package booking

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/gateway"
)

// Service implements rentadmin.BookingService.
type Service struct {
	gw       *gateway.Gateway
	validate *validator.Validate
}

var _ rentadmin.BookingService = (*Service)(nil)

// New creates a booking service routed through the gateway.
func New(gw *gateway.Gateway) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
	}
}

// createBookingRequest carries the fields required to open a booking.
// Pricing and availability are decided server-side.
type createBookingRequest struct {
	VehicleID  string `json:"vehicle_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	BranchID   string `json:"branch_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	DiscountID string `json:"discount_id,omitempty"`
}

type createDiscountRequest struct {
	Code    string  `json:"code" validate:"required,alphanum"`
	Percent float64 `json:"percent" validate:"required,gt=0,lte=100"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ListBookings returns bookings with pagination.
func (s *Service) ListBookings(ctx context.Context, opts rentadmin.ListOptions) ([]rentadmin.Booking, int, error) {
	var resp listResponse[rentadmin.Booking]
	if err := s.gw.Get(ctx, "/bookings?"+opts.Query(), &resp); err != nil {
		return nil, 0, fmt.Errorf("rentadmin/booking: %w", err)
	}
	return resp.Items, resp.Total, nil
}

// GetBooking returns a booking by ID.
func (s *Service) GetBooking(ctx context.Context, id string) (*rentadmin.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("rentadmin/booking: booking id cannot be empty")
	}

	var b rentadmin.Booking
	if err := s.gw.Get(ctx, "/bookings/"+id, &b); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: %w", err)
	}
	return &b, nil
}

// CreateBooking opens a new booking. The server computes the total
// price and verifies vehicle availability for the requested window.
func (s *Service) CreateBooking(ctx context.Context, b rentadmin.Booking) (*rentadmin.Booking, error) {
	if !b.EndDate.After(b.StartDate) {
		return nil, fmt.Errorf("rentadmin/booking: end date must be after start date")
	}

	req := createBookingRequest{
		VehicleID:  b.VehicleID,
		CustomerID: b.CustomerID,
		BranchID:   b.BranchID,
		StartDate:  b.StartDate.Format("2006-01-02"),
		EndDate:    b.EndDate.Format("2006-01-02"),
		DiscountID: b.DiscountID,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: invalid booking: %w", err)
	}

	var created rentadmin.Booking
	if err := s.gw.Post(ctx, "/bookings", req, &created); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: %w", err)
	}
	return &created, nil
}

// UpdateBookingStatus moves a booking to a new status. The server
// rejects transitions its state machine does not allow.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return fmt.Errorf("rentadmin/booking: booking id cannot be empty")
	}
	if status == "" {
		return fmt.Errorf("rentadmin/booking: status cannot be empty")
	}

	body := map[string]string{"status": status}
	if err := s.gw.Put(ctx, "/bookings/"+id+"/status", body, nil); err != nil {
		return fmt.Errorf("rentadmin/booking: %w", err)
	}
	return nil
}

// CancelBooking cancels a booking.
func (s *Service) CancelBooking(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("rentadmin/booking: booking id cannot be empty")
	}

	if err := s.gw.Post(ctx, "/bookings/"+id+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("rentadmin/booking: %w", err)
	}
	return nil
}

// ListDiscounts returns all discount codes, active and expired.
func (s *Service) ListDiscounts(ctx context.Context) ([]rentadmin.Discount, error) {
	var resp listResponse[rentadmin.Discount]
	if err := s.gw.Get(ctx, "/discounts", &resp); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: %w", err)
	}
	return resp.Items, nil
}

// CreateDiscount registers a new discount code.
func (s *Service) CreateDiscount(ctx context.Context, d rentadmin.Discount) (*rentadmin.Discount, error) {
	req := createDiscountRequest{
		Code:    d.Code,
		Percent: d.Percent,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: invalid discount: %w", err)
	}

	var created rentadmin.Discount
	if err := s.gw.Post(ctx, "/discounts", d, &created); err != nil {
		return nil, fmt.Errorf("rentadmin/booking: %w", err)
	}
	return &created, nil
}
