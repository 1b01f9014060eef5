// Package crm provides the CRMService implementation over the API
// gateway: customer records, incident reports and operator
// notifications.
package crm

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/gateway"
)

// Service implements rentadmin.CRMService.
type Service struct {
	gw       *gateway.Gateway
	validate *validator.Validate
}

var _ rentadmin.CRMService = (*Service)(nil)

// New creates a CRM service routed through the gateway.
func New(gw *gateway.Gateway) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
	}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type reportIncidentRequest struct {
	BookingID   string `json:"booking_id" validate:"required"`
	VehicleID   string `json:"vehicle_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=minor major total_loss"`
}

// ListCustomers returns customers with pagination.
func (s *Service) ListCustomers(ctx context.Context, opts rentadmin.ListOptions) ([]rentadmin.Customer, int, error) {
	var resp listResponse[rentadmin.Customer]
	if err := s.gw.Get(ctx, "/customers?"+opts.Query(), &resp); err != nil {
		return nil, 0, fmt.Errorf("rentadmin/crm: %w", err)
	}
	return resp.Items, resp.Total, nil
}

// GetCustomer returns a customer by ID.
func (s *Service) GetCustomer(ctx context.Context, id string) (*rentadmin.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("rentadmin/crm: customer id cannot be empty")
	}

	var c rentadmin.Customer
	if err := s.gw.Get(ctx, "/customers/"+id, &c); err != nil {
		return nil, fmt.Errorf("rentadmin/crm: %w", err)
	}
	return &c, nil
}

// ListIncidents returns incident reports with pagination.
func (s *Service) ListIncidents(ctx context.Context, opts rentadmin.ListOptions) ([]rentadmin.Incident, int, error) {
	var resp listResponse[rentadmin.Incident]
	if err := s.gw.Get(ctx, "/incidents?"+opts.Query(), &resp); err != nil {
		return nil, 0, fmt.Errorf("rentadmin/crm: %w", err)
	}
	return resp.Items, resp.Total, nil
}

// ReportIncident files a damage or accident report against a booking.
func (s *Service) ReportIncident(ctx context.Context, inc rentadmin.Incident) (*rentadmin.Incident, error) {
	req := reportIncidentRequest{
		BookingID:   inc.BookingID,
		VehicleID:   inc.VehicleID,
		Description: inc.Description,
		Severity:    inc.Severity,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("rentadmin/crm: invalid incident: %w", err)
	}

	var created rentadmin.Incident
	if err := s.gw.Post(ctx, "/incidents", req, &created); err != nil {
		return nil, fmt.Errorf("rentadmin/crm: %w", err)
	}
	return &created, nil
}

// ResolveIncident marks an incident as resolved.
func (s *Service) ResolveIncident(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("rentadmin/crm: incident id cannot be empty")
	}

	if err := s.gw.Post(ctx, "/incidents/"+id+"/resolve", nil, nil); err != nil {
		return fmt.Errorf("rentadmin/crm: %w", err)
	}
	return nil
}

// ListNotifications returns all notifications for the current operator,
// newest first.
func (s *Service) ListNotifications(ctx context.Context) ([]rentadmin.Notification, error) {
	var resp listResponse[rentadmin.Notification]
	if err := s.gw.Get(ctx, "/notifications", &resp); err != nil {
		return nil, fmt.Errorf("rentadmin/crm: %w", err)
	}
	return resp.Items, nil
}

// MarkNotificationRead marks a notification as read. Marking an
// already-read notification is a no-op on the server.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("rentadmin/crm: notification id cannot be empty")
	}

	if err := s.gw.Put(ctx, "/notifications/"+id+"/read", nil, nil); err != nil {
		return fmt.Errorf("rentadmin/crm: %w", err)
	}
	return nil
}
