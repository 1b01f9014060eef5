// Package fleet provides the FleetService implementation over the API gateway.
//
// All operations are thin pass-throughs: the server owns every business
// rule, and the gateway supplies the authorization header and error
// propagation.
package fleet

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/gateway"
)

// Service implements rentadmin.FleetService.
type Service struct {
	gw       *gateway.Gateway
	validate *validator.Validate
}

// compile-time check
var _ rentadmin.FleetService = (*Service)(nil)

// New creates a fleet service routed through the gateway.
func New(gw *gateway.Gateway) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
	}
}

// createVehicleRequest carries the fields required to register a vehicle.
type createVehicleRequest struct {
	Plate      string  `json:"plate" validate:"required"`
	Make       string  `json:"make" validate:"required"`
	Model      string  `json:"model" validate:"required"`
	Year       int     `json:"year" validate:"required,gte=1980"`
	CategoryID string  `json:"category_id" validate:"required"`
	BranchID   string  `json:"branch_id" validate:"required"`
	DailyRate  float64 `json:"daily_rate" validate:"required,gt=0"`
}

// listResponse is the paginated envelope the API uses for collections.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ListVehicles returns vehicles with pagination.
func (s *Service) ListVehicles(ctx context.Context, opts rentadmin.ListOptions) ([]rentadmin.Vehicle, int, error) {
	var resp listResponse[rentadmin.Vehicle]
	if err := s.gw.Get(ctx, "/vehicles?"+opts.Query(), &resp); err != nil {
		return nil, 0, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return resp.Items, resp.Total, nil
}

// GetVehicle returns a vehicle by ID.
func (s *Service) GetVehicle(ctx context.Context, id string) (*rentadmin.Vehicle, error) {
	if id == "" {
		return nil, fmt.Errorf("rentadmin/fleet: vehicle id cannot be empty")
	}

	var v rentadmin.Vehicle
	if err := s.gw.Get(ctx, "/vehicles/"+id, &v); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return &v, nil
}

// CreateVehicle registers a new vehicle.
func (s *Service) CreateVehicle(ctx context.Context, v rentadmin.Vehicle) (*rentadmin.Vehicle, error) {
	req := createVehicleRequest{
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Year:       v.Year,
		CategoryID: v.CategoryID,
		BranchID:   v.BranchID,
		DailyRate:  v.DailyRate,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: invalid vehicle: %w", err)
	}

	var created rentadmin.Vehicle
	if err := s.gw.Post(ctx, "/vehicles", req, &created); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return &created, nil
}

// UpdateVehicle replaces a vehicle's mutable fields.
func (s *Service) UpdateVehicle(ctx context.Context, v rentadmin.Vehicle) (*rentadmin.Vehicle, error) {
	if v.ID == "" {
		return nil, fmt.Errorf("rentadmin/fleet: vehicle id cannot be empty")
	}

	var updated rentadmin.Vehicle
	if err := s.gw.Put(ctx, "/vehicles/"+v.ID, v, &updated); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return &updated, nil
}

// DeleteVehicle removes a vehicle.
func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("rentadmin/fleet: vehicle id cannot be empty")
	}

	if err := s.gw.Delete(ctx, "/vehicles/"+id); err != nil {
		return fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return nil
}

// ListBranches returns all branches.
func (s *Service) ListBranches(ctx context.Context) ([]rentadmin.Branch, error) {
	var resp listResponse[rentadmin.Branch]
	if err := s.gw.Get(ctx, "/branches", &resp); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return resp.Items, nil
}

// ListCategories returns all vehicle categories.
func (s *Service) ListCategories(ctx context.Context) ([]rentadmin.Category, error) {
	var resp listResponse[rentadmin.Category]
	if err := s.gw.Get(ctx, "/categories", &resp); err != nil {
		return nil, fmt.Errorf("rentadmin/fleet: %w", err)
	}
	return resp.Items, nil
}
