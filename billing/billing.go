// Package billing provides the BillingService implementation over the
// API gateway: payment history and the refund workflow.
package billing

import (
	"context"
	"fmt"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/gateway"
)

// Service implements rentadmin.BillingService.
type Service struct {
	gw *gateway.Gateway
}

var _ rentadmin.BillingService = (*Service)(nil)

// New creates a billing service routed through the gateway.
func New(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type refundRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

// ListPayments returns payments with pagination.
func (s *Service) ListPayments(ctx context.Context, opts rentadmin.ListOptions) ([]rentadmin.Payment, int, error) {
	var resp listResponse[rentadmin.Payment]
	if err := s.gw.Get(ctx, "/payments?"+opts.Query(), &resp); err != nil {
		return nil, 0, fmt.Errorf("rentadmin/billing: %w", err)
	}
	return resp.Items, resp.Total, nil
}

// GetPayment returns a payment by ID.
func (s *Service) GetPayment(ctx context.Context, id string) (*rentadmin.Payment, error) {
	if id == "" {
		return nil, fmt.Errorf("rentadmin/billing: payment id cannot be empty")
	}

	var p rentadmin.Payment
	if err := s.gw.Get(ctx, "/payments/"+id, &p); err != nil {
		return nil, fmt.Errorf("rentadmin/billing: %w", err)
	}
	return &p, nil
}

// RequestRefund opens a refund request against a captured payment.
// The amount may be partial; the server rejects amounts above the
// captured total.
func (s *Service) RequestRefund(ctx context.Context, paymentID string, amount float64, reason string) (*rentadmin.Refund, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("rentadmin/billing: payment id cannot be empty")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("rentadmin/billing: refund amount must be positive")
	}

	req := refundRequest{PaymentID: paymentID, Amount: amount, Reason: reason}
	var refund rentadmin.Refund
	if err := s.gw.Post(ctx, "/refunds", req, &refund); err != nil {
		return nil, fmt.Errorf("rentadmin/billing: %w", err)
	}
	return &refund, nil
}

// ApproveRefund approves a pending refund. Only manager and admin
// roles may call this; the server enforces the restriction.
func (s *Service) ApproveRefund(ctx context.Context, refundID string) error {
	if refundID == "" {
		return fmt.Errorf("rentadmin/billing: refund id cannot be empty")
	}

	if err := s.gw.Post(ctx, "/refunds/"+refundID+"/approve", nil, nil); err != nil {
		return fmt.Errorf("rentadmin/billing: %w", err)
	}
	return nil
}
