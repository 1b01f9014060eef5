// Package rentadmin provides a Go client SDK for a vehicle-rental
// administrative REST API.
//
// The SDK defines interfaces for session management, authentication and
// the domain services of the dashboard (fleet, bookings, billing, CRM).
// Concrete implementations are injected via Option functions, so the
// root package stays independent of any transport detail.
//
// Example usage with the HTTP gateway and an in-memory session store:
//
//	gw := gateway.New(cfg.BaseURL)
//	sess := auth.NewSession(gw, store.NewMemory())
//	client, err := rentadmin.NewClient(
//	    rentadmin.Config{BaseURL: cfg.BaseURL},
//	    rentadmin.WithAuthenticator(sess),
//	    rentadmin.WithFleetService(fleet.New(gw)),
//	)
package rentadmin

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Client is the main entry point for dashboard API operations.
// Service implementations are injected via Option functions.
type Client struct {
	config   Config
	logger   *slog.Logger
	auth     Authenticator
	fleet    FleetService
	bookings BookingService
	billing  BillingService
	crm      CRMService
}

// Config holds connection and behavior configuration.
type Config struct {
	// BaseURL is the address of the rental admin API
	// (e.g. "https://api.rental.example.com").
	BaseURL string

	// Timeout bounds every outbound request. Default: 15 seconds.
	// A hung login or reset call must never leave the session stuck
	// in its loading state.
	Timeout time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithAuthenticator sets the session/authentication implementation.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) { c.auth = a }
}

// WithFleetService sets the fleet management implementation.
func WithFleetService(f FleetService) Option {
	return func(c *Client) { c.fleet = f }
}

// WithBookingService sets the booking management implementation.
func WithBookingService(b BookingService) Option {
	return func(c *Client) { c.bookings = b }
}

// WithBillingService sets the payments/refunds implementation.
func WithBillingService(b BillingService) Option {
	return func(c *Client) { c.billing = b }
}

// WithCRMService sets the customers/incidents/notifications implementation.
func WithCRMService(s CRMService) Option {
	return func(c *Client) { c.crm = s }
}

// DefaultTimeout bounds outbound requests when Config.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// NewClient creates a new dashboard client with the given configuration and options.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rentadmin: BaseURL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{config: cfg}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.config }

// Auth returns the authenticator, or nil if not configured.
func (c *Client) Auth() Authenticator { return c.auth }

// Fleet returns the fleet service, or nil if not configured.
func (c *Client) Fleet() FleetService { return c.fleet }

// Bookings returns the booking service, or nil if not configured.
func (c *Client) Bookings() BookingService { return c.bookings }

// Billing returns the billing service, or nil if not configured.
func (c *Client) Billing() BillingService { return c.billing }

// CRM returns the CRM service, or nil if not configured.
func (c *Client) CRM() CRMService { return c.crm }

// Close releases all resources held by the client.
// Any injected service that implements io.Closer will be closed.
func (c *Client) Close() error {
	closers := []interface{}{
		c.auth, c.fleet, c.bookings, c.billing, c.crm,
	}
	var firstErr error
	for _, svc := range closers {
		if cl, ok := svc.(io.Closer); ok && cl != nil {
			if err := cl.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
