package rentadmin_test

import (
	"testing"
	"time"

	rentadmin "github.com/fleetly/rentadmin-go"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := rentadmin.NewClient(rentadmin.Config{})
	if err == nil {
		t.Fatal("NewClient() expected error when BaseURL is empty")
	}
}

func TestNewClient_AcceptsBaseURL(t *testing.T) {
	c, err := rentadmin.NewClient(rentadmin.Config{BaseURL: "http://localhost:4000"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.Config().BaseURL != "http://localhost:4000" {
		t.Errorf("BaseURL = %q, want %q", c.Config().BaseURL, "http://localhost:4000")
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c, err := rentadmin.NewClient(rentadmin.Config{BaseURL: "http://localhost:4000"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.Config().Timeout != rentadmin.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Config().Timeout, rentadmin.DefaultTimeout)
	}
}

func TestNewClient_CustomTimeout(t *testing.T) {
	c, err := rentadmin.NewClient(rentadmin.Config{BaseURL: "http://localhost:4000", Timeout: 3 * time.Second})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.Config().Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want %v", c.Config().Timeout, 3*time.Second)
	}
}

func TestNewClient_NilServicesBeforeInjection(t *testing.T) {
	c, _ := rentadmin.NewClient(rentadmin.Config{BaseURL: "http://localhost:4000"})

	if c.Auth() != nil {
		t.Error("Auth() should be nil before injection")
	}
	if c.Fleet() != nil {
		t.Error("Fleet() should be nil before injection")
	}
	if c.Bookings() != nil {
		t.Error("Bookings() should be nil before injection")
	}
	if c.Billing() != nil {
		t.Error("Billing() should be nil before injection")
	}
	if c.CRM() != nil {
		t.Error("CRM() should be nil before injection")
	}
}

func TestClose_NoErrorWithoutClosers(t *testing.T) {
	c, _ := rentadmin.NewClient(rentadmin.Config{BaseURL: "http://localhost:4000"})
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
