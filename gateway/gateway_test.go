package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleetly/rentadmin-go/gateway"
)

// staticTokens implements rentadmin.TokenSource with a fixed token.
type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	g := gateway.New(server.URL, gateway.WithTokenSource(staticTokens{token: "tok-123"}))

	if err := g.Get(context.Background(), "/vehicles", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := gateway.New(server.URL, gateway.WithTokenSource(staticTokens{}))

	if err := g.Get(context.Background(), "/health", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hadHeader {
		t.Errorf("request should carry no Authorization header, got %q", gotAuth)
	}
}

func TestDo_SetsRequestID(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	if err := g.Get(context.Background(), "/vehicles", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if gotID == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestDo_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "Corolla", "year": 2022})
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	var out struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}
	if err := g.Get(context.Background(), "/vehicles/1", &out); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if out.Name != "Corolla" || out.Year != 2022 {
		t.Errorf("decoded %+v, want Corolla/2022", out)
	}
}

func TestDo_PostSendsJSONBody(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	in := map[string]string{"email": "admin@demo.com", "password": "password"}
	if err := g.Post(context.Background(), "/user/loginAdmin", in, nil); err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["email"] != "admin@demo.com" {
		t.Errorf("body email = %q, want admin@demo.com", gotBody["email"])
	}
}

func TestDo_APIErrorFromErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	err := g.Get(context.Background(), "/bookings", nil)
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "invalid credentials")
	}
}

func TestDo_APIErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	err := g.Get(context.Background(), "/payments", nil)
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != http.StatusText(http.StatusForbidden) {
		t.Errorf("Message = %q, want %q", apiErr.Message, http.StatusText(http.StatusForbidden))
	}
}

func TestDo_TransportFailure(t *testing.T) {
	// Point at a closed server so the request never reaches anything.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	g := gateway.New(server.URL)

	err := g.Get(context.Background(), "/vehicles", nil)
	if !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got: %v", err)
	}
}

func TestDo_ResponseHookSeesEveryResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var hookStatus int
	g := gateway.New(server.URL, gateway.WithResponseHook(func(resp *http.Response) {
		hookStatus = resp.StatusCode
	}))

	err := g.Get(context.Background(), "/vehicles", nil)
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if hookStatus != http.StatusUnauthorized {
		t.Errorf("hook saw status %d, want 401", hookStatus)
	}
}

func TestDo_ErrorStillReachesCallerWithHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := gateway.New(server.URL, gateway.WithResponseHook(func(*http.Response) {}))

	// The hook must not swallow the failure.
	if err := g.Get(context.Background(), "/vehicles", nil); err == nil {
		t.Fatal("expected error to propagate past the hook")
	}
}

func TestDo_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g := gateway.New(server.URL, gateway.WithTimeout(20*time.Millisecond))

	err := g.Get(context.Background(), "/slow", nil)
	if !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable on timeout, got: %v", err)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := g.Get(ctx, "/slow", nil); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

func TestDelete_NoBody(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	g := gateway.New(server.URL)

	if err := g.Delete(context.Background(), "/vehicles/9"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
}
