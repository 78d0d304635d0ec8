package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// countingHandler records log levels so tests can assert exactly how
// many error entries a code path emits.
type countingHandler struct {
	mu     sync.Mutex
	counts map[slog.Level]int
}

func newCountingHandler() *countingHandler {
	return &countingHandler{counts: make(map[slog.Level]int)}
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[r.Level]++
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func (h *countingHandler) errorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[slog.LevelError]
}

// testService is a scriptable Blink cloud double.
type testService struct {
	mu         sync.Mutex
	loginCalls int
	loginFails bool
	tokenEpoch int // bumped per login; requests with an older token get 401
	rejectAll  bool
}

func (s *testService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.loginCalls++
		if s.loginFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.tokenEpoch++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"authtoken": map[string]string{"authtoken": token(s.tokenEpoch)},
			"region":    map[string]string{"prde": "Europe"},
			"networks": map[string]any{
				"1234": map[string]any{"name": "Home", "onboarded": true},
			},
		})
	})

	mux.HandleFunc("/network/1234", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.rejectAll || r.Header.Get(authHeader) != token(s.tokenEpoch) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"network": map[string]any{"id": 1234, "name": "Home", "armed": true},
		})
	})

	return mux
}

func token(epoch int) string {
	return "tok-" + string(rune('0'+epoch))
}

func newTestClient(t *testing.T, svc *testService) (*BlinkClient, *countingHandler) {
	t.Helper()
	ts := httptest.NewServer(svc.handler())
	t.Cleanup(ts.Close)

	h := newCountingHandler()
	c := New(ClientConfig{
		Email:    "me@example.com",
		Password: "secret",
		LoginURL: ts.URL + "/login",
		Host:     ts.URL,
	}, slog.New(h))
	return c, h
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, &testService{})

	tok, err := c.Login()
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("token = %q, want tok-1", tok)
	}
	if c.Tier() != "prde" {
		t.Errorf("tier = %q, want prde", c.Tier())
	}
	if c.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", c.State())
	}

	nets := c.Networks()
	if len(nets) != 1 || nets[0].ID != 1234 || !nets[0].Onboarded {
		t.Errorf("unexpected networks %+v", nets)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(ts.Close)

	c := New(ClientConfig{LoginURL: ts.URL, Host: ts.URL}, slog.New(newCountingHandler()))
	if _, err := c.Login(); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginServerErrorIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	c := New(ClientConfig{LoginURL: ts.URL, Host: ts.URL}, slog.New(newCountingHandler()))
	if _, err := c.Login(); !errors.Is(err, ErrTransientAuth) {
		t.Fatalf("expected ErrTransientAuth, got %v", err)
	}
}

func TestSingleReauthRetryCuresExpiredToken(t *testing.T) {
	svc := &testService{}
	c, h := newTestClient(t, svc)

	if _, err := c.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Invalidate the session server-side: the next request gets 401,
	// the re-login mints a fresh token and the retry succeeds.
	svc.mu.Lock()
	svc.tokenEpoch++
	svc.mu.Unlock()

	status, err := c.GetNetworkStatus(1234)
	if err != nil {
		t.Fatalf("GetNetworkStatus: %v", err)
	}
	if !status.Armed {
		t.Error("expected armed network status from retried call")
	}
	if svc.loginCalls != 2 {
		t.Errorf("login calls = %d, want 2 (initial + one re-login)", svc.loginCalls)
	}
	if c.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", c.State())
	}
	if h.errorCount() != 0 {
		t.Errorf("cured retry emitted %d error logs, want 0", h.errorCount())
	}
}

func TestReauthFailureIsReportedOnce(t *testing.T) {
	svc := &testService{}
	c, h := newTestClient(t, svc)

	if _, err := c.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc.mu.Lock()
	svc.tokenEpoch++
	svc.loginFails = true
	svc.mu.Unlock()

	if _, err := c.GetNetworkStatus(1234); !errors.Is(err, ErrReauthFailed) {
		t.Fatalf("expected ErrReauthFailed, got %v", err)
	}
	if c.State() != StateFailed {
		t.Errorf("state = %v, want failed", c.State())
	}
	if h.errorCount() != 1 {
		t.Errorf("failed re-auth emitted %d error logs, want exactly 1", h.errorCount())
	}
	if svc.loginCalls != 2 {
		t.Errorf("login calls = %d, want 2 (no unbounded retry loop)", svc.loginCalls)
	}
}

func TestRetriedCallStillRejected(t *testing.T) {
	svc := &testService{}
	c, h := newTestClient(t, svc)

	if _, err := c.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Re-login succeeds but the endpoint keeps rejecting: exactly one
	// retry, then ErrReauthFailed.
	svc.mu.Lock()
	svc.rejectAll = true
	svc.mu.Unlock()

	if _, err := c.GetNetworkStatus(1234); !errors.Is(err, ErrReauthFailed) {
		t.Fatalf("expected ErrReauthFailed, got %v", err)
	}
	if svc.loginCalls != 2 {
		t.Errorf("login calls = %d, want 2 (exactly one re-login)", svc.loginCalls)
	}
	if h.errorCount() != 1 {
		t.Errorf("emitted %d error logs, want exactly 1", h.errorCount())
	}
}

func TestCallBeforeLogin(t *testing.T) {
	c, _ := newTestClient(t, &testService{})
	if _, err := c.GetNetworkStatus(1234); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRestoreSession(t *testing.T) {
	svc := &testService{}
	c, _ := newTestClient(t, svc)

	// Mint epoch 1 server-side, then restore its token directly.
	svc.mu.Lock()
	svc.tokenEpoch = 1
	svc.mu.Unlock()

	c.RestoreSession(token(1), "prde")
	if c.State() != StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", c.State())
	}

	status, err := c.GetNetworkStatus(1234)
	if err != nil {
		t.Fatalf("GetNetworkStatus: %v", err)
	}
	if status.ID != 1234 {
		t.Errorf("unexpected status %+v", status)
	}
	if svc.loginCalls != 0 {
		t.Errorf("restored session performed %d logins, want 0", svc.loginCalls)
	}
}
