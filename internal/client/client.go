package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-resty/resty/v2"

	"blink-cli/pkg/models"
)

const (
	// Login always goes to the prod host; the response tells us which
	// regional host to bind for everything after.
	loginURL     = "https://rest-prod.immedia-semi.com/login"
	hostTemplate = "https://rest-%s.immedia-semi.com"
	defaultTier  = "prod"

	// Blink authenticates every call with this header, not a standard
	// Authorization bearer.
	authHeader = "TOKEN-AUTH"
)

// restyResponse keeps the per-resource files free of a resty import.
type restyResponse = resty.Response

// AuthState is the session's position in the login/re-login lifecycle.
// The single-retry contract is expressed as explicit transitions:
// Authenticated -> Reauthenticating on a rejected token, then back to
// Authenticated on success or to Failed, never looping.
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateAuthenticated
	StateReauthenticating
	StateFailed
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateReauthenticating:
		return "reauthenticating"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ClientConfig holds the account credentials and optional pre-supplied
// region tier.
type ClientConfig struct {
	Email           string
	Password        string
	ClientSpecifier string
	Tier            string // e.g. "prde"; discovered at login when empty
	LoginURL        string // override for tests; defaults to the prod host
	Host            string // override for tests; defaults to the tier host
}

// BlinkClient talks to the Blink REST service. It owns the session
// token and its region/host binding; callers never see the token except
// to persist it.
type BlinkClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	log *slog.Logger

	state    AuthState
	token    string
	tier     string
	networks []models.Network
}

// New builds a client. The logger may be nil; slog.Default is used then.
func New(cfg ClientConfig, log *slog.Logger) *BlinkClient {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ClientSpecifier == "" {
		cfg.ClientSpecifier = "blink-cli"
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = loginURL
	}

	r := resty.New()
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	return &BlinkClient{
		HTTP:   r,
		Config: cfg,
		log:    log.With("component", "client"),
		state:  StateUnauthenticated,
	}
}

// State reports the session lifecycle state.
func (c *BlinkClient) State() AuthState { return c.state }

// Token returns the current session token ("" before login).
func (c *BlinkClient) Token() string { return c.token }

// Tier returns the bound region tier code.
func (c *BlinkClient) Tier() string { return c.tier }

// Networks returns the network list captured at login, sorted by ID.
func (c *BlinkClient) Networks() []models.Network { return c.networks }

// Login authenticates with the Blink cloud, binds the regional host,
// and captures the account's network map. Returns the session token so
// it can be persisted.
func (c *BlinkClient) Login() (string, error) {
	payload := models.LoginPayload{
		Email:           c.Config.Email,
		Password:        c.Config.Password,
		ClientSpecifier: c.Config.ClientSpecifier,
	}

	var result models.LoginResponse
	resp, err := c.HTTP.R().
		SetBody(payload).
		SetResult(&result).
		Post(c.Config.LoginURL)

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransientAuth, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return "", fmt.Errorf("%w: login returned %d", ErrTransientAuth, resp.StatusCode())
		}
		return "", fmt.Errorf("%w: login returned %d", ErrInvalidCredentials, resp.StatusCode())
	}

	token := result.Authtoken.Authtoken
	if token == "" {
		return "", fmt.Errorf("%w: login succeeded but no token returned", ErrTransientAuth)
	}

	tier := c.Config.Tier
	if tier == "" {
		for t := range result.Region {
			tier = t
			break
		}
	}
	if tier == "" {
		// Best-effort host guess; a wrong one fails fast on the next call.
		c.log.Warn("login response carried no region, falling back to prod host")
		tier = defaultTier
	}

	c.bindSession(token, tier)
	c.networks = networksFromLogin(result.Networks)
	return token, nil
}

// RestoreSession rebinds a previously persisted token and tier without
// performing a login round trip. The token may of course be stale; the
// first rejected call will trigger the normal single re-login.
func (c *BlinkClient) RestoreSession(token, tier string) {
	if tier == "" {
		tier = defaultTier
	}
	c.bindSession(token, tier)
}

func (c *BlinkClient) bindSession(token, tier string) {
	c.token = token
	c.tier = tier
	host := c.Config.Host
	if host == "" {
		host = fmt.Sprintf(hostTemplate, tier)
	}
	c.HTTP.SetBaseURL(host)
	c.HTTP.SetHeader(authHeader, token)
	c.state = StateAuthenticated
}

// do runs one authenticated request. On an authorization-rejected
// response it performs exactly one re-login and retries the request
// once; a second rejection or a failed re-login surfaces as
// ErrReauthFailed with a single error log entry. Transport errors and
// non-auth HTTP errors pass through untouched.
func (c *BlinkClient) do(op string, fn func() (*resty.Response, error)) (*resty.Response, error) {
	if c.state == StateUnauthenticated {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
	}

	resp, err := fn()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !authRejected(resp) {
		return resp, nil
	}

	c.state = StateReauthenticating
	if _, err := c.Login(); err != nil {
		c.state = StateFailed
		c.log.Error("re-authentication failed", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w: %v", op, ErrReauthFailed, err)
	}

	resp, err = fn()
	if err != nil {
		c.state = StateFailed
		c.log.Error("request failed after re-authentication", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w: %v", op, ErrReauthFailed, err)
	}
	if authRejected(resp) {
		c.state = StateFailed
		c.log.Error("request rejected after re-authentication", "op", op, "status", resp.StatusCode())
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrReauthFailed, resp.StatusCode())
	}
	return resp, nil
}

func authRejected(resp *resty.Response) bool {
	return resp.StatusCode() == http.StatusUnauthorized ||
		resp.StatusCode() == http.StatusForbidden
}

func networksFromLogin(raw map[string]models.LoginNetwork) []models.Network {
	nets := make([]models.Network, 0, len(raw))
	for idStr, n := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		nets = append(nets, models.Network{ID: id, Name: n.Name, Onboarded: n.Onboarded})
	}
	sort.Slice(nets, func(i, j int) bool { return nets[i].ID < nets[j].ID })
	return nets
}
