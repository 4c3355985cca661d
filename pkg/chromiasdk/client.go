package chromiasdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Chromia server. It covers the public endpoints and
// creates authenticated Sessions via Login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account. It does not log in; call Login with
// the same credentials for a session.
func (c *Client) Register(ctx context.Context, username, password string) (UserInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/register", CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return UserInfo{}, err
	}

	var user UserInfo
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return UserInfo{}, err
	}
	return user, nil
}

// Login authenticates and returns a Session holding the bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/login", CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, auth.Token, auth.User), nil
}

// SessionFromToken rebuilds a Session from a previously issued token,
// for example one loaded from a CredentialStore. The token is not
// validated here; the first authenticated call will surface an expired
// or revoked credential.
func (c *Client) SessionFromToken(token string, user UserInfo) *Session {
	return newSession(c, token, user)
}

// CommunityColors fetches one page of the public feed. Zero page or
// limit values fall back to the server defaults; search is optional.
func (c *Client) CommunityColors(ctx context.Context, page, limit int, search string) (CommunityColorsResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}

	path := "/api/colors/community"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return CommunityColorsResponse{}, err
	}

	var feed CommunityColorsResponse
	if err := decodeJSON(resp, &feed, http.StatusOK); err != nil {
		return CommunityColorsResponse{}, err
	}
	return feed, nil
}

// ColorCount returns the total number of published colors.
func (c *Client) ColorCount(ctx context.Context) (int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/colors/count", nil)
	if err != nil {
		return 0, err
	}

	var count CountResponse
	if err := decodeJSON(resp, &count, http.StatusOK); err != nil {
		return 0, err
	}
	return count.Count, nil
}

// ServerInfo fetches the root banner.
func (c *Client) ServerInfo(ctx context.Context) (ServerInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return ServerInfo{}, err
	}

	var info ServerInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return ServerInfo{}, err
	}
	return info, nil
}

// Liveness checks the livez probe.
func (c *Client) Liveness(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}

// Readiness checks the readyz probe. A degraded server yields a typed
// error alongside whatever status it managed to report.
func (c *Client) Readiness(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return health, fmt.Errorf("service not ready: %w", err)
	}
	return health, nil
}
