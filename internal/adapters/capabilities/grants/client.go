package grants

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pawsense/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("capability grants client not configured")
	ErrUnauthorized  = errors.New("capability grants unauthorized")
	ErrUpstream      = errors.New("capability grants upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string // por defecto X-Api-Key
	Timeout      time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// GrantsResponse: {"grants": {"device:microphone": true}}
type GrantsResponse struct {
	Grants map[string]bool `json:"grants"`
}

// GetGrants trae los permisos de dispositivo concedidos a un usuario.
func (c *Client) GetGrants(ctx context.Context, userID string) (GrantsResponse, error) {
	if !c.IsConfigured() {
		return GrantsResponse{}, ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return GrantsResponse{}, errors.New("userID required")
	}

	var out GrantsResponse
	err := c.http.DoJSON(ctx, "GET", "/v1/grants?user_id="+url.QueryEscape(userID),
		map[string]string{c.apiKeyHeader: c.apiKey}, nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == 401 || he.StatusCode == 403) {
			return GrantsResponse{}, ErrUnauthorized
		}
		return GrantsResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if out.Grants == nil {
		out.Grants = map[string]bool{}
	}
	return out, nil
}
