package nextstepsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a client for the Next Step API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is sent as a bearer token on every authenticated request.
	Token string
}

// NewClient creates a client for baseURL authenticating with token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token: token,
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}
