package nextstepsdk

import (
	"context"
	"net/http"
	"net/url"
)

// The calls below require the nextstep:admin scope.

func (c *Client) CreateUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodPost, "/v1/users", map[string]string{"userId": userID}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUserStatus(ctx context.Context, userID, status string) (*User, error) {
	var u User
	path := "/v1/users/" + url.PathEscape(userID) + "/status"
	if err := c.call(ctx, http.MethodPut, path, map[string]string{"userIdentityStatus": status}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateCredential stores a credential for the user. Omitted username or
// value are generated; a generated value is only ever returned here.
func (c *Client) CreateCredential(ctx context.Context, userID string, req CreateCredentialRequest) (*Credential, error) {
	var cred Credential
	path := "/v1/users/" + url.PathEscape(userID) + "/credentials"
	if err := c.call(ctx, http.MethodPost, path, req, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (c *Client) ListCredentials(ctx context.Context, userID string) ([]Credential, error) {
	var out struct {
		Credentials []Credential `json:"credentials"`
	}
	path := "/v1/users/" + url.PathEscape(userID) + "/credentials"
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

func (c *Client) CreateOperationConfig(ctx context.Context, cfg OperationConfig) (*OperationConfig, error) {
	var out OperationConfig
	if err := c.call(ctx, http.MethodPost, "/v1/operation-configs", cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOperationConfig(ctx context.Context, operationName string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/operation-configs/"+url.PathEscape(operationName), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ResetCounters resets every soft failure counter and returns how many
// credentials were touched.
func (c *Client) ResetCounters(ctx context.Context) (int64, error) {
	var out struct {
		ResetCounterCount int64 `json:"resetCounterCount"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/counters/reset", nil, &out); err != nil {
		return 0, err
	}
	return out.ResetCounterCount, nil
}

// SaveUserContact creates or replaces the user's contact called name.
func (c *Client) SaveUserContact(ctx context.Context, userID, name string, contact UserContact) (*UserContact, error) {
	var out UserContact
	path := "/v1/users/" + url.PathEscape(userID) + "/contacts/" + url.PathEscape(name)
	body := UserContact{Type: contact.Type, Value: contact.Value, Primary: contact.Primary}
	if err := c.call(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnableUserAuthMethod(ctx context.Context, userID, method string, config map[string]string) error {
	path := "/v1/users/" + url.PathEscape(userID) + "/auth-methods/" + url.PathEscape(method)
	resp, err := c.doRequest(ctx, http.MethodPut, path, map[string]any{"config": config})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) DisableUserAuthMethod(ctx context.Context, userID, method string) error {
	path := "/v1/users/" + url.PathEscape(userID) + "/auth-methods/" + url.PathEscape(method)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
