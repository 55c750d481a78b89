package nextstepsdk

import (
	"context"
	"net/http"
	"net/url"
)

func operationPath(operationID string) string {
	return "/v1/operations/" + url.PathEscape(operationID)
}

// CreateOperation starts an operation (requires nextstep:auth).
func (c *Client) CreateOperation(ctx context.Context, req CreateOperationRequest) (*Operation, error) {
	var op Operation
	if err := c.call(ctx, http.MethodPost, "/v1/operations", req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// GetOperation returns an operation with its step history.
func (c *Client) GetOperation(ctx context.Context, operationID string) (*Operation, error) {
	var op Operation
	if err := c.call(ctx, http.MethodGet, operationPath(operationID), nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// AssignUser binds a user to an operation that has none yet.
func (c *Client) AssignUser(ctx context.Context, operationID, userID, organizationID string) (*Operation, error) {
	body := map[string]string{"userId": userID}
	if organizationID != "" {
		body["organizationId"] = organizationID
	}
	var op Operation
	if err := c.call(ctx, http.MethodPut, operationPath(operationID)+"/user", body, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// InitStep asks which factors the current step requires.
func (c *Client) InitStep(ctx context.Context, operationID string) (*InitStepResponse, error) {
	var out InitStepResponse
	if err := c.call(ctx, http.MethodPost, operationPath(operationID)+"/init", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOperation cancels an unfinished operation.
func (c *Client) CancelOperation(ctx context.Context, operationID, reason string) (*Operation, error) {
	var op Operation
	body := map[string]string{"reason": reason}
	if err := c.call(ctx, http.MethodPost, operationPath(operationID)+"/cancel", body, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// AuthenticateCredential verifies a password for the current step.
func (c *Client) AuthenticateCredential(ctx context.Context, operationID string, req AuthenticateRequest) (*AuthenticateResponse, error) {
	return c.authenticate(ctx, operationID, "credential", req)
}

// AuthenticateOtp verifies an OTP for the current step.
func (c *Client) AuthenticateOtp(ctx context.Context, operationID string, req AuthenticateRequest) (*AuthenticateResponse, error) {
	return c.authenticate(ctx, operationID, "otp", req)
}

// AuthenticateCombined verifies an OTP and a password in one call.
func (c *Client) AuthenticateCombined(ctx context.Context, operationID string, req AuthenticateRequest) (*AuthenticateResponse, error) {
	return c.authenticate(ctx, operationID, "combined", req)
}

func (c *Client) authenticate(ctx context.Context, operationID, kind string, req AuthenticateRequest) (*AuthenticateResponse, error) {
	var out AuthenticateResponse
	if err := c.call(ctx, http.MethodPost, operationPath(operationID)+"/authenticate/"+kind, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserAuthMethods returns the registered auth methods with the user's state.
func (c *Client) ListUserAuthMethods(ctx context.Context, userID string) ([]UserAuthMethod, error) {
	var out struct {
		AuthMethods []UserAuthMethod `json:"authMethods"`
	}
	if err := c.call(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID)+"/auth-methods", nil, &out); err != nil {
		return nil, err
	}
	return out.AuthMethods, nil
}

// EnabledAuthMethods returns the methods of operationName the user may use.
func (c *Client) EnabledAuthMethods(ctx context.Context, userID, operationName string) ([]string, error) {
	var out struct {
		AuthMethods []string `json:"authMethods"`
	}
	path := "/v1/users/" + url.PathEscape(userID) + "/auth-methods/enabled?operationName=" + url.QueryEscape(operationName)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.AuthMethods, nil
}
