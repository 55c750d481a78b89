package nextstepsdk

import (
	"context"
	"net/http"
)

// CreateOtp issues an OTP and returns its value for the caller to deliver.
func (c *Client) CreateOtp(ctx context.Context, req CreateOtpRequest) (*CreateOtpResponse, error) {
	var out CreateOtpResponse
	if err := c.call(ctx, http.MethodPost, "/v1/otps", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendOtp issues an OTP and has the server deliver it. A delivery failure is
// reported in the reply, not as an error.
func (c *Client) SendOtp(ctx context.Context, req SendOtpRequest) (*SendOtpResponse, error) {
	var out SendOtpResponse
	if err := c.call(ctx, http.MethodPost, "/v1/otps/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
