// Package afs is the HTTP client for the anti-fraud system that decides on
// authentication step-down.
package afs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
)

// Client calls the anti-fraud system over HTTP.
type Client struct {
	BaseURL    string
	Token      string // optional bearer token
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// StatusError is returned for a non-success response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("afs: unexpected status %d: %s", e.StatusCode, e.Body)
}

type actionRequest struct {
	OperationID   string                  `json:"operationId"`
	OperationName string                  `json:"operationName"`
	UserID        string                  `json:"userId,omitempty"`
	Action        string                  `json:"action"`
	StepIndex     int                     `json:"stepIndex"`
	Instruments   []domain.AuthInstrument `json:"authInstruments,omitempty"`
	StepResult    domain.AuthStepResult   `json:"authStepResult,omitempty"`
}

type initResponse struct {
	Applied          bool `json:"afsActionApplied"`
	PasswordRequired bool `json:"passwordRequired"`
	OtpRequired      bool `json:"otpRequired"`
}

func (c *Client) ExecuteInitAction(ctx context.Context, req service.AfsRequest) (service.AfsResponse, error) {
	resp, err := c.post(ctx, req)
	if err != nil {
		return service.AfsResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return service.AfsResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return service.AfsResponse{}, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out initResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return service.AfsResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return service.AfsResponse{
		Applied: out.Applied,
		StepOptions: domain.StepOptions{
			PasswordRequired: out.PasswordRequired,
			OtpRequired:      out.OtpRequired,
		},
	}, nil
}

func (c *Client) ExecuteAuthAction(ctx context.Context, req service.AfsRequest) error {
	resp, err := c.post(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, req service.AfsRequest) (*http.Response, error) {
	payload, err := json.Marshal(actionRequest{
		OperationID:   req.OperationID,
		OperationName: req.OperationName,
		UserID:        req.UserID,
		Action:        string(req.Action),
		StepIndex:     req.StepIndex,
		Instruments:   req.Instruments,
		StepResult:    req.StepResult,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	path := "/afs/" + req.AfsConfigID + "/actions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
