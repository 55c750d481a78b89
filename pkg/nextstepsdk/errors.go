package nextstepsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes returned by the gateway rather than a service.
const (
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	ErrorCodeUnknown           = "UNKNOWN_ERROR"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Details     []string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("nextstep: HTTP %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("nextstep: HTTP %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns an error reply into an *APIError. Bearer failures
// carry no JSON body, so their code is taken from the WWW-Authenticate header.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Description = errResp.ErrorDescription
		apiErr.Details = errResp.Details
		return apiErr
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Code = ErrorCodeInvalidToken
	case http.StatusForbidden:
		apiErr.Code = ErrorCodeInsufficientScope
	case http.StatusTooManyRequests:
		apiErr.Code = ErrorCodeRateLimited
	default:
		apiErr.Code = ErrorCodeUnknown
	}
	if challenge := resp.Header.Get("WWW-Authenticate"); challenge != "" {
		apiErr.Description = challenge
	} else {
		apiErr.Description = strings.TrimSpace(string(body))
	}
	return apiErr
}
