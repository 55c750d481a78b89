package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
)

type AuthenticationHandler struct {
	Service *service.OperationService
}

type authenticateFunc func(context.Context, service.AuthenticationRequest) (service.AuthenticationResponse, error)

// Credential authenticates the current step with a password.
//
//	@Summary		Authenticate with credential
//	@Description	Verifies the credential for the operation's current step. A failed attempt is a 200 response with authenticationResult FAILED.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			operationId	path		string				true	"Operation ID"
//	@Param			request		body		AuthenticateRequest	true	"Credential"
//	@Success		200			{object}	AuthenticateResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		429			{object}	ErrorResponse	"Rate limit exceeded"
//	@Security		BearerAuth
//	@Router			/v1/operations/{operationId}/authenticate/credential [post].
func (h *AuthenticationHandler) Credential(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.Service.AuthenticateCredential)
}

// Otp authenticates the current step with an OTP.
//
//	@Summary	Authenticate with OTP
//	@Tags		Authentication
//	@Accept		json
//	@Produce	json
//	@Param		operationId	path		string				true	"Operation ID"
//	@Param		request		body		AuthenticateRequest	true	"OTP"
//	@Success	200			{object}	AuthenticateResponse
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/authenticate/otp [post].
func (h *AuthenticationHandler) Otp(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.Service.AuthenticateOtp)
}

// Combined authenticates with an OTP and a password in one call.
//
//	@Summary	Authenticate with OTP and credential
//	@Tags		Authentication
//	@Accept		json
//	@Produce	json
//	@Param		operationId	path		string				true	"Operation ID"
//	@Param		request		body		AuthenticateRequest	true	"OTP and credential"
//	@Success	200			{object}	AuthenticateResponse
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/authenticate/combined [post].
func (h *AuthenticationHandler) Combined(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.Service.AuthenticateCombined)
}

func (h *AuthenticationHandler) handle(w http.ResponseWriter, r *http.Request, fn authenticateFunc) {
	var req AuthenticateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	operationID := r.PathValue("operationId")
	ctx := slogx.WithOperation(r.Context(), operationID)
	r = r.WithContext(ctx)

	res, err := fn(ctx, service.AuthenticationRequest{
		OperationID:     operationID,
		AuthMethod:      req.AuthMethod,
		UserID:          req.UserID,
		CredentialName:  req.CredentialName,
		CredentialValue: req.CredentialValue,
		OtpID:           req.OtpID,
		OtpValue:        req.OtpValue,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthenticateResponse(res))
}
