package http

import (
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

type CounterHandler struct {
	Service *service.CounterService
}

// Update godoc
//
//	@Summary		Record an authentication outcome
//	@Description	Applies SUCCEEDED, FAILED or BLOCKED to an ACTIVE credential's counters for callers that authenticate elsewhere.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			userId			path		string					true	"User ID"
//	@Param			credentialName	path		string					true	"Credential definition name"
//	@Param			request			body		UpdateCounterRequest	true	"Outcome"
//	@Success		200				{object}	CredentialResponse
//	@Failure		400				{object}	ErrorResponse	"CREDENTIAL_NOT_FOUND, CREDENTIAL_NOT_ACTIVE"
//	@Security		BearerAuth
//	@Router			/v1/users/{userId}/credentials/{credentialName}/counter [post].
func (h *CounterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCounterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID, name := r.PathValue("userId"), r.PathValue("credentialName")
	cred, err := h.Service.UpdateCredentialCounter(r.Context(), userID, name, req.AuthenticationResult)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CredentialResponse{
		CredentialName:           name,
		UserID:                   userID,
		Type:                     cred.Type,
		Username:                 cred.Username,
		Status:                   cred.Status,
		AttemptCounter:           cred.AttemptCounter,
		FailedAttemptCounterSoft: cred.FailedAttemptCounterSoft,
		FailedAttemptCounterHard: cred.FailedAttemptCounterHard,
		CreatedAt:                cred.CreatedAt,
		ExpiresAt:                cred.ExpiresAt,
		BlockedAt:                cred.BlockedAt,
		LastUpdatedAt:            cred.LastUpdatedAt,
		LastCredentialChangeAt:   cred.LastCredentialChangeAt,
		LastUsernameChangeAt:     cred.LastUsernameChangeAt,
	})
}

// ResetAll godoc
//
//	@Summary	Reset soft failure counters
//	@Tags		Credentials
//	@Produce	json
//	@Success	200	{object}	ResetCountersResponse
//	@Security	BearerAuth
//	@Router		/v1/counters/reset [post].
func (h *CounterHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.ResetAllCounters(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ResetCountersResponse{ResetCounterCount: n})
}
