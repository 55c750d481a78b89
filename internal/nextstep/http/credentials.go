package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

type CredentialHandler struct {
	Service *service.CredentialService
}

// List godoc
//
//	@Summary	List user credentials
//	@Tags		Credentials
//	@Produce	json
//	@Param		userId			path		string	true	"User ID"
//	@Param		includeRemoved	query		bool	false	"Include REMOVED credentials"
//	@Success	200				{object}	CredentialListResponse
//	@Failure	400				{object}	ErrorResponse	"USER_IDENTITY_NOT_FOUND"
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/credentials [get].
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	includeRemoved, _ := strconv.ParseBool(r.URL.Query().Get("includeRemoved"))

	list, err := h.Service.List(r.Context(), r.PathValue("userId"), includeRemoved)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := CredentialListResponse{Credentials: make([]CredentialResponse, len(list))}
	for i, d := range list {
		out.Credentials[i] = toCredentialResponse(d)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create godoc
//
//	@Summary		Create credential
//	@Description	Creates or replaces the user's credential for a definition. Omitted username and value are generated; a generated value is returned once.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string					true	"User ID"
//	@Param			request	body		CreateCredentialRequest	true	"Credential"
//	@Success		200		{object}	CredentialResponse
//	@Failure		400		{object}	ErrorResponse	"CREDENTIAL_VALIDATION_FAILED with failure codes in details"
//	@Security		BearerAuth
//	@Router			/v1/users/{userId}/credentials [post].
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCredentialRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	history := make([]service.CredentialHistoryEntry, len(req.History))
	for i, e := range req.History {
		history[i] = service.CredentialHistoryEntry{Username: e.Username, Value: e.Value}
	}

	res, err := h.Service.Create(r.Context(), service.CreateCredentialRequest{
		UserID:         r.PathValue("userId"),
		CredentialName: req.CredentialName,
		Type:           req.Type,
		Username:       req.Username,
		Value:          req.Value,
		ValidationMode: req.ValidationMode,
		History:        history,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialSecretResponse(res))
}

// Update godoc
//
//	@Summary	Update credential
//	@Tags		Credentials
//	@Accept		json
//	@Produce	json
//	@Param		userId			path		string					true	"User ID"
//	@Param		credentialName	path		string					true	"Credential definition name"
//	@Param		request			body		UpdateCredentialRequest	true	"Changes"
//	@Success	200				{object}	CredentialResponse
//	@Failure	400				{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/credentials/{credentialName} [put].
func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCredentialRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, err := h.Service.Update(r.Context(), service.UpdateCredentialRequest{
		UserID:         r.PathValue("userId"),
		CredentialName: r.PathValue("credentialName"),
		Type:           req.Type,
		Username:       req.Username,
		Value:          req.Value,
		Status:         req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialResponse(res))
}

// Reset godoc
//
//	@Summary	Reset credential
//	@Tags		Credentials
//	@Accept		json
//	@Produce	json
//	@Param		userId			path		string					true	"User ID"
//	@Param		credentialName	path		string					true	"Credential definition name"
//	@Param		request			body		ResetCredentialRequest	false	"Type"
//	@Success	200				{object}	CredentialResponse
//	@Failure	400				{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/credentials/{credentialName}/reset [post].
func (h *CredentialHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetCredentialRequest
	if r.ContentLength != 0 && !decodeRequest(w, r, &req) {
		return
	}
	res, err := h.Service.Reset(r.Context(), r.PathValue("userId"), r.PathValue("credentialName"), req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialSecretResponse(res))
}

// Delete marks the credential REMOVED.
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Delete)
}

func (h *CredentialHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Block)
}

func (h *CredentialHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Unblock)
}

func (h *CredentialHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, userID, credentialName string) (service.CredentialDetail, error),
) {
	res, err := fn(r.Context(), r.PathValue("userId"), r.PathValue("credentialName"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialResponse(res))
}

// Validate godoc
//
//	@Summary		Validate credential candidate
//	@Description	Checks a username and value against the definition's policy without storing anything.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateCredentialRequest	true	"Candidate"
//	@Success		200		{object}	ValidateCredentialResponse
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/credentials/validate [post].
func (h *CredentialHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateCredentialRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	failures, err := h.Service.Validate(r.Context(), service.ValidateCredentialRequest{
		UserID:         req.UserID,
		CredentialName: req.CredentialName,
		Username:       req.Username,
		Value:          req.Value,
		ValidationMode: req.ValidationMode,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := ValidateCredentialResponse{ValidationResult: "SUCCEEDED"}
	if len(failures) > 0 {
		out.ValidationResult = "FAILED"
		out.ValidationErrors = failures
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// ChangeRequired godoc
//
//	@Summary	Check whether a credential must be changed
//	@Tags		Credentials
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ChangeRequiredRequest	true	"Credential"
//	@Success	200		{object}	ChangeRequiredResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/credentials/change-required [post].
func (h *CredentialHandler) ChangeRequired(w http.ResponseWriter, r *http.Request) {
	var req ChangeRequiredRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	required, err := h.Service.IsCredentialChangeRequired(r.Context(), req.UserID, req.CredentialName, req.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ChangeRequiredResponse{CredentialChangeRequired: required})
}
