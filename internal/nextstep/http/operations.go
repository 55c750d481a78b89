package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

type OperationHandler struct {
	Service *service.OperationService
}

// Create starts an operation.
//
//	@Summary		Create operation
//	@Description	Starts an operation for a configured operation name. The first configured auth method is chosen.
//	@Tags			Operations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOperationRequest	true	"Operation"
//	@Success		200		{object}	OperationResponse
//	@Failure		400		{object}	ErrorResponse	"OPERATION_NOT_CONFIGURED, OPERATION_ALREADY_EXISTS, INVALID_REQUEST"
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/operations [post].
func (h *OperationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOperationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	op, err := h.Service.CreateOperation(r.Context(), service.CreateOperationRequest{
		OperationName:         req.OperationName,
		OperationID:           req.OperationID,
		OperationData:         req.OperationData,
		ExternalTransactionID: req.ExternalTransactionID,
		UserID:                req.UserID,
		OrganizationID:        req.OrganizationID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationResponse(op))
}

// Get returns an operation with its steps.
//
//	@Summary	Get operation
//	@Tags		Operations
//	@Produce	json
//	@Param		operationId	path		string	true	"Operation ID"
//	@Success	200			{object}	OperationResponse
//	@Failure	400			{object}	ErrorResponse	"OPERATION_NOT_FOUND"
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId} [get].
func (h *OperationHandler) Get(w http.ResponseWriter, r *http.Request) {
	op, err := h.Service.GetOperation(r.Context(), r.PathValue("operationId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationResponse(op))
}

// AssignUser sets the user once a login flow has identified them.
//
//	@Summary	Assign user to operation
//	@Tags		Operations
//	@Accept		json
//	@Produce	json
//	@Param		operationId	path		string				true	"Operation ID"
//	@Param		request		body		AssignUserRequest	true	"User"
//	@Success	200			{object}	OperationResponse
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/user [put].
func (h *OperationHandler) AssignUser(w http.ResponseWriter, r *http.Request) {
	var req AssignUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	op, err := h.Service.AssignUser(r.Context(), r.PathValue("operationId"), req.UserID, req.OrganizationID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationResponse(op))
}

// RecordCertificate marks that the client certificate was verified, which
// removes the password factor from the next step.
//
//	@Summary	Record certificate verification
//	@Tags		Operations
//	@Produce	json
//	@Param		operationId	path		string	true	"Operation ID"
//	@Success	200			{object}	OperationResponse
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/certificate [post].
func (h *OperationHandler) RecordCertificate(w http.ResponseWriter, r *http.Request) {
	op, err := h.Service.RecordCertificateVerification(r.Context(), r.PathValue("operationId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationResponse(op))
}

// InitStep computes which factors the current step requires.
//
//	@Summary		Initialize authentication step
//	@Description	Consults the anti-fraud system when enabled and returns the factors the current step requires.
//	@Tags			Operations
//	@Produce		json
//	@Param			operationId	path		string	true	"Operation ID"
//	@Success		200			{object}	InitStepResponse
//	@Failure		400			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/operations/{operationId}/init [post].
func (h *OperationHandler) InitStep(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.InitStep(r.Context(), r.PathValue("operationId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, InitStepResponse{
		OperationID:      res.OperationID,
		PasswordRequired: res.StepOptions.PasswordRequired,
		OtpRequired:      res.StepOptions.OtpRequired,
		ResendDelay:      int(res.ResendDelay / time.Second),
	})
}

// Cancel cancels an operation.
//
//	@Summary	Cancel operation
//	@Tags		Operations
//	@Accept		json
//	@Produce	json
//	@Param		operationId	path		string					true	"Operation ID"
//	@Param		request		body		CancelOperationRequest	true	"Reason"
//	@Success	200			{object}	OperationResponse
//	@Failure	400			{object}	ErrorResponse	"OPERATION_ALREADY_FINISHED, OPERATION_ALREADY_FAILED, OPERATION_ALREADY_CANCELED"
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/cancel [post].
func (h *OperationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelOperationRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	op, err := h.Service.CancelOperation(r.Context(), r.PathValue("operationId"), req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationResponse(op))
}
