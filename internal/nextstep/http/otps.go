package http

import (
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

type OtpHandler struct {
	Service *service.OtpService
}

// Create issues an OTP and returns its value to the caller, which delivers it.
//
//	@Summary	Create OTP
//	@Tags		OTP
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateOtpRequest	true	"OTP"
//	@Success	200		{object}	CreateOtpResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/otps [post].
func (h *OtpHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOtpRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, err := h.Service.CreateOtp(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CreateOtpResponse{
		OtpID:     res.OtpID,
		OtpValue:  res.OtpValue,
		ExpiresAt: res.ExpiresAt,
	})
}

// Send issues an OTP and delivers it. Delivery failures are reported in the
// body with delivered=false.
//
//	@Summary		Create and send OTP
//	@Description	A resend inside the configured delay is rejected with delivered=false and no OTP is created.
//	@Tags			OTP
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SendOtpRequest	true	"OTP"
//	@Success		200		{object}	SendOtpResponse
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/otps/send [post].
func (h *OtpHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendOtpRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, err := h.Service.CreateAndSendOtp(r.Context(), service.SendOtpRequest{
		CreateOtpRequest: req.CreateOtpRequest.toService(),
		Language:         req.Language,
		Resend:           req.Resend,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SendOtpResponse{
		OtpID:        res.OtpID,
		Delivered:    res.Delivered,
		ErrorMessage: res.ErrorMessage,
	})
}

// Verify checks an OTP value outside of an authentication step.
//
//	@Summary	Verify OTP
//	@Tags		OTP
//	@Accept		json
//	@Produce	json
//	@Param		request	body		VerifyOtpRequest	true	"OTP id or operation id, and value"
//	@Success	200		{object}	VerifyOtpResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/otps/verify [post].
func (h *OtpHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyOtpRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, err := h.Service.VerifyOtp(r.Context(), service.VerifyOtpRequest{
		OtpID:       req.OtpID,
		OperationID: req.OperationID,
		Value:       req.OtpValue,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, VerifyOtpResponse{
		OtpID:             res.OtpID,
		UserID:            res.UserID,
		Result:            res.Result,
		Status:            res.Status,
		RemainingAttempts: res.RemainingAttempts,
		OperationFailed:   res.OperationFailed,
	})
}

// Detail godoc
//
//	@Summary	Get OTP detail
//	@Tags		OTP
//	@Produce	json
//	@Param		otpId		path		string	true	"OTP ID"
//	@Param		operationId	query		string	false	"Operation the OTP must belong to"
//	@Success	200			{object}	OtpResponse
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/otps/{otpId} [get].
func (h *OtpHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.GetOtpDetail(r.Context(), r.PathValue("otpId"), r.URL.Query().Get("operationId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOtpResponse(d))
}

// List godoc
//
//	@Summary	List OTPs of an operation
//	@Tags		OTP
//	@Produce	json
//	@Param		operationId	path		string	true	"Operation ID"
//	@Success	200			{object}	OtpListResponse
//	@Security	BearerAuth
//	@Router		/v1/operations/{operationId}/otps [get].
func (h *OtpHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetOtpList(r.Context(), r.PathValue("operationId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := OtpListResponse{Otps: make([]OtpResponse, len(list))}
	for i, d := range list {
		out.Otps[i] = toOtpResponse(d)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// ResetCounters godoc
//
//	@Summary	Reset OTP counters
//	@Tags		OTP
//	@Produce	json
//	@Param		otpId	path		string	true	"OTP ID"
//	@Success	200		{object}	OtpResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/otps/{otpId}/reset-counters [post].
func (h *OtpHandler) ResetCounters(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.ResetOtpCounters(r.Context(), r.PathValue("otpId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOtpResponse(d))
}

// Expire godoc
//
//	@Summary	Expire OTP
//	@Tags		OTP
//	@Produce	json
//	@Param		otpId	path		string	true	"OTP ID"
//	@Success	200		{object}	OtpResponse
//	@Failure	400		{object}	ErrorResponse	"OTP_NOT_ACTIVE"
//	@Security	BearerAuth
//	@Router		/v1/otps/{otpId}/expire [post].
func (h *OtpHandler) Expire(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.ExpireOtp(r.Context(), r.PathValue("otpId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOtpResponse(d))
}
