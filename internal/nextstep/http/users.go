package http

import (
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

type UserHandler struct {
	Service *service.UserService
}

// Create godoc
//
//	@Summary	Register user identity
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"User"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse	"USER_IDENTITY_ALREADY_EXISTS"
//	@Security	BearerAuth
//	@Router		/v1/users [post].
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	u, err := h.Service.CreateUser(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateStatus godoc
//
//	@Summary	Change user identity status
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		userId	path		string					true	"User ID"
//	@Param		request	body		UpdateUserStatusRequest	true	"Status"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse	"USER_IDENTITY_NOT_FOUND"
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/status [put].
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserStatusRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	u, err := h.Service.UpdateUserStatus(r.Context(), r.PathValue("userId"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
