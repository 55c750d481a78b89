package http

import (
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

// AuthMethodHandler serves the auth method registry and per-user method preferences.
type AuthMethodHandler struct {
	Service *service.AuthMethodService
}

// Create godoc
//
//	@Summary	Register auth method
//	@Tags		Auth Methods
//	@Accept		json
//	@Produce	json
//	@Param		request	body		AuthMethodRequest	true	"Auth method"
//	@Success	200		{object}	AuthMethodResponse
//	@Failure	400		{object}	ErrorResponse	"AUTH_METHOD_ALREADY_EXISTS"
//	@Security	BearerAuth
//	@Router		/v1/auth-methods [post].
func (h *AuthMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AuthMethodRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	m, err := h.Service.CreateAuthMethod(r.Context(), domain.AuthMethodDefinition{
		Method:           req.Method,
		OrderNumber:      req.OrderNumber,
		CheckUserPrefs:   req.CheckUserPrefs,
		UserPrefsDefault: req.UserPrefsDefault,
		HasUserInterface: req.HasUserInterface,
		DisplayNameKey:   req.DisplayNameKey,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthMethodResponse(m))
}

// List godoc
//
//	@Summary	List auth methods
//	@Tags		Auth Methods
//	@Produce	json
//	@Success	200	{object}	AuthMethodListResponse
//	@Failure	500	{object}	ErrorResponse	"INVALID_CONFIGURATION when none are registered"
//	@Security	BearerAuth
//	@Router		/v1/auth-methods [get].
func (h *AuthMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListAuthMethods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := AuthMethodListResponse{AuthMethods: make([]AuthMethodResponse, len(list))}
	for i, m := range list {
		out.AuthMethods[i] = toAuthMethodResponse(m)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AuthMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAuthMethod(r.Context(), domain.AuthMethod(r.PathValue("method"))); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForUser godoc
//
//	@Summary	List auth methods with the user's preferences
//	@Tags		Auth Methods
//	@Produce	json
//	@Param		userId	path		string	true	"User ID"
//	@Success	200		{object}	UserAuthMethodListResponse
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/auth-methods [get].
func (h *AuthMethodHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListForUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := UserAuthMethodListResponse{AuthMethods: make([]UserAuthMethodResponse, len(list))}
	for i, m := range list {
		out.AuthMethods[i] = UserAuthMethodResponse{
			AuthMethodResponse: toAuthMethodResponse(m.AuthMethodDefinition),
			Enabled:            m.Enabled,
			Config:             m.Config,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// EnabledForUser godoc
//
//	@Summary	List an operation's auth methods the user may use
//	@Tags		Auth Methods
//	@Produce	json
//	@Param		userId			path		string	true	"User ID"
//	@Param		operationName	query		string	true	"Operation name"
//	@Success	200				{object}	EnabledAuthMethodsResponse
//	@Failure	400				{object}	ErrorResponse	"OPERATION_NOT_CONFIGURED"
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/auth-methods/enabled [get].
func (h *AuthMethodHandler) EnabledForUser(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("operationName")
	if name == "" {
		writeServiceError(w, r, service.ErrInvalidRequest.WithMessage("operationName is required"))
		return
	}
	methods, err := h.Service.EnabledForOperation(r.Context(), r.PathValue("userId"), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, EnabledAuthMethodsResponse{OperationName: name, AuthMethods: methods})
}

// Enable godoc
//
//	@Summary	Enable an auth method for the user
//	@Tags		Auth Methods
//	@Accept		json
//	@Param		userId	path	string						true	"User ID"
//	@Param		method	path	string						true	"Auth method"
//	@Param		request	body	EnableUserAuthMethodRequest	true	"Method config"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse	"USER_IDENTITY_NOT_FOUND, AUTH_METHOD_NOT_FOUND"
//	@Security	BearerAuth
//	@Router		/v1/users/{userId}/auth-methods/{method} [put].
func (h *AuthMethodHandler) Enable(w http.ResponseWriter, r *http.Request) {
	var req EnableUserAuthMethodRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	err := h.Service.EnableForUser(r.Context(), r.PathValue("userId"), domain.AuthMethod(r.PathValue("method")), req.Config)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthMethodHandler) Disable(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DisableForUser(r.Context(), r.PathValue("userId"), domain.AuthMethod(r.PathValue("method")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
