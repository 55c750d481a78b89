package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

// OperationConfigHandler manages the per-operation-name flow definitions.
type OperationConfigHandler struct {
	Service *service.OperationService
}

// Create godoc
//
//	@Summary	Create operation config
//	@Tags		Operation Configs
//	@Accept		json
//	@Produce	json
//	@Param		request	body		OperationConfigRequest	true	"Config"
//	@Success	200		{object}	OperationConfigResponse
//	@Failure	400		{object}	ErrorResponse	"OPERATION_CONFIG_ALREADY_EXISTS"
//	@Security	BearerAuth
//	@Router		/v1/operation-configs [post].
func (h *OperationConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OperationConfigRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	cfg, err := h.Service.CreateOperationConfig(r.Context(), domain.OperationConfig{
		OperationName: req.OperationName,
		TemplateID:    req.TemplateID,
		AuthMethods:   req.AuthMethods,
		AfsEnabled:    req.AfsEnabled,
		AfsConfigID:   req.AfsConfigID,
		Timeout:       time.Duration(req.Timeout) * time.Second,
		MaxAuthFails:  req.MaxAuthFails,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationConfigResponse(cfg))
}

// List godoc
//
//	@Summary	List operation configs
//	@Tags		Operation Configs
//	@Produce	json
//	@Success	200	{object}	OperationConfigListResponse
//	@Security	BearerAuth
//	@Router		/v1/operation-configs [get].
func (h *OperationConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListOperationConfigs(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := OperationConfigListResponse{OperationConfigs: make([]OperationConfigResponse, len(list))}
	for i, c := range list {
		out.OperationConfigs[i] = toOperationConfigResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *OperationConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.GetOperationConfig(r.Context(), r.PathValue("operationName"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOperationConfigResponse(cfg))
}

// Delete godoc
//
//	@Summary		Delete operation config
//	@Description	Fails while operations still reference the config.
//	@Tags			Operation Configs
//	@Param			operationName	path	string	true	"Operation name"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse	"OPERATION_NOT_CONFIGURED, INVALID_REQUEST when in use"
//	@Security		BearerAuth
//	@Router			/v1/operation-configs/{operationName} [delete].
func (h *OperationConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteOperationConfig(r.Context(), r.PathValue("operationName")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
