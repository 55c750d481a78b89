package http

import (
	"net/http"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

// ContactHandler manages the delivery addresses of a user.
type ContactHandler struct {
	Service *service.UserService
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListContacts(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := UserContactListResponse{Contacts: make([]UserContactResponse, len(list))}
	for i, c := range list {
		out.Contacts[i] = toUserContactResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Save godoc
//
//	@Summary		Create or replace a user contact
//	@Description	A primary contact demotes the other primaries of its type.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string				true	"User ID"
//	@Param			name	path		string				true	"Contact name"
//	@Param			request	body		UserContactRequest	true	"Contact"
//	@Success		200		{object}	UserContactResponse
//	@Failure		400		{object}	ErrorResponse	"USER_IDENTITY_NOT_FOUND"
//	@Security		BearerAuth
//	@Router			/v1/users/{userId}/contacts/{name} [put].
func (h *ContactHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req UserContactRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	c, err := h.Service.SaveContact(r.Context(), domain.UserContact{
		UserID:  r.PathValue("userId"),
		Name:    r.PathValue("name"),
		Type:    req.Type,
		Value:   req.Value,
		Primary: req.Primary,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserContactResponse(c))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteContact(r.Context(), r.PathValue("userId"), r.PathValue("name")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
