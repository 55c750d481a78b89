package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation details.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads and validates a JSON body. It writes the error reply
// and returns false when the body is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrInvalidRequest.Code, err.Error(), nil)
		return false
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, service.ErrInvalidRequest.Code, err.Error(), nil)
			return false
		}
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fe.Field()+": "+fe.Tag())
		}
		writeError(w, http.StatusBadRequest, service.ErrInvalidRequest.Code, "request validation failed", details)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code, desc string, details []string) {
	httpx.WriteJSON(w, status, ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
		Details:          details,
	})
}

// writeServiceError renders an error returned by a service. Caller mistakes
// map to 400, configuration and encryption problems to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var se *service.Error
	if !errors.As(err, &se) {
		log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
		return
	}

	switch se.Kind {
	case service.KindConfiguration, service.KindEncryption:
		log.Error("request failed", "code", se.Code, "error", err)
		writeError(w, http.StatusInternalServerError, se.Code, se.Message, nil)
	default:
		log.Info("request rejected", "code", se.Code, "message", se.Message)
		writeError(w, http.StatusBadRequest, se.Code, se.Message, se.Details)
	}
}
