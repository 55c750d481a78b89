package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireAnyScope the caller must have at least one of the provided scopes.
func RequireAnyScope(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, s := range required {
				if slices.Contains(have, s) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// RFC 6750 insufficient_scope
			w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("insufficient_scope"))
		})
	}
}
