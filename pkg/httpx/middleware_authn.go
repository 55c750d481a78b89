package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token issued to a calling service.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = context.WithValue(ctx, CtxKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyScopes, claims.Scopes)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			ctx = slogx.WithContext(ctx, slogx.FromContext(ctx).With("caller", claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
