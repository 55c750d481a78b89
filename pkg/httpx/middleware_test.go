package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/pkg/httpx"
	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnAndScopes(t *testing.T) {
	h, err := jwtx.NewHS256([]byte(strings.Repeat("k", 32)), "")
	require.NoError(t, err)

	var subject string
	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject = httpx.SubjectFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
		httpx.AuthnMiddleware(h),
		httpx.RequireAnyScope(jwtx.ScopeAdmin),
	)

	token := func(scopes ...string) string {
		tok, err := h.Sign(jwtx.NewServiceClaims("console", scopes, time.Minute, "", time.Now()))
		require.NoError(t, err)
		return tok
	}
	do := func(authz string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusUnauthorized, do(""))
	require.Equal(t, http.StatusUnauthorized, do("Bearer garbage"))
	require.Equal(t, http.StatusForbidden, do("Bearer "+token(jwtx.ScopeAuth)))
	require.Equal(t, http.StatusOK, do("Bearer "+token(jwtx.ScopeAdmin)))
	require.Equal(t, "console", subject)
}
