package afs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/stretchr/testify/require"
)

var _ service.AfsClient = (*Client)(nil)

func TestClient(t *testing.T) {
	var (
		got     []actionRequest
		headers []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || r.Method != http.MethodPost {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		got = append(got, req)
		headers = append(headers, r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/afs/afs-login/actions":
			if req.Action == string(service.AfsLoginAuth) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"afsActionApplied":true,"passwordRequired":false,"otpRequired":true}`))
		default:
			http.Error(w, "unknown config", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret")
	ctx := context.Background()

	resp, err := c.ExecuteInitAction(ctx, service.AfsRequest{
		OperationID:   "op-1",
		OperationName: "login_sca",
		AfsConfigID:   "afs-login",
		Action:        service.AfsLoginInit,
	})
	require.NoError(t, err)
	require.True(t, resp.Applied)
	require.Equal(t, domain.StepOptions{OtpRequired: true}, resp.StepOptions)

	err = c.ExecuteAuthAction(ctx, service.AfsRequest{
		OperationID: "op-1",
		AfsConfigID: "afs-login",
		UserID:      "user-1",
		Action:      service.AfsLoginAuth,
		Instruments: []domain.AuthInstrument{domain.InstrumentOtpKey},
		StepResult:  domain.StepConfirmed,
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	require.Equal(t, []string{"Bearer secret", "Bearer secret", "Bearer secret"}, headers)
	require.Equal(t, "LOGIN_INIT", got[0].Action)
	require.Equal(t, "user-1", got[1].UserID)
	require.Equal(t, domain.StepConfirmed, got[1].StepResult)

	_, err = c.ExecuteInitAction(ctx, service.AfsRequest{AfsConfigID: "other", Action: service.AfsLoginInit})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
