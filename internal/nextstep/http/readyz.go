package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness check
//	@Description	Reports database connectivity plus any optional dependency checks such as the resend tracker cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"a dependency is unavailable"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	checks map[string]ReadinessCheck,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := &HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			result.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		for name, check := range checks {
			if result.Extra == nil {
				result.Extra = make(map[string]string, len(checks))
			}
			result.Extra[name] = "ok"
			if err := check(r.Context()); err != nil {
				result.Extra[name] = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  result,
		})
	}
}
