package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/httpx"
	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"

	_ "github.com/aussiebroadwan/nextstep/api/nextstep" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// ReadinessCheck reports whether an optional dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	checks       map[string]ReadinessCheck

	store             store.Store
	OperationService  *service.OperationService
	CredentialService *service.CredentialService
	OtpService        *service.OtpService
	CounterService    *service.CounterService
	UserService       *service.UserService
	AuthMethodService *service.AuthMethodService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		checks:       map[string]ReadinessCheck{},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// AddReadinessCheck registers an extra dependency reported by /readyz.
func (r *Router) AddReadinessCheck(name string, check ReadinessCheck) {
	r.checks[name] = check
}

func (r *Router) ApplyRoutes() {
	r.registerOperations()
	r.registerAuthentication()
	r.registerOtps()
	r.registerCredentialChecks()
	r.registerCredentialAdmin()
	r.registerUsers()
	r.registerAuthMethods()
	r.registerOperationConfigs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Next Step Authentication Orchestration API
//	@version		0.1.0
//	@description	Drives multi-step authentication operations: credential and OTP verification, step-down decisions from the anti-fraud system and credential lifecycle administration.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/nextstep
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 service token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication, a scope check and a rate limit.
func (r *Router) secured(h http.Handler, scope string, limit httpx.RateLimitConfig, key httpx.KeyExtractor) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(scope),
		httpx.RateLimitMiddleware(limit, key),
	)
}

func (r *Router) registerOperations() {
	h := &OperationHandler{Service: r.OperationService}
	auth := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAuth, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/operations", auth(h.Create))
	r.Mux.Handle("GET /v1/operations/{operationId}", auth(h.Get))
	r.Mux.Handle("PUT /v1/operations/{operationId}/user", auth(h.AssignUser))
	r.Mux.Handle("POST /v1/operations/{operationId}/certificate", auth(h.RecordCertificate))
	r.Mux.Handle("POST /v1/operations/{operationId}/init", auth(h.InitStep))
	r.Mux.Handle("POST /v1/operations/{operationId}/cancel", auth(h.Cancel))
}

func (r *Router) registerAuthentication() {
	h := &AuthenticationHandler{Service: r.OperationService}

	// Brute force protection: limited per client and operation.
	key := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.PathValueKeyExtractor("operationId"))
	strict := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAuth, httpx.StrictLimit, key)
	}

	r.Mux.Handle("POST /v1/operations/{operationId}/authenticate/credential", strict(h.Credential))
	r.Mux.Handle("POST /v1/operations/{operationId}/authenticate/otp", strict(h.Otp))
	r.Mux.Handle("POST /v1/operations/{operationId}/authenticate/combined", strict(h.Combined))
}

func (r *Router) registerOtps() {
	h := &OtpHandler{Service: r.OtpService}
	auth := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAuth, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAdmin, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/otps", auth(h.Create))
	r.Mux.Handle("POST /v1/otps/send", auth(h.Send))
	r.Mux.Handle("POST /v1/otps/verify", r.secured(http.HandlerFunc(h.Verify), jwtx.ScopeAuth, httpx.StrictLimit, httpx.IPKeyExtractor))
	r.Mux.Handle("GET /v1/otps/{otpId}", auth(h.Detail))
	r.Mux.Handle("GET /v1/operations/{operationId}/otps", auth(h.List))
	r.Mux.Handle("POST /v1/otps/{otpId}/reset-counters", admin(h.ResetCounters))
	r.Mux.Handle("POST /v1/otps/{otpId}/expire", admin(h.Expire))
}

func (r *Router) registerCredentialChecks() {
	h := &CredentialHandler{Service: r.CredentialService}
	auth := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAuth, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/credentials/validate", auth(h.Validate))
	r.Mux.Handle("POST /v1/credentials/change-required", auth(h.ChangeRequired))
}

func (r *Router) registerCredentialAdmin() {
	h := &CredentialHandler{Service: r.CredentialService}
	c := &CounterHandler{Service: r.CounterService}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAdmin, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("GET /v1/users/{userId}/credentials", admin(h.List))
	r.Mux.Handle("POST /v1/users/{userId}/credentials", admin(h.Create))
	r.Mux.Handle("PUT /v1/users/{userId}/credentials/{credentialName}", admin(h.Update))
	r.Mux.Handle("DELETE /v1/users/{userId}/credentials/{credentialName}", admin(h.Delete))
	r.Mux.Handle("POST /v1/users/{userId}/credentials/{credentialName}/block", admin(h.Block))
	r.Mux.Handle("POST /v1/users/{userId}/credentials/{credentialName}/unblock", admin(h.Unblock))
	r.Mux.Handle("POST /v1/users/{userId}/credentials/{credentialName}/reset", admin(h.Reset))
	r.Mux.Handle("POST /v1/users/{userId}/credentials/{credentialName}/counter", admin(c.Update))
	r.Mux.Handle("POST /v1/counters/reset", admin(c.ResetAll))
}

func (r *Router) registerUsers() {
	h := &UserHandler{Service: r.UserService}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAdmin, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/users", admin(h.Create))
	r.Mux.Handle("GET /v1/users/{userId}", admin(h.Get))
	r.Mux.Handle("PUT /v1/users/{userId}/status", admin(h.UpdateStatus))

	c := &ContactHandler{Service: r.UserService}
	r.Mux.Handle("GET /v1/users/{userId}/contacts", admin(c.List))
	r.Mux.Handle("PUT /v1/users/{userId}/contacts/{name}", admin(c.Save))
	r.Mux.Handle("DELETE /v1/users/{userId}/contacts/{name}", admin(c.Delete))
}

func (r *Router) registerAuthMethods() {
	h := &AuthMethodHandler{Service: r.AuthMethodService}
	auth := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAuth, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAdmin, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/auth-methods", admin(h.Create))
	r.Mux.Handle("GET /v1/auth-methods", admin(h.List))
	r.Mux.Handle("DELETE /v1/auth-methods/{method}", admin(h.Delete))
	r.Mux.Handle("GET /v1/users/{userId}/auth-methods", auth(h.ListForUser))
	r.Mux.Handle("GET /v1/users/{userId}/auth-methods/enabled", auth(h.EnabledForUser))
	r.Mux.Handle("PUT /v1/users/{userId}/auth-methods/{method}", admin(h.Enable))
	r.Mux.Handle("DELETE /v1/users/{userId}/auth-methods/{method}", admin(h.Disable))
}

func (r *Router) registerOperationConfigs() {
	h := &OperationConfigHandler{Service: r.OperationService}
	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, jwtx.ScopeAdmin, httpx.ModerateLimit, httpx.IPKeyExtractor)
	}

	r.Mux.Handle("POST /v1/operation-configs", admin(h.Create))
	r.Mux.Handle("GET /v1/operation-configs", admin(h.List))
	r.Mux.Handle("GET /v1/operation-configs/{operationName}", admin(h.Get))
	r.Mux.Handle("DELETE /v1/operation-configs/{operationName}", admin(h.Delete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.checks))
}
