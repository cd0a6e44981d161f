package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"

	_ "github.com/aussiebroadwan/ledger/api/ledger" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	ref          domain.ReferenceData

	AuthService    *service.AuthService
	ExpenseService *service.ExpenseService

	// Rate limit profiles, defaulting to the httpx ones. Override before
	// ApplyRoutes.
	AuthLimit    httpx.RateLimitConfig
	ExpenseLimit httpx.RateLimitConfig
	HealthLimit  httpx.RateLimitConfig

	// Now returns the current time; expense dates are checked against its
	// calendar day in UTC.
	Now func() time.Time
}

func NewRouter(
	buildVersion string,
	st store.Store,
	ref domain.ReferenceData,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		ref:          ref,
		AuthLimit:    httpx.StrictLimit,
		ExpenseLimit: httpx.ModerateLimit,
		HealthLimit:  httpx.LenientLimit,
		Now:          time.Now,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerExpenses()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Ledger API
//	@version		0.1.0
//	@description	Personal expense tracking. Users sign up, log in for a bearer access token and a refresh token,
//	@description	and record expenses by category and currency.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/ledger
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.AuthService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Signup - strict by IP
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)

	// Login - strict by IP + email so one address cannot be brute forced
	// from many clients sharing an IP budget
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.AuthLimit, "email"),
		),
	)

	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(r.ExpenseLimit),
		),
	)
}

func (r *Router) registerExpenses() {
	h := &ExpenseHandler{ExpenseService: r.ExpenseService, Now: r.Now}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(r.ExpenseLimit),
		)
	}

	r.Mux.Handle("POST /expenses", secured(h.HandleCreate))
	r.Mux.Handle("GET /expenses", secured(h.HandleList))
	r.Mux.Handle("GET /expenses/{ref}", secured(h.HandleGet))
	r.Mux.Handle("PATCH /expenses/{ref}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /expenses/{ref}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.HealthLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ref),
			httpx.RateLimitByIP(r.HealthLimit),
		),
	)
}
