// Package http wires Chromia's services onto the HTTP surface. Every
// handler talks JSON and reports failures in the shared error shape
// from pkg/chromiasdk.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/store"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
	"github.com/Brickle-Pickle/Chromia/pkg/jwtx"
	"github.com/Brickle-Pickle/Chromia/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	UserService    *service.UserService
	ColorService   *service.ColorService
	PaletteService *service.PaletteService
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
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerColors()
	r.registerPalettes()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Register and login are the brute-force targets; both get the
	// strict profile keyed by IP.
	r.Mux.Handle("POST /api/users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/users/current",
		httpx.Chain(http.HandlerFunc(h.HandleCurrent),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerColors() {
	h := &ColorsHandler{ColorService: r.ColorService}

	// Public feed. Optional auth only attaches the identity for logs;
	// the limit is keyed by IP either way.
	r.Mux.Handle("GET /api/colors/community",
		httpx.Chain(http.HandlerFunc(h.HandleCommunity),
			OptionalUser(r.verifier, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /api/colors/count",
		httpx.Chain(http.HandlerFunc(h.HandleCount),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /api/colors/create",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/colors",
		httpx.Chain(http.HandlerFunc(h.HandleListOwn),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPalettes() {
	h := &PalettesHandler{PaletteService: r.PaletteService}

	r.Mux.Handle("POST /api/palettes/create",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/palettes",
		httpx.Chain(http.HandlerFunc(h.HandleListOwn),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /api/palettes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PUT /api/palettes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /api/palettes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			RequireUser(r.verifier, r.store),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /", RootHandler(r.buildVersion))
}
