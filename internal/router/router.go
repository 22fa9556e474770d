package router

import (
	"net/http"

	"github.com/futureed/backend/internal/handler"
	appMiddleware "github.com/futureed/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Deps are the handlers and policies the router wires together.
type Deps struct {
	Payment  *handler.PaymentHandler
	Auth     *handler.AuthHandler
	Health   *handler.HealthHandler
	Verifier appMiddleware.TokenVerifier

	// CORSOrigins are the browser origins allowed on the /api routes.
	CORSOrigins []string
	// GlobalLimiter applies to every request; AuthLimiter to login/signup. Either may be nil.
	GlobalLimiter *appMiddleware.RateLimiter
	AuthLimiter   *appMiddleware.RateLimiter
}

// New builds the HTTP router.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// Applied inside each group after its CORS handling; preflights are never throttled.
	limit := passthrough
	if d.GlobalLimiter != nil {
		limit = d.GlobalLimiter.Middleware()
	}
	authLimit := passthrough
	if d.AuthLimiter != nil {
		authLimit = d.AuthLimiter.Middleware()
	}

	r.With(limit).Get("/health", d.Health.Check)
	r.With(limit).Post("/webhooks/stripe", d.Payment.Webhook)

	// Serverless-function style endpoints: fixed permissive CORS on every
	// response, OPTIONS answered before routing.
	r.Mount("/create-checkout-session", functionRouter(limit, func(fr chi.Router) {
		fr.Post("/", d.Payment.CreateCheckoutSession)
	}))
	r.Mount("/functions/v1", functionRouter(limit, func(fr chi.Router) {
		fr.Post("/create-checkout-session", d.Payment.CreateCheckoutSession)
		fr.With(authLimit).Post("/auth-login", d.Auth.Login)
		fr.With(authLimit).Post("/auth-signup", d.Auth.Signup)
	}))

	// JSON API used by the site itself.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
			MaxAge:         300,
		}))
		r.Use(limit)

		r.Get("/fees", d.Payment.Fees)

		// Auth routes
		r.Group(func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/login", d.Auth.Login)
			r.Post("/signup", d.Auth.Signup)
			r.Post("/auth/login", d.Auth.Login)
			r.Post("/auth/signup", d.Auth.Signup)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Auth(d.Verifier))
			r.Get("/auth/me", d.Auth.Me)
			r.Post("/auth/logout", d.Auth.Logout)
		})
	})

	return r
}

func functionRouter(limit func(http.Handler) http.Handler, routes func(chi.Router)) http.Handler {
	fr := chi.NewRouter()
	fr.Use(appMiddleware.FunctionCORS)
	fr.Use(limit)
	fr.NotFound(handler.NotFound)
	fr.MethodNotAllowed(handler.MethodNotAllowed)
	routes(fr)
	return fr
}

func passthrough(next http.Handler) http.Handler {
	return next
}
