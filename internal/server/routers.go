package server

import (
	"net/http"

	"secretGateway/internal/auth"
	"secretGateway/internal/handlers"
	"secretGateway/internal/metrics"
	"secretGateway/internal/middleware"

	"github.com/rs/zerolog"
)

// scopedRoute represents a single API route
type scopedRoute struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
	Protected   bool // whether the route requires JWT when auth is enabled
}

// Router holds dependencies. AuthHandler and JWTManager are nil when auth is disabled,
// Metrics is nil when metrics are not exposed.
type Router struct {
	SecretsHandler *handlers.SecretsHandler
	AuthHandler    *handlers.AuthHandler
	JWTManager     auth.JWT
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

func (rt Router) routes() []scopedRoute {
	routes := []scopedRoute{
		{
			Name:        "Hello",
			Method:      http.MethodGet,
			Pattern:     "/{$}",
			HandlerFunc: rt.SecretsHandler.Hello,
		},
		{
			Name:        "Healthz",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: rt.SecretsHandler.Healthz,
		},
		{
			Name:        "GetSecret",
			Method:      http.MethodGet,
			Pattern:     "/secret",
			HandlerFunc: rt.SecretsHandler.GetSecret,
		},
		{
			Name:        "GetMultilineSecret",
			Method:      http.MethodGet,
			Pattern:     "/multilinesecret",
			HandlerFunc: rt.SecretsHandler.GetMultilineSecret,
		},
		{
			Name:        "CreateSecret",
			Method:      http.MethodPost,
			Pattern:     "/secret",
			HandlerFunc: rt.SecretsHandler.CreateSecret,
			Protected:   true,
		},
	}

	if rt.AuthHandler != nil {
		routes = append(routes, scopedRoute{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/login",
			HandlerFunc: rt.AuthHandler.Login,
		})
	}
	if rt.Metrics != nil {
		routes = append(routes, scopedRoute{
			Name:        "Metrics",
			Method:      http.MethodGet,
			Pattern:     "/metrics",
			HandlerFunc: rt.Metrics.Handler().ServeHTTP,
		})
	}

	return routes
}

// NewRouter registers all routes and wraps them in the request middleware chain.
// ServeMux answers 405 for a known path with the wrong method and 404 otherwise.
func NewRouter(rt Router) http.Handler {
	mux := http.NewServeMux()
	for _, route := range rt.routes() {
		var handler http.Handler = route.HandlerFunc

		// Wrap protected routes with JWT middleware
		if route.Protected && rt.JWTManager != nil {
			handler = auth.JWTMiddleware(rt.JWTManager, handler)
		}

		mux.Handle(route.Method+" "+route.Pattern, handler)
	}

	return middleware.RequestID(middleware.Logger(rt.Logger, rt.Metrics)(middleware.Recover(mux)))
}
