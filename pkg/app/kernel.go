package app

import (
	"net/http"

	"github.com/hasan75/tourism-htt-server/config"
	"github.com/hasan75/tourism-htt-server/pkg/metrics"
	"github.com/hasan75/tourism-htt-server/pkg/middleware"
	"github.com/hasan75/tourism-htt-server/pkg/reqid"
	"github.com/hasan75/tourism-htt-server/pkg/response"
	"github.com/hasan75/tourism-htt-server/pkg/router"
)

// Handler builds the HTTP kernel.
//
// Middleware, outermost first:
//  1. metrics, for total latency
//  2. recovery, before anything can panic
//  3. request id, before anything logs
//  4. request logger
//  5. CORS
//  6. rate limiter
func (a *Application) Handler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if a.limiter != nil {
		r.Use(middleware.RateLimit(a.limiter, config.TrustProxy()))
	}

	r.Get("/metrics", "metrics", metrics.Handler())
	a.registerRoutes(r)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	return r.Handler()
}

func (a *Application) registerRoutes(r *router.Router) {
	for _, fn := range a.routeFns {
		fn(r, a.deps)
	}
}
