// Package kernel builds the storefront's HTTP handler: the global
// middleware stack, the Prometheus endpoint, and the API routes.
package kernel

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/routes"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/pkg/metrics"
	"github.com/shashiranjanraj/allthebeans/pkg/middleware"
	"github.com/shashiranjanraj/allthebeans/pkg/reqid"
	"github.com/shashiranjanraj/allthebeans/pkg/router"
)

// NewHandler constructs the full HTTP handler over the given database.
func NewHandler(db *gorm.DB) http.Handler {
	return NewRouter(db).Handler()
}

// NewRouter constructs the router without flattening it to an http.Handler,
// so callers (route:list) can still inspect the route table.
func NewRouter(db *gorm.DB) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS              — set CORS headers
	//  6. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(rateLimit(), time.Minute))

	// Prometheus /metrics endpoint — no auth, no rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, db)

	return r
}

// rateLimit reads RATE_LIMIT (requests per minute per IP, default 200).
func rateLimit() int {
	n, err := strconv.Atoi(config.Get("RATE_LIMIT", "200"))
	if err != nil || n <= 0 {
		return 200
	}
	return n
}
