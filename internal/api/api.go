// internal/api/api.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"demo-pool/internal/config"
	"demo-pool/internal/metrics"
	"demo-pool/internal/pool"
)

// sessionCookie carries the lease session token between visits.
const sessionCookie = "demo_session"

type API struct {
	Pool    *pool.Service
	Cfg     *config.Config
	Log     *zap.Logger
	limiter *rate.Limiter
}

func NewAPI(poolSvc *pool.Service, cfg *config.Config, log *zap.Logger) *API {
	return &API{
		Pool:    poolSvc,
		Cfg:     cfg,
		Log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.Demo.LoginRate), cfg.Demo.LoginBurst),
	}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/login", a.rateLimited(a.Login))
	r.Get("/pool/status", a.PoolStatus)
	r.Get("/healthz", a.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// rateLimited rejects login bursts beyond the configured rate. Anonymous
// visitors hammering the endpoint would otherwise drain the pool.
func (a *API) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
