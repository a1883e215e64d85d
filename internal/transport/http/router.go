// Package httptransport assembles the HTTP surface: the shared middleware
// chain, liveness and metrics endpoints, the public v1 API, and the admin
// API behind its two credential gates.
package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/john-holland/heycern-m87hey/internal/auth"
	"github.com/john-holland/heycern-m87hey/internal/conditions"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/platform/middleware"
	"github.com/john-holland/heycern-m87hey/internal/platform/postgres"
	"github.com/john-holland/heycern-m87hey/internal/platform/redis"
	"github.com/john-holland/heycern-m87hey/internal/printqueue"
	"github.com/john-holland/heycern-m87hey/internal/quality"
	"github.com/john-holland/heycern-m87hey/internal/report"
	vizhandler "github.com/john-holland/heycern-m87hey/internal/visualization/handler"
	id "github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
)

// Deps carries everything the router mounts. DB and Cache may be nil; the
// health endpoint reports them as disabled instead of failing.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Registry       prometheus.Gatherer
	DB             *sql.DB
	Cache          *redis.Client
	RequestTimeout time.Duration
	AdminToken     string
	Validator      middleware.TokenValidator

	Visualizations *vizhandler.Handler
	Conditions     *conditions.Handler
	Tokens         *auth.Handler
	Reports        *report.Handler
	PrintJobs      *printqueue.Handler
	Quality        *quality.Handler
}

// HealthResponse is the health endpoint envelope.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewRouter builds the service router. Token issuance sits behind the static
// admin token so the very first bearer credential can be minted; every other
// admin route requires a bearer token issued through that path.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.LatencyMiddleware(d.Metrics))

	r.Get("/healthz", d.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.APIVersion(id.APIVersionV1))

		d.Visualizations.Register(v1)
		d.Conditions.Register(v1)

		v1.Group(func(g chi.Router) {
			g.Use(middleware.RequireAuth(d.Validator, d.Logger))
			d.Conditions.RegisterAdmin(g)
		})

		v1.Route("/admin", func(admin chi.Router) {
			admin.Group(func(g chi.Router) {
				g.Use(middleware.RequireAdminToken(d.AdminToken, d.Logger))
				d.Tokens.RegisterAdmin(g)
			})
			admin.Group(func(g chi.Router) {
				g.Use(middleware.RequireAuth(d.Validator, d.Logger))
				d.Reports.RegisterAdmin(g)
				d.PrintJobs.RegisterAdmin(g)
				d.Quality.RegisterAdmin(g)
			})
		})
	})

	return r
}

// handleHealth reports liveness plus the state of each backing dependency.
// Disabled dependencies never degrade the check.
func (d Deps) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := "ok"
	checks := make(map[string]string, 2)

	if d.DB == nil {
		checks["postgres"] = "disabled"
	} else if err := postgres.Health(ctx, d.DB); err != nil {
		d.Logger.ErrorContext(ctx, "postgres health check failed", "error", err)
		checks["postgres"] = "unreachable"
		status = "degraded"
	} else {
		checks["postgres"] = "ok"
	}

	if d.Cache == nil {
		checks["redis"] = "disabled"
	} else if err := d.Cache.Health(ctx); err != nil {
		d.Logger.ErrorContext(ctx, "redis health check failed", "error", err)
		checks["redis"] = "unreachable"
		status = "degraded"
	} else {
		checks["redis"] = "ok"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, HealthResponse{Status: status, Checks: checks})
}
