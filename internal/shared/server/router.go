package server

import (
	"github.com/gin-gonic/gin"

	"career-backend/internal/planner"
	"career-backend/internal/progress"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/users"
)

// RouterDeps carries the handlers and shared components mounted on the router.
type RouterDeps struct {
	Config          config.Config
	Issuer          *auth.Issuer
	Health          *health.Service
	PlanHandler     *planner.Handler
	ProgressHandler *progress.Handler
	UserHandler     *users.Handler
	PlanLimiter     *middleware.RateLimiter
}

// failureStyles keeps panic responses in the shape each route already uses.
var failureStyles = map[string]middleware.FailureStyle{
	"/api/v1/career/plan":    middleware.StyleEnvelope,
	"/api/v1/progress":       middleware.StyleEnvelope,
	"/api/v1/progress/chart": middleware.StyleText,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(failureStyles),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.Health != nil {
		api.GET("/health", deps.Health.Handle)
	}

	api.Use(middleware.Auth(deps.Issuer))
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.PlanHandler != nil {
		limiter := deps.PlanLimiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(nil)
		}
		deps.PlanHandler.RegisterRoutes(api,
			middleware.RateLimit(limiter, "career_plan", middleware.PerMinute(deps.Config.RateLimitPlanPerMinute)))
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
