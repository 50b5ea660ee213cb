package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"formulator-backend/internal/shared/config"
	"formulator-backend/internal/shared/metrics"
	"formulator-backend/internal/shared/server/middleware"
	"formulator-backend/internal/shared/server/respond"
)

// RecommendationsGroup is the rate-limit group shared by both proxy routes.
const RecommendationsGroup = "RECOMMENDATIONS"

const (
	edgeFunctionPath    = "/functions/v1/skincare-ai"
	recommendationsPath = "/api/v1/recommendations"
)

// RouteRegistrar attaches routes to an API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps holds the handlers and settings the router wires together.
type RouterDeps struct {
	Config    config.Config
	JWTSecret string

	// Recommend serves both proxy routes.
	Recommend gin.HandlerFunc

	Users      RouteRegistrar
	GoogleAuth RouteRegistrar

	// RateLimiter is optional; a fresh limiter is used when nil.
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(deps.JWTSecret),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules(cfg),
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found")
	})

	r.GET("/metrics", metrics.Handler())

	if deps.Recommend != nil {
		r.POST(edgeFunctionPath, deps.Recommend)
		r.POST(recommendationsPath, deps.Recommend)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	if deps.Users != nil {
		deps.Users.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	return r
}

func rateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil
	}
	return map[string]middleware.RateLimitRule{
		RecommendationsGroup: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
	}
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := strings.TrimSuffix(c.Request.URL.Path, "/")
	if path == edgeFunctionPath || path == recommendationsPath {
		return RecommendationsGroup
	}
	return ""
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
