package server

import (
	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/server/middleware"
)

const apiPrefix = "/api/v1"

// Rate limiter groups.
const (
	GroupDefault = "DEFAULT"
	GroupLLM     = "LLM"
	GroupSuggest = "SUGGEST"
	GroupGeocode = "GEOCODE"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries what NewRouter needs. Handlers are mounted under /api/v1.
type RouterDeps struct {
	Config   config.Config
	Verifier middleware.TokenVerifier
	Limiter  *middleware.RateLimiter
	Handlers []Registrar
}

// PublicPrefixes are served without identity.
func PublicPrefixes() []string {
	return []string{
		apiPrefix + "/health",
		apiPrefix + "/metrics",
		apiPrefix + "/aqi",
		apiPrefix + "/rotation/crops",
	}
}

// RateLimitRules returns per-group token buckets. LLM-backed routes are the strictest.
func RateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	llmRate := cfg.LLMRateLimitRPS
	if llmRate <= 0 {
		llmRate = 0.5
	}
	return map[string]middleware.RateLimitRule{
		GroupDefault: {Rate: 5, Burst: 20},
		GroupLLM:     {Rate: llmRate, Burst: 5},
		GroupSuggest: {Rate: 2, Burst: 10},
		// public Nominatim allows one request per second per application
		GroupGeocode: {Rate: 1, Burst: 3},
	}
}

// RateLimitRoutes maps routes to limiter groups; unlisted routes use GroupDefault.
func RateLimitRoutes() map[string]string {
	return map[string]string{
		"POST " + apiPrefix + "/recommendations":      GroupLLM,
		"GET " + apiPrefix + "/medicines/search":      GroupLLM,
		"GET " + apiPrefix + "/medicines/suggestions": GroupSuggest,
		"GET " + apiPrefix + "/places/search":         GroupGeocode,
		"GET " + apiPrefix + "/places/reverse":        GroupGeocode,
	}
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
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier, PublicPrefixes()...),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        RateLimitRules(deps.Config),
			DefaultGroup: GroupDefault,
			GroupFor:     middleware.GroupByRoute(RateLimitRoutes()),
			Limiter:      deps.Limiter,
		}),
	)

	api := r.Group(apiPrefix)
	api.GET("/metrics", metrics.Handler())
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
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
