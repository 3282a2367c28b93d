package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit-risk/internal/metrics"
	"credit-risk/internal/service"
)

// RouterDeps agrupa las piezas opcionales del router. Verifier y Limiter
// nil desactivan autenticacion y rate limiting respectivamente.
type RouterDeps struct {
	Verifier *service.JWTVerifier
	Limiter  service.RateLimiter
	Metrics  *metrics.Metrics
}

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(logger *zap.Logger, riskH *RiskHandler, deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger, deps.Metrics), gin.Recovery())

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("", jsonContentTypeMiddleware())
	api.GET("/healthz", riskH.Health)

	risk := api.Group("/risk")
	if deps.Verifier != nil {
		risk.Use(JWTAuthMiddleware(deps.Verifier))
	}
	risk.GET("/form", riskH.Form)
	risk.POST("/assess", rateLimitMiddleware(deps.Limiter), riskH.Assess)

	return r
}

// zapLoggerMiddleware registra cada request con zap y en las metricas.
func zapLoggerMiddleware(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status())
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// rateLimitMiddleware usa el sujeto del token si existe y si no la IP.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := c.ClientIP()
		if claims, ok := GetAuthClaims(c); ok && claims.Subject != "" {
			key = "sub:" + claims.Subject
		}
		if !limiter.Allow(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
