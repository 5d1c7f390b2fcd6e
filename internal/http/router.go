package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dream-match/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas del motor.
func NewRouter(
	logger *zap.Logger,
	matchH *MatchHandler,
	trustH *TrustHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	matches := r.Group("/matches")
	if jwtSvc.Enabled() {
		matches.Use(JWTAuthMiddleware(jwtSvc))
	}
	matches.POST("/discover", matchH.DiscoverMatches)
	matches.POST("/project", matchH.MatchProject)
	matches.POST("/batch", matchH.RunBatch)

	r.GET("/trust/:user_id", trustH.GetTrust)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
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
