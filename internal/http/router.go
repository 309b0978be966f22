package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/metrics"
	"swapwise/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	profileH *ProfileHandler,
	recH *RecommendationHandler,
	swipeH *SwipeHandler,
	ratingH *RatingHandler,
	meetingH *MeetingHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	// /metrics responde en formato texto de Prometheus, fuera del grupo JSON.
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/", jsonContentTypeMiddleware())
	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/", JWTAuthMiddleware(jwtSvc))
	auth.PUT("/profile", profileH.UpsertOwn)
	auth.GET("/profile", profileH.GetOwn)
	auth.GET("/profiles/:id", profileH.GetByID)
	auth.GET("/recommendations", recH.List)
	auth.POST("/likes", swipeH.Like)
	auth.GET("/matches", swipeH.Matches)
	auth.POST("/ratings", ratingH.Rate)
	auth.POST("/meetings", meetingH.Create)
	auth.PUT("/meetings/:id", meetingH.Update)
	auth.GET("/meetings", meetingH.ListDay)

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
