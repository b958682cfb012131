package server

import (
	"ai-interview-server/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires middleware and routes onto a gin engine.
func SetupRoutes(h *Handler, verifier TokenVerifier, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	public := r.Group("/api")
	{
		public.POST("/signup", h.Signup)
		public.POST("/signin", h.Signin)
		public.GET("/health", h.Health)
		public.GET("/metrics", h.Metrics)
	}

	protected := r.Group("/api")
	protected.Use(AuthMiddleware(verifier))
	protected.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))
	{
		protected.POST("/interview/next", h.NextQuestion)
		protected.POST("/interview/answer", h.RecordAnswer)
		protected.POST("/interview/reset", h.ResetSession)
		protected.POST("/interview/score", h.ComputeScore)
		protected.GET("/progress", h.CheckProgress)
		protected.GET("/profile/image", h.GetImage)
		protected.PUT("/profile/image", h.SetImage)
		protected.POST("/transcribe", h.Transcribe)
		protected.POST("/resume/critique", h.CritiqueResume)
	}

	return r
}
