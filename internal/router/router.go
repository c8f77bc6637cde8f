package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/handler"
	"github.com/mufradat/mufradat-backend/internal/middleware"
	"github.com/mufradat/mufradat-backend/internal/response"
	"github.com/mufradat/mufradat-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth *handler.AuthHandler
	Word *handler.WordHandler
	Tag  *handler.TagHandler
	Quiz *handler.QuizHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Authenticated API (JWT + Active Session) ───────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		// Vocabulary management
		api.GET("/words", handlers.Word.ListWords)
		api.POST("/words", handlers.Word.CreateWord)
		api.GET("/words/:id", handlers.Word.GetWord)
		api.PUT("/words/:id", handlers.Word.UpdateWord)
		api.DELETE("/words/:id", handlers.Word.DeleteWord)

		// Tags
		api.GET("/tags", handlers.Tag.ListTags)
		api.POST("/tags", handlers.Tag.CreateTag)
		api.PUT("/tags/:id", handlers.Tag.UpdateTag)
		api.DELETE("/tags/:id", handlers.Tag.DeleteTag)

		// Quiz lifecycle
		api.POST("/quiz/start", handlers.Quiz.StartQuiz)
		api.POST("/quiz/submit", handlers.Quiz.SubmitQuiz)
		api.GET("/quiz/results/:id", handlers.Quiz.GetQuizResult)
		api.GET("/quiz/history", handlers.Quiz.GetQuizHistory)
	}

	return router
}
