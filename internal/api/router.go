package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/config"
	"github.com/minhokang/signal-backend-go/internal/handler"
	"github.com/minhokang/signal-backend-go/internal/middleware"
	"github.com/minhokang/signal-backend-go/internal/recorder"
	"github.com/minhokang/signal-backend-go/internal/service"
	"github.com/minhokang/signal-backend-go/internal/stream"
)

// Deps groups everything the router wires up
type Deps struct {
	Sessions  *service.SessionService
	Transfer  *service.TransferService
	Analytics *service.AnalyticsService
	Recorder  *recorder.Recorder
	Bus       *stream.Bus
}

// SetupRouter builds the HTTP router
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(100, time.Minute))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	transferHandler := handler.NewTransferHandler(deps.Transfer)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics, cfg.GeohashPrecision)
	recorderHandler := handler.NewRecorderHandler(deps.Recorder, deps.Bus)
	signalHandler := handler.NewSignalHandler()
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.AuthPassword)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Signal session backend is running",
		})
	})

	api := r.Group("/api/v1")
	api.POST("/auth/token", authHandler.Token)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		sessions := protected.Group("/sessions")
		{
			sessions.GET("", sessionHandler.ListSessions)
			sessions.POST("", sessionHandler.CreateSession)
			sessions.POST("/import", transferHandler.ImportSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PUT("/:id", sessionHandler.RenameSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.GET("/:id/records", sessionHandler.GetRecords)
			sessions.GET("/:id/summary", analyticsHandler.GetSummary)
			sessions.GET("/:id/coverage", analyticsHandler.GetCoverage)
			sessions.GET("/:id/export", transferHandler.ExportSession)
		}

		rec := protected.Group("/recorder")
		{
			rec.POST("/start", recorderHandler.Start)
			rec.POST("/stop", recorderHandler.Stop)
			rec.GET("/status", recorderHandler.Status)
		}

		ingest := protected.Group("/ingest")
		{
			ingest.POST("/location", recorderHandler.IngestLocation)
			ingest.POST("/signal", recorderHandler.IngestSignal)
		}

		protected.GET("/signal/level", signalHandler.GetLevel)
	}

	return r
}
