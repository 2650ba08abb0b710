package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/download-it/api/handlers"
	"github.com/yourusername/download-it/api/middleware"
	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/pkg/logger"
)

// SetupRouter sets up the HTTP router. Downloads started through the API
// report to reporter; logs are served from the adapter's logs directory.
// Browsers are only let in from the server's own origin or allowedOrigins.
func SetupRouter(
	downloadMgr *app.DownloadManager,
	reporter domain.Reporter,
	logAdapter *logger.LoggerAdapter,
	metricsHandler http.Handler,
	allowedOrigins []string,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(logAdapter))
	router.Use(middleware.Recovery(logAdapter))
	router.Use(middleware.Origins(logAdapter, allowedOrigins))

	healthHandler := handlers.NewHealthHandler(downloadMgr.InFlight())
	router.GET("/health", healthHandler.Health)

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", healthHandler.Status)

		downloadHandler := handlers.NewDownloadHandler(downloadMgr, reporter, logAdapter.App())
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.StartDownload)
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/stats", downloadHandler.GetStats)
			downloads.GET("/:id", downloadHandler.GetDownload)
			downloads.DELETE("/:id", downloadHandler.DeleteDownload)
		}

		preferences := v1.Group("/preferences")
		{
			preferences.GET("/last-url", downloadHandler.GetLastURL)
			preferences.DELETE("/last-url", downloadHandler.ForgetLastURL)
		}

		logHandler := handlers.NewLogHandler(logAdapter.LogsDir())
		wsHandler := handlers.NewLogWebSocketHandler(logAdapter.LogsDir(), logAdapter.App(), allowedOrigins)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/stream", wsHandler.HandleWebSocket)
			logs.GET("/:category", logHandler.GetLogs)
			logs.GET("/:category/search", logHandler.SearchLogs)
			logs.GET("/:category/export", logHandler.ExportLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
