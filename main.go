package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aye5788/VOLAI/config"
	"github.com/aye5788/VOLAI/controllers"
	"github.com/aye5788/VOLAI/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	oratsService := services.NewOratsDataService(cfg.OratsToken)
	openaiService := services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	analysisController := controllers.NewAnalysisController(oratsService, openaiService)
	pageController := controllers.NewPageController()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.GET("/", pageController.HandleIndex)

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/analysis/:ticker", analysisController.HandleAnalyzeTicker)
	}

	logger.WithField("port", cfg.Port).Info("Starting VOLAI server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server exited")
	}
}

// requestLogger tags every request with a UUID and logs method, path,
// status and latency.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("Request completed")
	}
}
