package main

import (
	"context"
	"log"

	"vitalimes-backend/config"
	_ "vitalimes-backend/docs"
	"vitalimes-backend/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Vitalimes Catalog API
// @version 1.0
// @description Product catalog write path: uploads, media slots, variants.
// @host localhost:8082
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg := config.LoadConfig()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router, cleanup, err := routes.NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start application", zap.Error(err))
	}
	defer cleanup()

	port := ":" + cfg.Port
	logger.Info("Server starting",
		zap.String("port", port),
		zap.String("environment", cfg.AppEnv),
		zap.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"),
	)

	if err := router.Run(port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
