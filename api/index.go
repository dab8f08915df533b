package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"vitalimes-backend/config"
	"vitalimes-backend/models"
	"vitalimes-backend/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := config.NewLogger(cfg)
		if err != nil {
			logger = zap.NewNop()
		}

		router, _, initErr = routes.NewApp(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("serverless init failed", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point. Connections live as long as the instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{Success: false, Message: "Service unavailable"})
		return
	}
	router.ServeHTTP(w, r)
}
