package main

import (
	_ "tickr/docs"
	"tickr/internal/config"
	"tickr/internal/logger"
	"tickr/internal/server"

	"github.com/gin-gonic/gin"
)

// @title           Tickr API
// @version         1.0
// @description     Multi-tenant Kanban boards: workspaces, columns, tasks and members.

// @contact.name   Tickr

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @schemes http
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	s, err := server.Init(cfg, log)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
