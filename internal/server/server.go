package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tickr/internal/auth"
	"tickr/internal/config"
	"tickr/internal/database"
	"tickr/internal/handler"
	"tickr/internal/middleware"
	"tickr/internal/repository"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *logrus.Logger
}

func Init(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")

	if cfg.RunMigrations {
		if err := database.Migrate(db, log); err != nil {
			return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.NewMetrics(reg).Handler())

	// Services
	store := repository.NewStore(db)
	users := service.NewUserService(store, log)
	workspaces := service.NewWorkspaceService(store, log, cfg.MaxWorkspaces)
	columns := service.NewColumnService(store, log)
	tasks := service.NewTaskService(store, log)
	members := service.NewMemberService(store, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(sqlDB)
	webhookHandler := handler.NewWebhookHandler(users, webhookVerifier(cfg.WebhookSecret, log), log)
	workspaceHandler := handler.NewWorkspaceHandler(workspaces, log)
	columnHandler := handler.NewColumnHandler(columns, log)
	taskHandler := handler.NewTaskHandler(tasks, log)
	subtaskHandler := handler.NewSubtaskHandler(tasks, log)
	memberHandler := handler.NewMemberHandler(members, log)
	invitationHandler := handler.NewInvitationHandler(members, log)
	userHandler := handler.NewUserHandler(users, log)

	// Public routes
	r.GET("/healthz", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/webhooks/clerk", webhookHandler.Clerk)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.EnsureUser(users, log))
	{
		authorized.GET("/me", userHandler.Me)

		// Workspace routes
		authorized.GET("/workspaces", workspaceHandler.List)
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.GET("/workspaces/:id", workspaceHandler.Get)
		authorized.PATCH("/workspaces/:id", workspaceHandler.Update)
		authorized.DELETE("/workspaces/:id", workspaceHandler.Delete)

		// Column routes
		authorized.GET("/workspaces/:id/columns", columnHandler.GetAll)
		authorized.POST("/workspaces/:id/columns", columnHandler.Create)
		authorized.POST("/workspaces/:id/columns/reorder", columnHandler.Reorder)
		authorized.PATCH("/workspaces/:id/columns/:columnId", columnHandler.Update)
		authorized.DELETE("/workspaces/:id/columns/:columnId", columnHandler.Delete)

		// Member routes
		authorized.GET("/workspaces/:id/members", memberHandler.GetAll)
		authorized.POST("/workspaces/:id/members", memberHandler.Invite)
		authorized.PUT("/workspaces/:id/members/:memberId", memberHandler.UpdateRole)
		authorized.PATCH("/workspaces/:id/members/:memberId", memberHandler.UpdateRole)
		authorized.DELETE("/workspaces/:id/members/:memberId", memberHandler.Remove)
		authorized.GET("/workspaces/:id/invites", memberHandler.GetInvites)
		authorized.DELETE("/workspaces/:id/invites/:inviteId", memberHandler.RevokeInvite)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.POST("/tasks/move", taskHandler.MoveTask)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PATCH("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/subtasks", taskHandler.AddSubtask)

		// Subtask routes
		authorized.PATCH("/subtasks/:id", subtaskHandler.Toggle)
		authorized.DELETE("/subtasks/:id", subtaskHandler.Delete)

		// Invitation routes
		authorized.GET("/invitations/pending", invitationHandler.Pending)
		authorized.POST("/invitations/:id/accept", invitationHandler.Accept)
		authorized.POST("/invitations/:id/decline", invitationHandler.Decline)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

// webhookVerifier returns nil when no usable secret is configured; the
// webhook endpoint then answers 500.
func webhookVerifier(secret string, log logrus.FieldLogger) *auth.WebhookVerifier {
	if secret == "" {
		log.Warn("⚠️  CLERK_WEBHOOK_SECRET is not set, webhooks will be rejected")
		return nil
	}
	v, err := auth.NewWebhookVerifier(secret)
	if err != nil {
		log.WithError(err).Warn("⚠️  CLERK_WEBHOOK_SECRET is invalid, webhooks will be rejected")
		return nil
	}
	return v
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	s.Log.Info("✅ Server exited properly")
}
