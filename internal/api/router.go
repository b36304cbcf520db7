package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/taskpulse/daily-tracker/internal/api/handler"
	"github.com/taskpulse/daily-tracker/internal/api/middleware"
	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/ws"
)

// Dependencies carries everything the router needs, constructed in main.
type Dependencies struct {
	DB            *gorm.DB
	Redis         *redis.Client
	JWTSecret     string
	Auth          ports.AuthService
	Tasks         ports.TaskService
	Stats         ports.StatsService
	Users         ports.UserService
	Notifications ports.NotificationService
	Hub           *ws.Hub
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	userHandler := handler.NewUserHandler(deps.Users)
	notifHandler := handler.NewNotificationHandler(deps.Notifications)
	exportHandler := handler.NewExportHandler(deps.Tasks)
	wsHandler := handler.NewWSHandler(deps.Hub, deps.JWTSecret)

	authMW := middleware.Auth(deps.JWTSecret)
	leadOrManager := middleware.RBAC(domain.RoleManager, domain.RoleClusterLead)
	managerOnly := middleware.RBAC(domain.RoleManager)

	// --- Public auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/send-otp", authHandler.SendOTP)
	e.POST("/api/request-password-reset", authHandler.SendOTP)
	e.POST("/api/reset-password", authHandler.ResetPassword)
	e.POST("/api/change-password", authHandler.ResetPassword)

	// --- Websocket feed (token in query string) ---
	e.GET("/api/ws", wsHandler.Serve)

	// --- Authenticated routes ---
	api := e.Group("/api", authMW)

	api.POST("/tasks", taskHandler.Create)
	api.GET("/tasks", taskHandler.List)
	api.GET("/tasks/:id", taskHandler.Get)
	api.PUT("/entries/:id", taskHandler.UpdateEntry)
	// Legacy mount: same entry update, task-shaped path.
	api.PUT("/tasks/:id", taskHandler.UpdateEntry)
	api.GET("/export-tasks", exportHandler.Export, leadOrManager)

	api.GET("/stats/weekly", statsHandler.Weekly)
	api.GET("/stats/monthly", statsHandler.Monthly)
	api.GET("/stats/clusters", statsHandler.Clusters, leadOrManager)
	api.GET("/stats/tasks", statsHandler.TasksByCluster, leadOrManager)

	api.GET("/users", userHandler.List, leadOrManager)
	api.POST("/add-user", userHandler.Add, managerOnly)
	api.PUT("/users/:id/role", userHandler.UpdateRole, managerOnly)
	api.PUT("/users/:id/clusterLead", userHandler.UpdateClusterLead, leadOrManager)
	api.PUT("/users/toggle/:email", userHandler.ToggleActive, managerOnly)

	api.GET("/notifications", notifHandler.List)
	api.PUT("/notifications/read", notifHandler.MarkAllRead)
	api.PUT("/notifications/:id/read", notifHandler.MarkRead)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
