package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhub/project-system/docs"
	"github.com/taskhub/project-system/internal/api/handler"
	"github.com/taskhub/project-system/internal/api/middleware"
	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/service"
	"github.com/taskhub/project-system/internal/infrastructure/config"
	mongodb "github.com/taskhub/project-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/project-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)

	policy := authz.NewPolicy()

	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, policy, log)
	projectService := service.NewProjectService(projectRepo, userRepo, policy, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, policy, log)
	roleService := service.NewRoleService(userRepo, policy)
	dashboardService := service.NewDashboardService(userRepo, projectRepo, taskRepo, policy)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	roleHandler := handler.NewRoleHandler(roleService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	auth := middleware.Auth(cfg.JWTSecret, denylist)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Admin management surface ---
	// Route-level Authorize consults the policy before the handler binds
	// or validates anything; services re-check on entry.
	admin := e.Group("/v1/admin", auth)

	users := admin.Group("/users")
	users.GET("", userHandler.List, middleware.Authorize(policy, authz.ResourceUser, authz.ActionList))
	users.POST("", userHandler.Create, middleware.Authorize(policy, authz.ResourceUser, authz.ActionCreate))
	users.GET("/:id", userHandler.Get, middleware.Authorize(policy, authz.ResourceUser, authz.ActionUpdate))
	users.PUT("/:id", userHandler.Update, middleware.Authorize(policy, authz.ResourceUser, authz.ActionUpdate))
	users.DELETE("/:id", userHandler.Delete, middleware.Authorize(policy, authz.ResourceUser, authz.ActionDelete))

	projects := admin.Group("/projects")
	projects.GET("", projectHandler.List, middleware.Authorize(policy, authz.ResourceProject, authz.ActionList))
	projects.POST("", projectHandler.Create, middleware.Authorize(policy, authz.ResourceProject, authz.ActionCreate))
	projects.GET("/:id", projectHandler.Get, middleware.Authorize(policy, authz.ResourceProject, authz.ActionUpdate))
	projects.PUT("/:id", projectHandler.Update, middleware.Authorize(policy, authz.ResourceProject, authz.ActionUpdate))
	projects.DELETE("/:id", projectHandler.Delete, middleware.Authorize(policy, authz.ResourceProject, authz.ActionDelete))

	tasks := admin.Group("/tasks")
	tasks.GET("", taskHandler.List, middleware.Authorize(policy, authz.ResourceTask, authz.ActionList))
	tasks.GET("/options", taskHandler.FormOptions, middleware.Authorize(policy, authz.ResourceTask, authz.ActionCreate))
	tasks.POST("", taskHandler.Create, middleware.Authorize(policy, authz.ResourceTask, authz.ActionCreate))
	tasks.GET("/:id", taskHandler.Get, middleware.Authorize(policy, authz.ResourceTask, authz.ActionUpdate))
	tasks.PUT("/:id", taskHandler.Update, middleware.Authorize(policy, authz.ResourceTask, authz.ActionUpdate))
	tasks.DELETE("/:id", taskHandler.Delete, middleware.Authorize(policy, authz.ResourceTask, authz.ActionDelete))

	admin.GET("/roles", roleHandler.List, middleware.Authorize(policy, authz.ResourceRoleDefinition, authz.ActionList))
	admin.GET("/dashboard", dashboardHandler.Stats, middleware.Authorize(policy, authz.ResourceUser, authz.ActionList))

	// --- Role-scoped surfaces ---
	// Team leaders manage their own projects and the tasks inside them.
	team := e.Group("/v1/team", auth, middleware.RequireRole(domain.RoleTeamLeader))
	team.GET("/projects", projectHandler.List)
	team.GET("/projects/:id", projectHandler.Get)
	team.GET("/tasks", taskHandler.List)
	team.GET("/tasks/options", taskHandler.FormOptions)
	team.POST("/tasks", taskHandler.Create)
	team.GET("/tasks/:id", taskHandler.Get)

	// Users see and advance only the tasks assigned to them.
	my := e.Group("/v1/my", auth, middleware.RequireRole(domain.RoleUser))
	my.GET("/tasks", taskHandler.List)
	my.GET("/tasks/:id", taskHandler.Get)
	my.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)

	// Clients get a read-only view of projects.
	client := e.Group("/v1/client", auth, middleware.RequireRole(domain.RoleClient))
	client.GET("/projects", projectHandler.List)
	client.GET("/projects/:id", projectHandler.Get)

	return e
}
