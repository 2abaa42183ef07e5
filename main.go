package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/aistudio/ide-backend/docs"
	"github.com/aistudio/ide-backend/internal/auth"
	"github.com/aistudio/ide-backend/internal/deployment"
	"github.com/aistudio/ide-backend/internal/project"
	"github.com/aistudio/ide-backend/internal/sandbox"
	"github.com/aistudio/ide-backend/internal/user"
	"github.com/aistudio/ide-backend/internal/utils"
)

// @title           AI Studio IDE Backend API
// @version         1.0
// @description     Auth and studio endpoints for the AI Studio IDE frontend.
//
// @host      localhost:3001
// @BasePath  /api
func main() {
	// load config
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// init database
	db, err := utils.InitDatabase(cfg.Database.DSN())
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}
	if err := db.AutoMigrate(
		&user.User{},
		&auth.RefreshTokenRecord{},
		&project.Project{},
		&sandbox.Sandbox{},
		&deployment.Model{},
		&deployment.Deployment{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// init Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// the SPA sends the refresh cookie cross-origin during development
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	//
	// SWAGGER (protected by Basic Auth, not JWT)
	//
	swaggerGroup := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
		cfg.Admin.Username: cfg.Admin.Password,
	}))
	swaggerGroup.GET("", ginSwagger.WrapHandler(swaggerFiles.Handler))
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//
	// WIRE UP SERVICES
	//
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, logger)

	recordRepo := auth.NewRecordRepository(db)
	accessTTL := time.Duration(cfg.Token.AccessTokenExpiry) * time.Minute
	refreshTTL := time.Duration(cfg.Token.RefreshTokenExpiry) * time.Hour
	authService := auth.NewService(
		userService,
		recordRepo,
		logger,
		cfg.Token.AccessTokenSecret,
		accessTTL,
		cfg.Token.RefreshTokenSecret,
		refreshTTL,
		nil,
	)

	projectRepo := project.NewRepository(db)
	sandboxService := sandbox.NewService(sandbox.NewRepository(db), logger)
	deploymentRepo := deployment.NewRepository(db)
	deploymentService := deployment.NewService(deploymentRepo, logger)

	api := router.Group("/api")
	auth.NewHandler(api, authService, logger, refreshTTL, auth.NewLoginLimiter(5, 15*time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	protected := api.Group("/")
	protected.Use(auth.Authenticate(cfg.Token.AccessTokenSecret, logger))
	protected.GET("/me", func(c *gin.Context) {
		claims, ok := auth.ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := userService.ReadUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	})

	project.NewHandler(protected, projectRepo, logger)
	sandbox.NewHandler(protected, sandboxService, logger)
	deployment.NewHandler(protected, deploymentRepo, deploymentService, logger)

	//
	// START SERVER
	//
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped gracefully")
	}
}
