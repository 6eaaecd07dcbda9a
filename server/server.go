package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/config"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/docs"
	extensionUserHandler "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/handler/extension_user"
	insightsHandler "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/handler/insights"
	summaryHandler "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/handler/summary"
	userHandler "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/handler/user"
	visitHandler "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/handler/visits"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/repository"
	extensionUserService "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/extension_user"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/insights"
	redisService "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/redis"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/summary"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/user"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/visit"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/middleware"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	userHandler          *userHandler.UserHandler
	visitHandler         *visitHandler.VisitHandler
	insightsHandler      *insightsHandler.InsightsHandler
	summaryHandler       *summaryHandler.SummaryHandler
	extensionUserHandler *extensionUserHandler.ExtensionUserHandler
	extensionUserService extensionUserService.ExtensionUserService
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	// A nil cache is a disabled cache; the insight services tolerate it.
	var cache redisService.ServiceInterface
	if svc := redisService.NewRedisService(redisService.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}); svc != nil {
		cache = svc
		defer svc.Close()
	}

	userRepo := repository.NewUserRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	extensionUserRepo := repository.NewExtensionUserRepository(db)

	userSrv := user.NewUserService(userRepo)
	visitSrv := visit.NewVisitService(visitRepo, cache)
	insightsSrv := insights.NewInsightsService(visitRepo, cache)
	summarySrv := summary.NewSummaryService(summaryRepo)
	extensionUserSrv := extensionUserService.NewExtensionUserService(extensionUserRepo)

	routerHandler := &RouterHandler{
		userHandler:          userHandler.NewUserHandler(userSrv),
		visitHandler:         visitHandler.NewVisitHandler(visitSrv),
		insightsHandler:      insightsHandler.NewInsightsHandler(insightsSrv),
		summaryHandler:       summaryHandler.NewSummaryHandler(summarySrv),
		extensionUserHandler: extensionUserHandler.NewExtensionUserHandler(extensionUserSrv),
		extensionUserService: extensionUserSrv,
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else if origin == "https://heyho.sh" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "heyho-sync",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Heyho sync API"
	docs.SwaggerInfo.Description = "Browsing activity sync and behavioral insights API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	extensionRoutes := r.Group("/api/v1/extension")
	extensionRoutes.Use(middleware.APIKeyMiddleware(routerHandler.extensionUserService))
	{
		extensionRoutes.GET("/users/auth", routerHandler.extensionUserHandler.ValidateAPIKey)

		extensionRoutes.POST("/visits", routerHandler.visitHandler.CreateVisit)
		extensionRoutes.POST("/visits/batch", routerHandler.visitHandler.BatchCreateVisits)
		extensionRoutes.POST("/closures", routerHandler.visitHandler.CreateClosure)

		extensionRoutes.GET("/insights/hoarders", routerHandler.insightsHandler.GetHoarders)
		extensionRoutes.GET("/insights/serial-openers", routerHandler.insightsHandler.GetSerialOpeners)
		extensionRoutes.GET("/insights/recent-activity", routerHandler.insightsHandler.GetRecentActivity)
	}

	publicAdminRoutes := r.Group("/api/v1/admin")
	{
		publicAdminRoutes.POST("/users/auth", routerHandler.userHandler.CreateOrAuthUserWithPassword)
		publicAdminRoutes.POST("/users/logout", routerHandler.userHandler.Logout)
	}

	privateRoutes := r.Group("/api/v1/admin")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)

		privateRoutes.GET("/insights/hoarders", routerHandler.insightsHandler.GetHoarders)
		privateRoutes.GET("/insights/serial-openers", routerHandler.insightsHandler.GetSerialOpeners)
		privateRoutes.GET("/insights/recent-activity", routerHandler.insightsHandler.GetRecentActivity)

		privateRoutes.GET("/summary/top-domains", routerHandler.summaryHandler.GetTopDomains)
		privateRoutes.GET("/summary/daily", routerHandler.summaryHandler.GetDailySummary)
		privateRoutes.GET("/summary/weekly", routerHandler.summaryHandler.GetWeeklySummary)

		extensionAdmin := privateRoutes.Group("/extension")
		extensionAdmin.POST("/users/generate", routerHandler.extensionUserHandler.CreateExtensionUser)
		extensionAdmin.GET("/users/stats", routerHandler.extensionUserHandler.GetExtensionUserStats)
		extensionAdmin.GET("/users/:id", routerHandler.extensionUserHandler.GetExtensionUserByID)
		extensionAdmin.POST("/users/:id/regenerate", routerHandler.extensionUserHandler.RegenerateAPIKey)
	}

	return r
}
