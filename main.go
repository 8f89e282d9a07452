package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cibnlibrary/config"
	"cibnlibrary/database"
	"cibnlibrary/handlers"
	"cibnlibrary/middleware"
	"cibnlibrary/routes"
	"cibnlibrary/services/backend"
	"cibnlibrary/services/content"
	"cibnlibrary/services/session"
	"cibnlibrary/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.SetJWTSecret(config.AppConfig.JWTSecret)
	logger := utils.GetLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Session records.
	var sessionStore session.Store
	switch config.AppConfig.SessionStore {
	case "redis":
		sessionStore = session.NewRedisStore(utils.GetSessionCacheClient())
	default:
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewService(sessionStore, time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute)

	// CMS content.
	var cmsStore content.Store
	switch config.AppConfig.CMSStore {
	case "mongo":
		database.InitDB()
		cmsStore = content.NewMongoStore(database.Database())
	default:
		cmsStore = content.NewMemoryStore(nil)
	}
	if config.RedisEnabled() {
		ttl := time.Duration(config.AppConfig.CMSCacheTTLSeconds) * time.Second
		cmsStore = content.NewCachedStore(cmsStore, utils.GetCacheClient(), ttl, logger)
	}
	if path := config.AppConfig.CMSSeedFile; path != "" {
		written, err := content.SeedFromFile(context.Background(), cmsStore, path)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to seed cms content: %v", err)
		}
		logger.Info("Seeded cms content", zap.String("file", path), zap.Int("pages", written))
	}

	upstream := backend.NewClient(config.AppConfig.APIBaseURL, 30*time.Second)
	debugHandler := handlers.NewDebugHandler(upstream.BaseURL())

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.TrustedProxyList()); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:   sessions,
		AdminToken: config.AppConfig.AdminToken,

		Library: handlers.NewLibraryHandler(sessions),
		Auth:    handlers.NewAuthHandler(upstream, sessions, config.IsProduction()),
		Pages:   handlers.NewPageHandler(content.NewReader(cmsStore, logger), debugHandler, config.AppConfig.DebugAuth),
		Debug:   debugHandler,
		CMS:     handlers.NewCMSHandler(cmsStore),
		Config:  handlers.NewConfigHandler(config.AppConfig.Departments),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, utils.HealthCheckInterval, utils.RedisClients(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to close mongo client", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
