package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"senior_living_backend/internal/cache"
	"senior_living_backend/internal/config"
	"senior_living_backend/internal/controller"
	"senior_living_backend/internal/middleware"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/repository"
	"senior_living_backend/internal/service"
	"senior_living_backend/pkg/configwatcher"
	"senior_living_backend/pkg/database"
	"senior_living_backend/pkg/logger"
	"senior_living_backend/pkg/monitoring"
	"senior_living_backend/pkg/security"
	"senior_living_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	caches          *caches
	configCallbacks []func(*config.Config)
}

type repositories struct {
	quiz        *repository.QuizRepository
	community   *repository.CommunityRepository
	submission  *repository.SubmissionRepository
	landingPage *repository.LandingPageRepository
}

type caches struct {
	sessions cache.SessionCache
	catalog  cache.CatalogCache
}

type services struct {
	quiz        *service.QuizService
	community   *service.CommunityService
	landingPage *service.LandingPageService
}

type controllers struct {
	quiz        *controller.QuizController
	community   *controller.CommunityController
	landingPage *controller.LandingPageController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		quiz:        repository.NewQuizRepository(db),
		community:   repository.NewCommunityRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		landingPage: repository.NewLandingPageRepository(db),
	}
}

func (a *App) initCaches(rdb *redis.Client, cfg *config.Config) *caches {
	return &caches{
		sessions: cache.NewSessionCache(rdb, cfg.Quiz.SessionTTL),
		catalog:  cache.NewCatalogCache(rdb, cfg.Quiz.CatalogCacheTTL),
	}
}

func (a *App) initServices(repos *repositories, c *caches, cfg *config.Config) *services {
	s := &services{}

	s.community = service.NewCommunityService(repos.community, c.catalog, quiz.NewRecommender(cfg.Quiz.RecommendationLimit))
	s.quiz = service.NewQuizService(repos.quiz, repos.submission, c.sessions, s.community, cfg.Quiz)
	s.landingPage = service.NewLandingPageService(repos.landingPage, s.community)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:        controller.NewQuizController(s.quiz, a.Config.Site),
		community:   controller.NewCommunityController(s.community, a.Config.Site),
		landingPage: controller.NewLandingPageController(s.landingPage, a.Config.Site),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloadCallbacks applies the settings that can change without a
// restart.
func (a *App) registerReloadCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetLevel(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.caches.catalog.SetTTL(cfg.Quiz.CatalogCacheTTL)
	})
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	app.caches = app.initCaches(rdb, cfg)
	services := app.initServices(repos, app.caches, cfg)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)
	app.registerReloadCallbacks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, a.ConfigDir, time.Second, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
