package app

import (
	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/controller"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/service"
	"authoring_console_backend/pkg/database"
	"authoring_console_backend/pkg/logger"
	"authoring_console_backend/pkg/monitoring"
	"authoring_console_backend/pkg/security"
	"authoring_console_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	bank       *repository.QuestionBankRepository
	question   *repository.QuestionRepository
	assessment *repository.AssessmentRepository
	rubric     *repository.RubricRepository
}

type services struct {
	storage      *service.StorageService
	bank         *service.QuestionBankService
	question     *service.QuestionService
	assessment   *service.AssessmentService
	rubric       *service.RubricService
	importExport *service.ImportExportService
	aiDraft      *service.AIDraftService
}

type controllers struct {
	bank         *controller.QuestionBankController
	question     *controller.QuestionController
	assessment   *controller.AssessmentController
	rubric       *controller.RubricController
	importExport *controller.ImportExportController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded config. Services holding pointers into the
// config struct pick the new tunables up in place.
func (a *App) ApplyConfig(cfg *config.Config) {
	*a.Config = *cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		bank:       repository.NewQuestionBankRepository(db),
		question:   repository.NewQuestionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		rubric:     repository.NewRubricRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.bank = service.NewQuestionBankService(repos.bank)
	s.question = service.NewQuestionService(repos.question, repos.assessment)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.question, repos.rubric)
	s.rubric = service.NewRubricService(repos.rubric)
	s.importExport = service.NewImportExportService(repos.question, repos.assessment, repos.bank, s.storage, rdb, &cfg.Import)
	s.aiDraft = service.NewAIDraftService(cfg.AI)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		bank:         controller.NewQuestionBankController(s.bank),
		question:     controller.NewQuestionController(s.question, s.aiDraft),
		assessment:   controller.NewAssessmentController(s.assessment),
		rubric:       controller.NewRubricController(s.rubric),
		importExport: controller.NewImportExportController(s.importExport),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(rateLimitParams(cfg)))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// rateLimitParams reads the rate_limit config section, falling back to a
// permissive per-minute limit when the section is absent or zeroed.
func rateLimitParams(cfg *config.Config) (int, time.Duration) {
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	return maxRequests, window
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("authoring-console", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
