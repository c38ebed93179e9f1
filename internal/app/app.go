package app

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/controller"
	"anre_quiz_backend/internal/middleware"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/pkg/database"
	"anre_quiz_backend/pkg/logger"
	"anre_quiz_backend/pkg/monitoring"
	"anre_quiz_backend/pkg/security"
	"anre_quiz_backend/pkg/tracing"
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
	services        *services
	authLimiter     *middleware.FailedAuthLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	attempt  *repository.AttemptRepository
	note     *repository.NoteRepository
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	content *service.ContentService
	quiz    *service.QuizService
	editor  *service.EditorService
	note    *service.NoteService
	learn   *service.LearnService
	seo     *service.SEOService
}

type controllers struct {
	auth   *controller.AuthController
	quiz   *controller.QuizController
	editor *controller.EditorController
	note   *controller.NoteController
	learn  *controller.LearnController
	seo    *controller.SEOController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs the registered reload callbacks with a freshly loaded config.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		note:     repository.NewNoteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.question, cfg, logger.Log)
	s.quiz = service.NewQuizService(repos.question, repos.attempt)
	s.editor = service.NewEditorService(repos.question)
	s.note = service.NewNoteService(repos.note)
	s.learn = service.NewLearnService(repos.question, s.storage, cfg, rdb, logger.Log)
	s.seo = service.NewSEOService(repos.question, cfg)

	// Every committed question write invalidates the cached learn pages, and
	// refreshes the subject's JSON file when auto export is on.
	repos.question.OnCommit(s.learn.InvalidateSubject)
	if cfg.QuizData.AutoExport {
		repos.question.OnCommit(s.content.AutoExport)
	}

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth, a.authLimiter),
		quiz:   controller.NewQuizController(s.quiz),
		editor: controller.NewEditorController(s.editor, s.content),
		note:   controller.NewNoteController(s.note),
		learn:  controller.NewLearnController(s.learn),
		seo:    controller.NewSEOController(s.seo),
		health: controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	app.authLimiter = middleware.NewFailedAuthLimiter(rdb, &cfg.AuthLimit)
	app.RegisterConfigCallback(func(c *config.Config) {
		app.authLimiter.UpdateLimits(&c.AuthLimit)
	})

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("anre-quiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/static", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
