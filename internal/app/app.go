package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/controller"
	"skillforge_backend/internal/event"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"
	"skillforge_backend/pkg/database"
	"skillforge_backend/pkg/logger"
	"skillforge_backend/pkg/monitoring"
	"skillforge_backend/pkg/security"
	"skillforge_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	MongoClient     *mongo.Client
	DB              *mongo.Database
	Redis           *redis.Client
	Events          *event.Publisher
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	skill        *repository.SkillRepository
	course       *repository.CourseRepository
	lesson       *repository.LessonRepository
	quiz         *repository.QuizRepository
	question     *repository.QuestionRepository
	progress     *repository.ProgressRepository
	usp          *repository.UserSkillProgressRepository
	badge        *repository.BadgeRepository
	validated    *repository.ValidatedSkillRepository
	goal         *repository.GoalRepository
	notification *repository.NotificationRepository
	resource     *repository.ResourceRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	skill        *service.SkillService
	course       *service.CourseService
	progress     *service.ProgressService
	quiz         *service.QuizService
	validation   *service.ValidationService
	badge        *service.BadgeService
	goal         *service.GoalService
	notification *service.NotificationService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	skill        *controller.SkillController
	course       *controller.CourseController
	progress     *controller.ProgressController
	quiz         *controller.QuizController
	badge        *controller.BadgeController
	goal         *controller.GoalController
	notification *controller.NotificationController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs the registered reload callbacks. Invoked by the config
// watcher on file change.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *mongo.Database) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		skill:        repository.NewSkillRepository(db),
		course:       repository.NewCourseRepository(db),
		lesson:       repository.NewLessonRepository(db),
		quiz:         repository.NewQuizRepository(db),
		question:     repository.NewQuestionRepository(db),
		progress:     repository.NewProgressRepository(db),
		usp:          repository.NewUserSkillProgressRepository(db),
		badge:        repository.NewBadgeRepository(db),
		validated:    repository.NewValidatedSkillRepository(db),
		goal:         repository.NewGoalRepository(db),
		notification: repository.NewNotificationRepository(db),
		resource:     repository.NewResourceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg, logger.Log)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.notification = service.NewNotificationService(repos.notification, logger.Log)
	s.skill = service.NewSkillService(repos.skill, repos.course, repos.quiz, repos.usp, repos.progress, rdb, logger.Log)
	s.course = service.NewCourseService(repos.course, repos.lesson, repos.quiz, repos.resource, repos.skill, repos.progress, logger.Log)
	s.progress = service.NewProgressService(repos.progress, repos.lesson, repos.course, repos.usp, s.notification, a.Events, logger.Log)
	s.validation = service.NewValidationService(repos.skill, repos.badge, repos.usp, repos.progress, repos.validated, s.notification, a.Events, logger.Log)
	s.quiz = service.NewQuizService(repos.quiz, repos.question, repos.progress, s.validation, logger.Log)
	s.badge = service.NewBadgeService(repos.badge, logger.Log)
	s.goal = service.NewGoalService(repos.goal)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		skill:        controller.NewSkillController(s.skill, s.validation),
		course:       controller.NewCourseController(s.course, s.progress),
		progress:     controller.NewProgressController(s.progress),
		quiz:         controller.NewQuizController(s.quiz),
		badge:        controller.NewBadgeController(s.badge),
		goal:         controller.NewGoalController(s.goal),
		notification: controller.NewNotificationController(s.notification),
		admin: controller.NewAdminController(
			s.skill, s.course, s.quiz, s.badge, s.user, s.validation, s.storage),
		health: controller.NewHealthController(a.MongoClient, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	client, db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("failed to initialize mongodb", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The catalog cache and health probe degrade without redis;
		// nothing else depends on it.
		logger.Log.Warn("redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config:      cfg,
		MongoClient: client,
		DB:          db,
		Redis:       rdb,
	}

	if cfg.AMQP.URI != "" {
		publisher, err := event.NewPublisher(cfg.AMQP.URI, cfg.AMQP.Exchange, logger.Log)
		if err != nil {
			logger.Log.Warn("amqp unavailable, events disabled", zap.Error(err))
		} else {
			app.Events = publisher
		}
	}

	app.RegisterConfigCallback(func(updated *config.Config) {
		app.Config = updated
		logger.Log.Info("configuration reloaded",
			zap.Strings("corsOrigins", updated.CORS.AllowedOrigins),
			zap.Int("rateLimitMaxRequests", updated.RateLimit.MaxRequests))
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skillforge", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	a.Events.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	database.CloseMongo(a.MongoClient)
	if a.Redis != nil {
		a.Redis.Close()
	}
	logger.Log.Info("server exiting")
	logger.Log.Sync()
}
