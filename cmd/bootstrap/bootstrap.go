package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docconnect/config"
	deliveryHttp "docconnect/internal/delivery/http"
	"docconnect/internal/delivery/http/handler"
	"docconnect/internal/delivery/http/middleware"
	domainRepo "docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/cache"
	"docconnect/internal/infrastructure/database"
	"docconnect/internal/infrastructure/llm"
	"docconnect/internal/infrastructure/mailer"
	"docconnect/internal/infrastructure/monitoring"
	"docconnect/internal/infrastructure/oauth"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/infrastructure/storage"
	"docconnect/internal/repository"
	"docconnect/internal/repository/memory"
	"docconnect/internal/repository/mongodoc"
	"docconnect/internal/service"
	"docconnect/internal/usecase"
	"docconnect/pkg/jwt"
	"docconnect/pkg/logger"
	"docconnect/pkg/validator"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	MongoClient *mongo.Client
	RedisClient *redis.Client
	Reporter    reporting.Reporter
	Uploader    *service.LicenseUploadService
	Server      *http.Server
}

// documentStore holds the profile repositories for the configured driver.
type documentStore struct {
	transactor domainRepo.Transactor
	users      domainRepo.UserProfileRepository
	doctors    domainRepo.DoctorProfileRepository
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := logger.New(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	reporter, err := reporting.New(cfg.Sentry, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize error reporting: %w", err)
	}
	app.Reporter = reporter

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	docs := documentStore{
		transactor: repository.NewTransactor(db),
		users:      repository.NewUserProfileRepository(db),
		doctors:    repository.NewDoctorProfileRepository(db),
	}
	if cfg.DocumentStore.Driver == "mongo" {
		client, mdb, err := database.NewMongoConnection(ctx, cfg.DocumentStore)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.MongoClient = client
		docs = documentStore{
			transactor: mongodoc.NewTransactor(client),
			users:      mongodoc.NewUserProfileRepository(mdb),
			doctors:    mongodoc.NewDoctorProfileRepository(mdb),
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initializeServer(db, docs); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func newLicenseStore(cfg config.StorageConfig) (storage.Store, http.Handler, error) {
	switch cfg.Driver {
	case "s3":
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.S3Region)})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		return storage.NewS3(sess, cfg.S3Bucket, cfg.S3Prefix, cfg.URLExpiry), nil, nil
	case "local", "":
		local, err := storage.NewLocal(cfg.LocalPath, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return local, http.FileServer(http.Dir(local.Root())), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(db *gorm.DB, docs documentStore) error {
	cfg := app.Config
	log := app.Log

	metrics := monitoring.NewMetrics()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	identityRepo := repository.NewIdentityRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	appointmentRepo, err := memory.NewAppointmentRepository(cfg.Appointments.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}

	// Initialize services
	tokenStore := service.NewRedisTokenStore(app.RedisClient)
	auditService := service.NewAuditService(log, auditLogRepo, metrics)

	licenseStore, uploadsHandler, err := newLicenseStore(cfg.Storage)
	if err != nil {
		return err
	}
	app.Uploader = service.NewLicenseUploadService(cfg.Upload, licenseStore, docs.doctors, app.Reporter, metrics, log)

	summarizer := llm.NewGeminiClient(cfg.LLM, log)
	googleProvider := oauth.NewGoogleProvider(cfg.OAuth)
	verificationMailer := mailer.NewLogMailer(log, cfg.App.BaseURL)
	maxUploadBytes := cfg.Upload.MaxFileSizeMB << 20

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUsecase(log, identityRepo, docs.users, docs.doctors, metrics, cfg.Auth.RequireEmailVerification)
	authUsecase := usecase.NewAuthUsecase(log, cfg.Auth, identityRepo, docs.users, jwtService, tokenStore, verificationMailer, googleProvider, auditService, metrics)
	profileUsecase := usecase.NewProfileUsecase(log, docs.transactor, identityRepo, docs.users, docs.doctors, auditService, app.Reporter, cfg.App.AdminEmails)
	credentialUsecase := usecase.NewCredentialUsecase(log, docs.transactor, docs.users, docs.doctors, app.Uploader, auditService, app.Reporter, maxUploadBytes)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, docs.transactor, docs.doctors, auditService, app.Reporter)
	doctorUsecase := usecase.NewDoctorUsecase(log, docs.users, docs.doctors, appointmentRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, docs.users, docs.doctors, summarizer, auditService, metrics)
	patientUsecase := usecase.NewPatientUsecase(log, appointmentRepo, docs.users)
	verificationCallUsecase := usecase.NewVerificationCallUsecase(log, docs.transactor, docs.users, docs.doctors, auditService, app.Reporter, time.Local)
	dashboardUsecase := usecase.NewDashboardUsecase(log, appointmentRepo, docs.users, docs.doctors)
	adminUsecase := usecase.NewAdminUsecase(log, docs.transactor, docs.users, docs.doctors, auditService, app.Reporter)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:             handler.NewAuthHandler(authUsecase, customValidator),
		Session:          handler.NewSessionHandler(sessionUsecase),
		Profile:          handler.NewProfileHandler(profileUsecase, customValidator),
		Credential:       handler.NewCredentialHandler(credentialUsecase, customValidator, maxUploadBytes),
		Dashboard:        handler.NewDashboardHandler(dashboardUsecase, customValidator),
		Doctor:           handler.NewDoctorHandler(doctorUsecase),
		Appointment:      handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Patient:          handler.NewPatientHandler(patientUsecase),
		Availability:     handler.NewAvailabilityHandler(availabilityUsecase, customValidator),
		VerificationCall: handler.NewVerificationCallHandler(verificationCallUsecase, customValidator),
		Admin:            handler.NewAdminHandler(adminUsecase, customValidator),
		AuditLog:         handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	middlewares := deliveryHttp.Middlewares{
		Auth:       middleware.NewAuthMiddleware(log, jwtService, tokenStore),
		Navigation: middleware.NewNavigationMiddleware(sessionUsecase),
		CORS:       middleware.NewCORSMiddleware(cfg.App.BaseURL),
		Metrics:    metrics.HTTPMiddleware,
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, middlewares, metrics.Handler(), uploadsHandler)
	httpRouter := router.Setup()

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close drains background uploads, then closes all connections (database, mongo, redis).
func (app *App) Close() {
	if app.Uploader != nil {
		app.Uploader.Stop()
	}
	if app.Reporter != nil {
		app.Reporter.Flush(2 * time.Second)
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.MongoClient.Disconnect(ctx)
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
