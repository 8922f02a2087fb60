package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Connecting to MongoDB...", "database", cfg.Mongo.Database)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB unavailable", "error", err)
	}
	logger.Info("MongoDB connected")

	db := client.Database(cfg.Mongo.Database)

	if err := seedFirstAdmin(ctx, repositories.NewUserRepository(db), cfg); err != nil {
		// Без первого админа порталом нельзя управлять - не запускаемся
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, db)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, db *mongo.Database) *gin.Engine {
	serviceContainer := initializeServices(cfg, db)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, db *mongo.Database) *services.ServiceContainer {
	var mailer email.Dispatcher
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outgoing email will only be logged")
		mailer = &LoggingDispatcher{}
	} else {
		mailer = email.NewSMTPDispatcher(cfg)
	}

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	// --- Сервисы ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo, mailer)
	jobService := services.NewJobService(jobRepo, userRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, userRepo, notificationService, mailer)
	companyService := services.NewCompanyService(userRepo, jobRepo, applicationRepo, notificationService)
	adminService := services.NewAdminService(userRepo, jobRepo, applicationRepo)

	return &services.ServiceContainer{
		NotificationService: notificationService,
		JobService:          jobService,
		ApplicationService:  applicationService,
		CompanyService:      companyService,
		AdminService:        adminService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		JobHandler:          handlers.NewJobHandler(baseHandler, container.JobService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		CompanyHandler:      handlers.NewCompanyHandler(baseHandler, container.CompanyService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, container.AdminService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(ctx context.Context, users repositories.UserRepository, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	_, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Portal Admin",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		IsApproved:   true,
	}
	if err := users.Insert(ctx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
