package main

import (
	"log"
	"net/http"

	_ "admissions/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"admissions/internal/auth"
	"admissions/internal/cache"
	"admissions/internal/config"
	"admissions/internal/credential"
	"admissions/internal/db"
	"admissions/internal/handler"
	"admissions/internal/mail"
	"admissions/internal/model"
	"admissions/internal/repository"
	"admissions/internal/router"
	"admissions/internal/service"
)

// @title Admissions & Records API
// @version 1.0
// @description Admissions and records backend: applications, approvals, results and credential lifecycle.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	policy, err := credential.ParsePolicy(cfg.PasswordEncoding)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Student{},
		&model.Staff{},
		&model.Course{},
		&model.Result{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	studentRepo := repository.NewStudentRepository(gormDB)
	staffRepo := repository.NewStaffRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	resultRepo := repository.NewResultRepository(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(cfg, studentRepo, staffRepo, jwtService, mailer, policy, logger)
	admissionService := service.NewAdmissionService(cfg, studentRepo, mailer, cacheClient, logger)
	studentService := service.NewStudentService(studentRepo, resultRepo)
	staffService := service.NewStaffService(staffRepo, studentRepo, courseRepo, resultRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService, jwtService)
	staffHandler := handler.NewStaffHandler(staffService, jwtService)
	adminHandler := handler.NewAdminHandler(admissionService)

	authMw := router.NewAuthMiddleware(cfg, studentRepo, staffRepo)

	// Register routes
	router.Register(
		e,
		cfg,
		authMw,
		authHandler,
		studentHandler,
		staffHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
