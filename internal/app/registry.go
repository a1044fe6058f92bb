package app

import (
	"time"

	"go-intranet/internal/auth"
	"go-intranet/internal/bootstrap"
	"go-intranet/internal/config"
	"go-intranet/internal/document"
	"go-intranet/internal/mailer"
	"go-intranet/internal/middleware"
	"go-intranet/internal/notification"
	"go-intranet/internal/rbac"
	"go-intranet/internal/request"
	"go-intranet/internal/tools"
	"go-intranet/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	userRepo user.Repository,
	docs *document.Store,
	rdb *redis.Client,
	kafkaWriter *kafkago.Writer,
	audit bootstrap.AuditLogger,
) error {
	// --- Repositories ---
	requestRepo := request.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	toolsRepo := tools.NewRepository(db)

	// --- RBAC core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	var events notification.EventPublisher
	if kafkaWriter != nil {
		events = notification.NewKafkaEventPublisher(kafkaWriter)
	}
	notificationService := notification.NewService(notificationRepo, events)

	otpSender := mailer.New(cfg)
	authService := auth.NewService(
		userRepo,
		otpSender,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
	)
	userService := user.NewService(userRepo)
	requestService := request.NewService(requestRepo, notificationService, docs)
	toolsService := tools.NewService(toolsRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, audit)
	requestHandler := request.NewHandler(requestService, docs)
	notificationHandler := notification.NewHandler(notificationService)
	toolsHandler := tools.NewHandler(toolsService, docs, audit)

	// --- Routes ---
	authMW := middleware.Auth(cfg.JWTSecret)

	api := router.Group("/api")
	auth.RegisterRoutes(api, authHandler, authMW)

	protected := api.Group("")
	protected.Use(authMW)
	// Idempotency keys are scoped by the authenticated account, so the
	// middleware must run after auth and never on the public login routes.
	if rdb != nil {
		protected.Use(middleware.Idempotency(rdb))
	}
	user.RegisterRoutes(protected, userHandler, rbacService)
	request.RegisterRoutes(protected, requestHandler, rbacService)
	notification.RegisterRoutes(protected, notificationHandler, rbacService)
	tools.RegisterRoutes(protected, toolsHandler, rbacService)

	return nil
}
