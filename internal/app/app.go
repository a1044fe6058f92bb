package app

import (
	"context"
	"net/http"
	"strings"

	"go-intranet/internal/bootstrap"
	"go-intranet/internal/config"
	"go-intranet/internal/document"
	"go-intranet/internal/middleware"
	"go-intranet/internal/shared/apperror"
	"go-intranet/internal/shared/response"
	"go-intranet/internal/storage"
	"go-intranet/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp wires infrastructure and modules onto the router. Redis and kafka
// are optional: leaving their addresses unset disables idempotency keys and
// the notification event mirror.
func BuildApp(router *gin.Engine, cfg *config.Config, audit bootstrap.AuditLogger) error {
	db, err := storage.Open(cfg.SQLitePath)
	if err != nil {
		return err
	}
	if err := storage.Migrate(db); err != nil {
		return err
	}

	userRepo := user.NewRepository(db)
	if err := user.EnsureSeedAdmin(context.Background(), userRepo); err != nil {
		return err
	}

	docs, err := document.NewStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zap.L().Warn("redis unreachable, idempotency keys disabled", zap.Error(err))
			rdb = nil
		}
	}

	var kafkaWriter *kafkago.Writer
	if cfg.KafkaBrokers != "" {
		kafkaWriter = &kafkago.Writer{
			Addr:     kafkago.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafkago.LeastBytes{},
		}
		zap.L().Info("kafka event mirror enabled", zap.String("topic", cfg.KafkaTopic))
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	router.Static("/uploads", docs.BaseDir())

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Base de datos no disponible.", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(router, cfg, db, userRepo, docs, rdb, kafkaWriter, audit)
}
