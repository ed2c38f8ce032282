package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicore/clinic-scheduler/internal/db"
	"github.com/clinicore/clinic-scheduler/internal/infra/payment"
	"github.com/clinicore/clinic-scheduler/internal/infra/storage"
	"github.com/clinicore/clinic-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	gateway, err := payment.NewMercadoPago(cfg.MPAccessToken)
	if err != nil {
		logger.Fatal("failed to configure payment gateway", zap.Error(err))
	}

	uploader := storage.NewS3Uploader(
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Bucket,
		cfg.S3BaseURL,
	)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger, rdb, gateway, uploader)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
