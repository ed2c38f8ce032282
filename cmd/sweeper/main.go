package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicore/clinic-scheduler/internal/db"
	infraRepo "github.com/clinicore/clinic-scheduler/internal/infra/repository"
	ucSubscription "github.com/clinicore/clinic-scheduler/internal/usecase/subscription"
)

const sweepInterval = 10 * time.Minute

// Moves subscriptions past their end date to 'expired' so stale plans
// stop granting bookings.
func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)
	sweepUC := ucSubscription.NewExpireSubscriptions(subscriptionRepo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	logger.Info("subscription sweeper started", zap.Duration("interval", sweepInterval))

	if _, err := sweepUC.Execute(ctx); err != nil {
		logger.Error("sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription sweeper stopping")
			return
		case <-ticker.C:
			if _, err := sweepUC.Execute(ctx); err != nil {
				logger.Error("sweep failed", zap.Error(err))
			}
		}
	}
}
