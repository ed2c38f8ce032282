package subscription

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
)

// ExpireSubscriptions is the background sweep flipping active
// subscriptions past their end date to expired. Runs from the sweeper
// binary on a timer.
type ExpireSubscriptions struct {
	subs   domain.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewExpireSubscriptions(
	subs domain.Repository,
	logger *zap.Logger,
) *ExpireSubscriptions {
	return &ExpireSubscriptions{
		subs:   subs,
		logger: logger,
		now:    dateutil.NowUTC,
	}
}

func (uc *ExpireSubscriptions) Execute(ctx context.Context) (int64, error) {
	n, err := uc.subs.ExpireDue(ctx, uc.now())
	if err != nil {
		return 0, err
	}

	if n > 0 {
		uc.logger.Info("expired subscriptions", zap.Int64("count", n))
	}
	return n, nil
}
