package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/services"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type ResumeSubscriptionCommand struct {
	SubscriptionID uint
	ActorID        uint
	AsOf           time.Time
}

// ResumeSubscriptionUseCase transitions paused → active, clears paused_until
// and recomputes the next delivery date from today forward against current
// zone/override state.
type ResumeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	zoneDays         *services.ZoneDayService
	txManager        *db.TransactionManager
	horizonDays      int
	logger           logger.Interface
}

func NewResumeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	zoneDays *services.ZoneDayService,
	txManager *db.TransactionManager,
	horizonDays int,
	logger logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		zoneDays:         zoneDays,
		txManager:        txManager,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := sub.Resume(cmd.AsOf); err != nil {
			return mapDomainError(err)
		}

		if err := recomputeNextDelivery(txCtx, sub, uc.zoneDays, uc.horizonDays, cmd.AsOf, uc.logger); err != nil {
			return err
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to update resumed subscription", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("subscription resumed",
			"subscription_sid", sub.SID(),
			"next_delivery_date", sub.NextDeliveryDate(),
		)
		return nil
	})
}
