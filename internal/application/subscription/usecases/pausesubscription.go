package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type PauseSubscriptionCommand struct {
	SubscriptionID uint
	ActorID        uint
	PausedUntil    *time.Time
	AsOf           time.Time
}

// PauseSubscriptionUseCase transitions active → paused. Pausing clears the
// next delivery date; the transition runs under a per-subscription row lock
// so a concurrent resume cannot interleave.
type PauseSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewPauseSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *PauseSubscriptionUseCase {
	return &PauseSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *PauseSubscriptionUseCase) Execute(ctx context.Context, cmd PauseSubscriptionCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := sub.Pause(cmd.PausedUntil, cmd.AsOf); err != nil {
			return mapDomainError(err)
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to update paused subscription", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("subscription paused",
			"subscription_sid", sub.SID(),
			"paused_until", cmd.PausedUntil,
		)
		return nil
	})
}
