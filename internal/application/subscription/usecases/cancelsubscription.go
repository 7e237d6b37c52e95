package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID uint
	ActorID        uint
	Reason         string
	AsOf           time.Time
}

// CancelSubscriptionUseCase transitions any non-terminal status to
// cancelled. Cancellation is terminal: the next delivery date is cleared
// permanently and no further schedule computation happens.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := sub.Cancel(cmd.Reason, cmd.AsOf); err != nil {
			return mapDomainError(err)
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to update cancelled subscription", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("subscription cancelled",
			"subscription_sid", sub.SID(),
			"reason", cmd.Reason,
		)
		return nil
	})
}
