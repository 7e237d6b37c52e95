package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type ExpireSubscriptionsCommand struct {
	AsOf time.Time
}

// ExpireSubscriptionsResult summarizes one expiry sweep.
type ExpireSubscriptionsResult struct {
	Expired int
	Skipped int
	Failed  int
}

// ExpireSubscriptionsUseCase honors the external billing system's expiry
// verdicts. Each subscription named by the source is moved to the terminal
// expired status under its own row lock; already-terminal subscriptions are
// skipped, not failed, so a re-delivered verdict is harmless.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	expirySource     ExpirySource
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	expirySource ExpirySource,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		expirySource:     expirySource,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context, cmd ExpireSubscriptionsCommand) (*ExpireSubscriptionsResult, error) {
	ids, err := uc.expirySource.ListExpiredSubscriptionIDs(ctx, cmd.AsOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired subscriptions: %w", err)
	}

	result := &ExpireSubscriptionsResult{}
	for _, id := range ids {
		if err := uc.expireOne(ctx, id, cmd.AsOf, result); err != nil {
			result.Failed++
			uc.logger.Errorw("failed to expire subscription", "error", err, "subscription_id", id)
		}
	}

	if len(ids) > 0 {
		uc.logger.Infow("expiry sweep finished",
			"expired", result.Expired,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
	}

	return result, nil
}

func (uc *ExpireSubscriptionsUseCase) expireOne(ctx context.Context, id uint, asOf time.Time, result *ExpireSubscriptionsResult) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		if sub == nil || sub.Status().IsTerminal() {
			result.Skipped++
			return nil
		}

		if err := sub.MarkExpired(asOf); err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		result.Expired++
		uc.logger.Infow("subscription expired", "subscription_sid", sub.SID())
		return nil
	})
}
