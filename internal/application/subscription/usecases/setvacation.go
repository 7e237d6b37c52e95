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

type SetVacationCommand struct {
	SubscriptionID uint
	ActorID        uint
	Start          time.Time
	End            time.Time
	AsOf           time.Time
}

// SetVacationUseCase sets the vacation window on an active subscription.
// Status is unchanged; days inside the window stop being delivery days, so
// the next delivery date is recomputed in case it fell inside the window.
type SetVacationUseCase struct {
	subscriptionRepo subscription.Repository
	zoneDays         *services.ZoneDayService
	txManager        *db.TransactionManager
	horizonDays      int
	logger           logger.Interface
}

func NewSetVacationUseCase(
	subscriptionRepo subscription.Repository,
	zoneDays *services.ZoneDayService,
	txManager *db.TransactionManager,
	horizonDays int,
	logger logger.Interface,
) *SetVacationUseCase {
	return &SetVacationUseCase{
		subscriptionRepo: subscriptionRepo,
		zoneDays:         zoneDays,
		txManager:        txManager,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

func (uc *SetVacationUseCase) Execute(ctx context.Context, cmd SetVacationCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := sub.SetVacation(cmd.Start, cmd.End, cmd.AsOf); err != nil {
			return mapDomainError(err)
		}

		if sub.Status().CanDeliver() {
			if err := recomputeNextDelivery(txCtx, sub, uc.zoneDays, uc.horizonDays, cmd.AsOf, uc.logger); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to update subscription vacation", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("vacation window set",
			"subscription_sid", sub.SID(),
			"vacation_start", cmd.Start,
			"vacation_end", cmd.End,
		)
		return nil
	})
}

type ClearVacationCommand struct {
	SubscriptionID uint
	ActorID        uint
	AsOf           time.Time
}

// ClearVacationUseCase removes the vacation window and recomputes the next
// delivery date, since previously suppressed days become eligible again.
type ClearVacationUseCase struct {
	subscriptionRepo subscription.Repository
	zoneDays         *services.ZoneDayService
	txManager        *db.TransactionManager
	horizonDays      int
	logger           logger.Interface
}

func NewClearVacationUseCase(
	subscriptionRepo subscription.Repository,
	zoneDays *services.ZoneDayService,
	txManager *db.TransactionManager,
	horizonDays int,
	logger logger.Interface,
) *ClearVacationUseCase {
	return &ClearVacationUseCase{
		subscriptionRepo: subscriptionRepo,
		zoneDays:         zoneDays,
		txManager:        txManager,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

func (uc *ClearVacationUseCase) Execute(ctx context.Context, cmd ClearVacationCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := sub.ClearVacation(cmd.AsOf); err != nil {
			return mapDomainError(err)
		}

		if sub.Status().CanDeliver() {
			if err := recomputeNextDelivery(txCtx, sub, uc.zoneDays, uc.horizonDays, cmd.AsOf, uc.logger); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to clear subscription vacation", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("vacation window cleared", "subscription_sid", sub.SID())
		return nil
	})
}
