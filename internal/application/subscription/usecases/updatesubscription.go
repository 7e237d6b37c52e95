package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/dto"
	"github.com/freshvale-inc/freshvale/internal/application/subscription/services"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// UpdateSubscriptionCommand carries a partial update. Nil fields are left
// untouched.
type UpdateSubscriptionCommand struct {
	SubscriptionID uint
	ActorID        uint
	Items          []subscription.Item
	AddressID      *uint
	BillingCycle   *string
	AutoRenew      *bool
	AsOf           time.Time
}

// UpdateSubscriptionUseCase applies a partial update to the aggregate. An
// address or billing-cycle change invalidates the derived next delivery date,
// so those paths recompute it against the new zone state.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	zoneDays         *services.ZoneDayService
	txManager        *db.TransactionManager
	horizonDays      int
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	zoneDays *services.ZoneDayService,
	txManager *db.TransactionManager,
	horizonDays int,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		zoneDays:         zoneDays,
		txManager:        txManager,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var result *dto.SubscriptionDTO

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := loadOwned(txCtx, uc.subscriptionRepo, cmd.SubscriptionID, cmd.ActorID)
		if err != nil {
			return err
		}

		needsRecompute := false

		if cmd.Items != nil {
			if err := sub.UpdateItems(cmd.Items, cmd.AsOf); err != nil {
				return mapDomainError(err)
			}
		}

		if cmd.AddressID != nil && *cmd.AddressID != sub.AddressID() {
			if err := sub.ChangeAddress(*cmd.AddressID, cmd.AsOf); err != nil {
				return mapDomainError(err)
			}
			needsRecompute = true
		}

		if cmd.BillingCycle != nil {
			cycle := vo.BillingCycle(*cmd.BillingCycle)
			if cycle != sub.BillingCycle() {
				if err := sub.ChangeBillingCycle(cycle, cmd.AsOf); err != nil {
					return mapDomainError(err)
				}
				needsRecompute = true
			}
		}

		if cmd.AutoRenew != nil {
			sub.SetAutoRenew(*cmd.AutoRenew, cmd.AsOf)
		}

		if needsRecompute && sub.Status().CanDeliver() {
			if err := recomputeNextDelivery(txCtx, sub, uc.zoneDays, uc.horizonDays, cmd.AsOf, uc.logger); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", cmd.SubscriptionID)
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		uc.logger.Infow("subscription updated",
			"subscription_sid", sub.SID(),
			"recomputed_schedule", needsRecompute,
		)

		result = dto.ToSubscriptionDTO(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
