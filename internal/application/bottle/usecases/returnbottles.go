// Package usecases orchestrates bottle-ledger operations against the
// subscription view.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/bottle/services"
	"github.com/freshvale-inc/freshvale/internal/domain/bottle"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type ReturnBottlesCommand struct {
	SubscriptionID uint
	BottleSIDs     []string
	Condition      string
	AsOf           time.Time
}

type ReturnBottlesResult struct {
	Processed    int     `json:"processed"`
	RefundAmount float64 `json:"refund_amount"`
}

// ReturnBottlesUseCase records bottles collected back from a subscriber. Each
// return appends to the bottle ledger and bumps the returned counter on the
// subscription view; damaged bottles forfeit their deposit refund. Runs under
// the subscription row lock so a concurrent delivery cannot interleave with
// the counter update.
type ReturnBottlesUseCase struct {
	subscriptionRepo subscription.Repository
	bottleRepo       bottle.Repository
	issuer           *services.Issuer
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewReturnBottlesUseCase(
	subscriptionRepo subscription.Repository,
	bottleRepo bottle.Repository,
	issuer *services.Issuer,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ReturnBottlesUseCase {
	return &ReturnBottlesUseCase{
		subscriptionRepo: subscriptionRepo,
		bottleRepo:       bottleRepo,
		issuer:           issuer,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *ReturnBottlesUseCase) Execute(ctx context.Context, cmd ReturnBottlesCommand) (*ReturnBottlesResult, error) {
	if len(cmd.BottleSIDs) == 0 {
		return nil, errors.NewValidationError("at least one bottle is required")
	}
	if cmd.Condition != "good" && cmd.Condition != "damaged" {
		return nil, errors.NewValidationError("condition must be good or damaged")
	}

	var result *ReturnBottlesResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return errors.NewNotFoundError("subscription not found")
		}

		bottleIDs := make([]uint, 0, len(cmd.BottleSIDs))
		for _, sid := range cmd.BottleSIDs {
			b, err := uc.bottleRepo.GetBySID(txCtx, sid)
			if err != nil {
				return fmt.Errorf("failed to get bottle: %w", err)
			}
			if b == nil {
				return errors.NewNotFoundError(fmt.Sprintf("bottle %s not found", sid))
			}
			bottleIDs = append(bottleIDs, b.ID())
		}

		processed, refund, err := uc.issuer.ProcessReturn(txCtx, sub.UserID(), bottleIDs, cmd.Condition, cmd.AsOf)
		if err != nil {
			return err
		}

		sub.RecordBottleReturn(processed, cmd.AsOf)
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		result = &ReturnBottlesResult{Processed: processed, RefundAmount: refund}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("bottles returned",
		"subscription_id", cmd.SubscriptionID,
		"processed", result.Processed,
		"refund", result.RefundAmount,
		"condition", cmd.Condition,
	)

	return result, nil
}

// ResolveSID maps a public subscription SID to its internal ID. Unknown SIDs
// surface as not-found.
func (uc *ReturnBottlesUseCase) ResolveSID(ctx context.Context, sid string) (uint, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return 0, errors.NewNotFoundError("subscription not found")
	}
	return sub.ID(), nil
}
