package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	servusecases "github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type GenerateDailyOrdersCommand struct {
	AsOf      time.Time
	BatchSize int
}

// GenerateDailyOrdersResult summarizes one generation run.
type GenerateDailyOrdersResult struct {
	Scanned       int
	OrdersCreated int
	Skipped       int
	Unschedulable int
	Failed        int
}

// GenerateDailyOrdersUseCase is the daily tick. It scans subscriptions whose
// next delivery date is today, hands each to the order collaborator, issues
// bottles for verticals that ship in reusable containers, and advances the
// delivery pointer strictly past the generated day. Each subscription is
// processed in its own transaction under a row lock, so a concurrent pause or
// cancel either lands before the scan (the subscription is skipped) or waits
// for the row lock and sees the advanced pointer.
type GenerateDailyOrdersUseCase struct {
	subscriptionRepo subscription.Repository
	resolver         *servusecases.ResolveZoneUseCase
	orderCreator     OrderCreator
	bottleIssuer     BottleIssuer
	txManager        *db.TransactionManager
	horizonDays      int
	logger           logger.Interface
}

func NewGenerateDailyOrdersUseCase(
	subscriptionRepo subscription.Repository,
	resolver *servusecases.ResolveZoneUseCase,
	orderCreator OrderCreator,
	bottleIssuer BottleIssuer,
	txManager *db.TransactionManager,
	horizonDays int,
	logger logger.Interface,
) *GenerateDailyOrdersUseCase {
	return &GenerateDailyOrdersUseCase{
		subscriptionRepo: subscriptionRepo,
		resolver:         resolver,
		orderCreator:     orderCreator,
		bottleIssuer:     bottleIssuer,
		txManager:        txManager,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

func (uc *GenerateDailyOrdersUseCase) Execute(ctx context.Context, cmd GenerateDailyOrdersCommand) (*GenerateDailyOrdersResult, error) {
	today := biztime.DateOf(cmd.AsOf)
	result := &GenerateDailyOrdersResult{}

	due, err := uc.subscriptionRepo.ListDueForDelivery(ctx, today, cmd.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}
	result.Scanned = len(due)

	for _, candidate := range due {
		if err := uc.processOne(ctx, candidate.ID(), today, cmd.AsOf, result); err != nil {
			result.Failed++
			uc.logger.Errorw("order generation failed for subscription",
				"error", err,
				"subscription_sid", candidate.SID(),
				"delivery_date", biztime.FormatDate(today),
			)
		}
	}

	uc.logger.Infow("daily order generation finished",
		"delivery_date", biztime.FormatDate(today),
		"scanned", result.Scanned,
		"orders_created", result.OrdersCreated,
		"skipped", result.Skipped,
		"unschedulable", result.Unschedulable,
		"failed", result.Failed,
	)

	return result, nil
}

// processOne re-reads the subscription under a row lock and generates at most
// one order. Generating an order and advancing the pointer commit together,
// so a crash between the two cannot double-deliver.
func (uc *GenerateDailyOrdersUseCase) processOne(ctx context.Context, subID uint, today, asOf time.Time, result *GenerateDailyOrdersResult) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, subID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		if sub == nil {
			result.Skipped++
			return nil
		}

		// The scan result may be stale: a pause, cancel or reschedule can land
		// between listing and locking.
		next := sub.NextDeliveryDate()
		if !sub.Status().CanDeliver() || next == nil || !biztime.SameDate(*next, today) {
			result.Skipped++
			return nil
		}

		res, err := uc.resolver.Execute(txCtx, servusecases.ResolveZoneQuery{
			AddressID: sub.AddressID(),
			Vertical:  sub.Vertical(),
			AsOf:      asOf,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve zone: %w", err)
		}
		if !res.Serviceable || res.Zone == nil || !res.Zone.ServesWeekday(today.Weekday()) {
			// Zone state changed since the pointer was computed. Recompute
			// instead of delivering into a dead zone.
			uc.logger.Warnw("due subscription is no longer serviceable today, recomputing",
				"subscription_sid", sub.SID(),
				"delivery_date", biztime.FormatDate(today),
			)
			return uc.advance(txCtx, sub, res, today, asOf, result)
		}

		items := sub.Items()
		if err := uc.orderCreator.CreateOrder(txCtx, CreateOrderRequest{
			SubscriptionSID: sub.SID(),
			UserID:          sub.UserID(),
			AddressID:       sub.AddressID(),
			ZoneSID:         res.Zone.SID(),
			DeliveryDate:    today,
			Items:           items,
		}); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		result.OrdersCreated++

		if requiresBottles(sub.Vertical()) && uc.bottleIssuer != nil {
			count := 0
			for _, item := range items {
				count += item.Quantity
			}
			issued, err := uc.bottleIssuer.IssueForDelivery(txCtx, sub.UserID(), count, asOf)
			if err != nil {
				return fmt.Errorf("failed to issue bottles: %w", err)
			}
			sub.RecordBottleIssue(issued, asOf)
		}

		uc.logger.Infow("order generated",
			"subscription_sid", sub.SID(),
			"zone", res.Zone.Code(),
			"delivery_date", biztime.FormatDate(today),
		)

		return uc.advance(txCtx, sub, res, today, asOf, result)
	})
}

// advance moves the pointer strictly past today and persists the aggregate.
func (uc *GenerateDailyOrdersUseCase) advance(ctx context.Context, sub *subscription.Subscription, res *servusecases.Resolution, today, asOf time.Time, result *GenerateDailyOrdersResult) error {
	var dayFn subscription.ZoneDayFn
	if res.Serviceable && res.Zone != nil {
		z := res.Zone
		dayFn = func(day time.Time) bool { return z.ServesWeekday(day.Weekday()) }
	} else {
		dayFn = func(time.Time) bool { return false }
	}

	if err := sub.AdvanceAfterOrder(today, uc.horizonDays, dayFn, asOf); err != nil {
		if stderrors.Is(err, subscription.ErrUnschedulable) {
			result.Unschedulable++
			uc.logger.Warnw("subscription has no further delivery day within horizon, flagging for review",
				"subscription_sid", sub.SID(),
				"horizon_days", uc.horizonDays,
			)
			sub.SetNextDeliveryDate(nil, asOf)
		} else {
			return err
		}
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}
