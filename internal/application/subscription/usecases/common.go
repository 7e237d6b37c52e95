package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/services"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// loadOwned fetches the locked aggregate and enforces ownership. Callers must
// run inside a transaction. Acting on someone else's subscription is an
// authorization failure, distinct from validation.
func loadOwned(ctx context.Context, repo subscription.Repository, subscriptionID, actorID uint) (*subscription.Subscription, error) {
	sub, err := repo.GetByIDForUpdate(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	if !sub.OwnedBy(actorID) {
		return nil, errors.NewForbiddenError("subscription does not belong to the requesting user")
	}
	return sub, nil
}

// recomputeNextDelivery refreshes the derived pointer against current zone
// state. An exhausted horizon is not fatal to the surrounding operation: the
// pointer is cleared and the subscription flagged for manual review via a
// warning.
func recomputeNextDelivery(
	ctx context.Context,
	sub *subscription.Subscription,
	zoneDays *services.ZoneDayService,
	horizonDays int,
	asOf time.Time,
	log logger.Interface,
) error {
	dayFn, err := zoneDays.DayFn(ctx, sub, asOf)
	if err != nil {
		return fmt.Errorf("failed to resolve zone for schedule: %w", err)
	}

	next, err := sub.ComputeNextDeliveryDate(asOf, horizonDays, dayFn)
	if err != nil {
		if stderrors.Is(err, subscription.ErrUnschedulable) {
			log.Warnw("subscription has no delivery day within horizon, flagging for review",
				"subscription_sid", sub.SID(),
				"horizon_days", horizonDays,
			)
			sub.SetNextDeliveryDate(nil, asOf)
			return nil
		}
		return err
	}

	sub.SetNextDeliveryDate(next, asOf)
	return nil
}

// mapDomainError converts aggregate validation failures into the typed
// application error surfaced to callers. AppErrors pass through untouched.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, subscription.ErrTerminalStatus) {
		return errors.NewConflictError("subscription is in a terminal status")
	}
	return errors.NewValidationError(err.Error())
}
