package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/dto"
	"github.com/freshvale-inc/freshvale/internal/application/subscription/services"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type GetDeliveryScheduleQuery struct {
	SubscriptionID uint
	ActorID        uint
	Year           int
	Month          int
	AsOf           time.Time
}

// GetDeliveryScheduleUseCase computes the month calendar for one
// subscription. Zone serviceability is resolved once per request and reused
// for every day of the month.
type GetDeliveryScheduleUseCase struct {
	subscriptionRepo subscription.Repository
	zoneDays         *services.ZoneDayService
	logger           logger.Interface
}

func NewGetDeliveryScheduleUseCase(
	subscriptionRepo subscription.Repository,
	zoneDays *services.ZoneDayService,
	logger logger.Interface,
) *GetDeliveryScheduleUseCase {
	return &GetDeliveryScheduleUseCase{
		subscriptionRepo: subscriptionRepo,
		zoneDays:         zoneDays,
		logger:           logger,
	}
}

func (uc *GetDeliveryScheduleUseCase) Execute(ctx context.Context, query GetDeliveryScheduleQuery) (*dto.ScheduleDTO, error) {
	if query.Month < 1 || query.Month > 12 {
		return nil, errors.NewValidationError("month must be between 1 and 12")
	}
	if query.Year < 2000 || query.Year > 2100 {
		return nil, errors.NewValidationError("year is out of range")
	}

	sub, err := uc.subscriptionRepo.GetByID(ctx, query.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", query.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	if !sub.OwnedBy(query.ActorID) {
		return nil, errors.NewForbiddenError("subscription does not belong to the requesting user")
	}

	dayFn, err := uc.zoneDays.DayFn(ctx, sub, query.AsOf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve zone for schedule: %w", err)
	}

	schedule := sub.ComputeMonthSchedule(query.Year, time.Month(query.Month), query.AsOf, dayFn)

	uc.logger.Debugw("delivery schedule computed",
		"subscription_sid", sub.SID(),
		"year", query.Year,
		"month", query.Month,
		"total_deliveries", schedule.TotalDeliveries,
	)

	return dto.ToScheduleDTO(schedule), nil
}
