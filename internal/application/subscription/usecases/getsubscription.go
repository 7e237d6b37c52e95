package usecases

import (
	"context"
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/dto"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SubscriptionID uint
	ActorID        uint
}

// GetSubscriptionUseCase returns the owner's view of one subscription.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
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

	return dto.ToSubscriptionDTO(sub), nil
}

// ResolveSID maps a public subscription SID to its internal ID for the
// command usecases. Unknown SIDs surface as not-found.
func (uc *GetSubscriptionUseCase) ResolveSID(ctx context.Context, sid string) (uint, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return 0, errors.NewNotFoundError("subscription not found")
	}
	return sub.ID(), nil
}

type ListSubscriptionsQuery struct {
	ActorID uint
}

// ListSubscriptionsUseCase returns all subscriptions of the requesting user.
type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) ([]*dto.SubscriptionDTO, error) {
	subs, err := uc.subscriptionRepo.GetByUserID(ctx, query.ActorID)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err, "user_id", query.ActorID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	dtos := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, dto.ToSubscriptionDTO(sub))
	}
	return dtos, nil
}
