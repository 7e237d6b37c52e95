// Package adapters provides outbound implementations of the application
// layer's collaborator ports.
package adapters

import (
	"context"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// LoggingOrderCreator is the default order collaborator: it records the order
// request and succeeds. The real order service (pricing, inventory, payment)
// lives in another system; deployments point this port at its client.
type LoggingOrderCreator struct {
	logger logger.Interface
}

func NewLoggingOrderCreator(logger logger.Interface) usecases.OrderCreator {
	return &LoggingOrderCreator{logger: logger}
}

func (c *LoggingOrderCreator) CreateOrder(ctx context.Context, req usecases.CreateOrderRequest) error {
	c.logger.Infow("order requested",
		"subscription_sid", req.SubscriptionSID,
		"user_id", req.UserID,
		"zone", req.ZoneSID,
		"delivery_date", biztime.FormatDate(req.DeliveryDate),
		"item_count", len(req.Items),
	)
	return nil
}

// NoopExpirySource reports no pending expiries. Deployments wire the billing
// system's feed here.
type NoopExpirySource struct{}

func NewNoopExpirySource() usecases.ExpirySource {
	return &NoopExpirySource{}
}

func (s *NoopExpirySource) ListExpiredSubscriptionIDs(ctx context.Context, asOf time.Time) ([]uint, error) {
	return nil, nil
}
