package usecases

import (
	"context"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
)

// OrderCreator is the port to the external order-generation collaborator.
// The fulfillment core decides which subscriptions are due; creating the
// order itself (pricing, inventory, payment) is not its concern.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) error
}

// CreateOrderRequest carries everything the order collaborator needs for one
// day's delivery of a subscription.
type CreateOrderRequest struct {
	SubscriptionSID string
	UserID          uint
	AddressID       uint
	ZoneSID         string
	DeliveryDate    time.Time
	Items           []subscription.Item
}

// BottleIssuer is the port to the bottle-deposit ledger, invoked when a
// subscription's vertical requires reusable containers.
type BottleIssuer interface {
	IssueForDelivery(ctx context.Context, userID uint, count int, asOf time.Time) (issued int, err error)
}

// ExpirySource reports which subscriptions the external billing system has
// expired. Billing-cycle completion lives outside the fulfillment core; this
// port is how its verdicts arrive.
type ExpirySource interface {
	ListExpiredSubscriptionIDs(ctx context.Context, asOf time.Time) ([]uint, error)
}

// bottleVerticals lists business lines whose deliveries travel in reusable
// containers.
var bottleVerticals = map[string]bool{
	"daily_fresh": true,
}

func requiresBottles(vertical string) bool {
	return bottleVerticals[vertical]
}
