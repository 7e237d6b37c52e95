// Package services holds application services shared by the subscription
// usecases.
package services

import (
	"context"
	"time"

	servusecases "github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
)

// ZoneDayService turns a zone resolution into the per-day serviceability
// callback the recurrence calculator consumes. Resolution happens once per
// operation and the result is reused for every candidate day, since overrides
// can expire between requests but are stable within one.
type ZoneDayService struct {
	resolver *servusecases.ResolveZoneUseCase
}

func NewZoneDayService(resolver *servusecases.ResolveZoneUseCase) *ZoneDayService {
	return &ZoneDayService{resolver: resolver}
}

// DayFn resolves the subscription's bound address and returns a closure
// answering "can this date carry a delivery". A not-serviceable address
// yields a closure that is false for every day.
func (s *ZoneDayService) DayFn(ctx context.Context, sub *subscription.Subscription, asOf time.Time) (subscription.ZoneDayFn, error) {
	res, err := s.resolver.Execute(ctx, servusecases.ResolveZoneQuery{
		AddressID: sub.AddressID(),
		Vertical:  sub.Vertical(),
		AsOf:      asOf,
	})
	if err != nil {
		return nil, err
	}

	if !res.Serviceable || res.Zone == nil {
		return func(time.Time) bool { return false }, nil
	}

	z := res.Zone
	return func(day time.Time) bool {
		return z.ServesWeekday(day.Weekday())
	}, nil
}
