package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "github.com/freshvale-inc/freshvale/internal/application/subscription/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// DeliveryScheduler is the daily tick of the fulfillment core. Each tick
// honors pending billing expiries first, then generates today's orders, so an
// expiry arriving overnight cannot produce one last order.
type DeliveryScheduler struct {
	generateOrdersUC *subscriptionUsecases.GenerateDailyOrdersUseCase
	expireUC         *subscriptionUsecases.ExpireSubscriptionsUseCase
	batchSize        int
	logger           logger.Interface
	stopChan         chan struct{}
	stopOnce         sync.Once
	wg               sync.WaitGroup
	interval         time.Duration
}

// NewDeliveryScheduler creates a new DeliveryScheduler
func NewDeliveryScheduler(
	generateOrdersUC *subscriptionUsecases.GenerateDailyOrdersUseCase,
	expireUC *subscriptionUsecases.ExpireSubscriptionsUseCase,
	interval time.Duration,
	batchSize int,
	logger logger.Interface,
) *DeliveryScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &DeliveryScheduler{
		generateOrdersUC: generateOrdersUC,
		expireUC:         expireUC,
		batchSize:        batchSize,
		logger:           logger,
		stopChan:         make(chan struct{}),
		interval:         interval,
	}
}

// Start starts the scheduler
func (s *DeliveryScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting delivery scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *DeliveryScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping delivery scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("delivery scheduler stopped")
	})
}

func (s *DeliveryScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to cover a missed tick after downtime.
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("delivery scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *DeliveryScheduler) tick(ctx context.Context) {
	asOf := biztime.NowUTC()
	startTime := time.Now()

	if _, err := s.expireUC.Execute(ctx, subscriptionUsecases.ExpireSubscriptionsCommand{AsOf: asOf}); err != nil {
		s.logger.Errorw("expiry sweep failed", "error", err)
	}

	result, err := s.generateOrdersUC.Execute(ctx, subscriptionUsecases.GenerateDailyOrdersCommand{
		AsOf:      asOf,
		BatchSize: s.batchSize,
	})
	if err != nil {
		s.logger.Errorw("daily order generation failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	s.logger.Infow("delivery tick completed",
		"orders_created", result.OrdersCreated,
		"unschedulable", result.Unschedulable,
		"failed", result.Failed,
		"duration", time.Since(startTime),
	)
}
