package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/route/dto"
	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type RemoveStopCommand struct {
	RouteID   uint
	AddressID uint
	AsOf      time.Time
}

// RemoveStopUseCase deletes an address from the visiting order and closes the
// gap it leaves, keeping sequence numbers dense. Removing an address that is
// not on the route succeeds without change.
type RemoveStopUseCase struct {
	routeRepo route.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewRemoveStopUseCase(
	routeRepo route.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *RemoveStopUseCase {
	return &RemoveStopUseCase{
		routeRepo: routeRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RemoveStopUseCase) Execute(ctx context.Context, cmd RemoveStopCommand) (*dto.RouteDTO, error) {
	var result *dto.RouteDTO

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := loadRoute(txCtx, uc.routeRepo, cmd.RouteID)
		if err != nil {
			return err
		}

		if found := r.RemoveStop(cmd.AddressID, cmd.AsOf); found {
			if err := uc.routeRepo.ReplaceStops(txCtx, r); err != nil {
				uc.logger.Errorw("failed to persist route stops", "error", err, "route_id", cmd.RouteID)
				return fmt.Errorf("failed to save route stops: %w", err)
			}
			uc.logger.Infow("stop removed from route",
				"route_sid", r.SID(),
				"address_id", cmd.AddressID,
				"stop_count", len(r.Stops()),
			)
		}

		result = dto.ToRouteDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
