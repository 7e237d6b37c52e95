package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/route/dto"
	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type MoveStopCommand struct {
	RouteID   uint
	StopIndex int
	Direction string
	AsOf      time.Time
}

// MoveStopUseCase swaps a stop with its neighbor one position up or down.
// Moving the first stop up or the last stop down is a no-op, not an error.
type MoveStopUseCase struct {
	routeRepo route.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewMoveStopUseCase(
	routeRepo route.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *MoveStopUseCase {
	return &MoveStopUseCase{
		routeRepo: routeRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *MoveStopUseCase) Execute(ctx context.Context, cmd MoveStopCommand) (*dto.RouteDTO, error) {
	direction := route.MoveDirection(cmd.Direction)
	if direction != route.MoveUp && direction != route.MoveDown {
		return nil, errors.NewValidationError("direction must be up or down")
	}

	var result *dto.RouteDTO
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := loadRoute(txCtx, uc.routeRepo, cmd.RouteID)
		if err != nil {
			return err
		}

		if err := r.MoveStop(cmd.StopIndex, direction, cmd.AsOf); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.routeRepo.ReplaceStops(txCtx, r); err != nil {
			uc.logger.Errorw("failed to persist route stops", "error", err, "route_id", cmd.RouteID)
			return fmt.Errorf("failed to save route stops: %w", err)
		}

		uc.logger.Infow("stop moved",
			"route_sid", r.SID(),
			"index", cmd.StopIndex,
			"direction", cmd.Direction,
		)

		result = dto.ToRouteDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
