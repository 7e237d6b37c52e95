package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/application/route/dto"
	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type AddStopCommand struct {
	RouteID   uint
	AddressID uint
	AsOf      time.Time
}

// AddStopUseCase appends an address at the end of a route's visiting order.
// Adding an address that is already on the route succeeds without change.
type AddStopUseCase struct {
	routeRepo   route.Repository
	addressRepo zone.AddressRepository
	txManager   *db.TransactionManager
	logger      logger.Interface
}

func NewAddStopUseCase(
	routeRepo route.Repository,
	addressRepo zone.AddressRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AddStopUseCase {
	return &AddStopUseCase{
		routeRepo:   routeRepo,
		addressRepo: addressRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *AddStopUseCase) Execute(ctx context.Context, cmd AddStopCommand) (*dto.RouteDTO, error) {
	addr, err := uc.addressRepo.GetByID(ctx, cmd.AddressID)
	if err != nil {
		return nil, fmt.Errorf("failed to load address: %w", err)
	}
	if addr == nil {
		return nil, errors.NewNotFoundError("address not found")
	}

	var result *dto.RouteDTO
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := loadRoute(txCtx, uc.routeRepo, cmd.RouteID)
		if err != nil {
			return err
		}

		if err := r.AddStop(cmd.AddressID, cmd.AsOf); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.routeRepo.ReplaceStops(txCtx, r); err != nil {
			uc.logger.Errorw("failed to persist route stops", "error", err, "route_id", cmd.RouteID)
			return fmt.Errorf("failed to save route stops: %w", err)
		}

		uc.logger.Infow("stop added to route",
			"route_sid", r.SID(),
			"address_id", cmd.AddressID,
			"stop_count", len(r.Stops()),
		)

		result = dto.ToRouteDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
