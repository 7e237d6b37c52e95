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

type SaveSequenceCommand struct {
	RouteID    uint
	AddressIDs []uint
	AsOf       time.Time
}

// SaveSequenceUseCase replaces a route's entire visiting order with the
// submitted one. The submission must be a clean list: no duplicates and every
// address resolvable, otherwise the whole save is rejected with a conflict.
// Persistence is a single delete-and-insert transaction; the last submitted
// sequence wins with no version check.
type SaveSequenceUseCase struct {
	routeRepo   route.Repository
	addressRepo zone.AddressRepository
	txManager   *db.TransactionManager
	logger      logger.Interface
}

func NewSaveSequenceUseCase(
	routeRepo route.Repository,
	addressRepo zone.AddressRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *SaveSequenceUseCase {
	return &SaveSequenceUseCase{
		routeRepo:   routeRepo,
		addressRepo: addressRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *SaveSequenceUseCase) Execute(ctx context.Context, cmd SaveSequenceCommand) (*dto.RouteDTO, error) {
	if len(cmd.AddressIDs) == 0 {
		return nil, errors.NewValidationError("sequence cannot be empty")
	}

	if err := uc.checkResolvable(ctx, cmd.AddressIDs); err != nil {
		return nil, err
	}

	var result *dto.RouteDTO
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := loadRoute(txCtx, uc.routeRepo, cmd.RouteID)
		if err != nil {
			return err
		}

		if err := r.Reorder(cmd.AddressIDs, cmd.AsOf); err != nil {
			return errors.NewConflictError(err.Error())
		}

		if err := uc.routeRepo.ReplaceStops(txCtx, r); err != nil {
			uc.logger.Errorw("failed to persist route sequence", "error", err, "route_id", cmd.RouteID)
			return fmt.Errorf("failed to save route sequence: %w", err)
		}

		uc.logger.Infow("route sequence saved",
			"route_sid", r.SID(),
			"stop_count", len(cmd.AddressIDs),
		)

		result = dto.ToRouteDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkResolvable rejects the submission when any address ID does not exist.
func (uc *SaveSequenceUseCase) checkResolvable(ctx context.Context, addressIDs []uint) error {
	addrs, err := uc.addressRepo.GetByIDs(ctx, addressIDs)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}

	known := make(map[uint]bool, len(addrs))
	for _, a := range addrs {
		known[a.ID] = true
	}
	for _, id := range addressIDs {
		if !known[id] {
			return errors.NewConflictError(fmt.Sprintf("address %d does not exist", id))
		}
	}
	return nil
}
