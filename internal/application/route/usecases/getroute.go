package usecases

import (
	"context"
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/application/route/dto"
	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type GetRouteQuery struct {
	RouteID uint
}

// GetRouteUseCase returns one route with its ordered stops.
type GetRouteUseCase struct {
	routeRepo route.Repository
	logger    logger.Interface
}

func NewGetRouteUseCase(routeRepo route.Repository, logger logger.Interface) *GetRouteUseCase {
	return &GetRouteUseCase{routeRepo: routeRepo, logger: logger}
}

func (uc *GetRouteUseCase) Execute(ctx context.Context, query GetRouteQuery) (*dto.RouteDTO, error) {
	r, err := loadRoute(ctx, uc.routeRepo, query.RouteID)
	if err != nil {
		return nil, err
	}
	return dto.ToRouteDTO(r), nil
}

// ResolveSID maps a public route SID to its internal ID for the command
// usecases. Unknown SIDs surface as not-found.
func (uc *GetRouteUseCase) ResolveSID(ctx context.Context, sid string) (uint, error) {
	r, err := uc.routeRepo.GetBySID(ctx, sid)
	if err != nil {
		return 0, fmt.Errorf("failed to get route: %w", err)
	}
	if r == nil {
		return 0, errors.NewNotFoundError("route not found")
	}
	return r.ID(), nil
}

type ListRoutesQuery struct {
	HubID uint
}

// ListRoutesUseCase returns all routes of a hub.
type ListRoutesUseCase struct {
	routeRepo route.Repository
	logger    logger.Interface
}

func NewListRoutesUseCase(routeRepo route.Repository, logger logger.Interface) *ListRoutesUseCase {
	return &ListRoutesUseCase{routeRepo: routeRepo, logger: logger}
}

func (uc *ListRoutesUseCase) Execute(ctx context.Context, query ListRoutesQuery) ([]*dto.RouteDTO, error) {
	routes, err := uc.routeRepo.ListByHub(ctx, query.HubID)
	if err != nil {
		uc.logger.Errorw("failed to list routes", "error", err, "hub_id", query.HubID)
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	dtos := make([]*dto.RouteDTO, 0, len(routes))
	for _, r := range routes {
		dtos = append(dtos, dto.ToRouteDTO(r))
	}
	return dtos, nil
}
