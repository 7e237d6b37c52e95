package usecases

import (
	"context"
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
)

func loadRoute(ctx context.Context, repo route.Repository, routeID uint) (*route.Route, error) {
	r, err := repo.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError("route not found")
	}
	return r, nil
}
