package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/mappers"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type RouteRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RouteMapper
	logger logger.Interface
}

func NewRouteRepository(
	db *gorm.DB,
	logger logger.Interface,
) route.Repository {
	return &RouteRepositoryImpl{
		db:     db,
		mapper: mappers.NewRouteMapper(),
		logger: logger,
	}
}

func (r *RouteRepositoryImpl) Create(ctx context.Context, entity *route.Route) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create route in database", "error", err)
		return fmt.Errorf("failed to create route: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set route ID", "error", err)
		return fmt.Errorf("failed to set route ID: %w", err)
	}

	r.logger.Infow("route created successfully", "id", model.ID, "hub_id", model.HubID)
	return nil
}

func (r *RouteRepositoryImpl) GetByID(ctx context.Context, id uint) (*route.Route, error) {
	var model models.RouteModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get route by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return r.loadWithStops(ctx, &model)
}

func (r *RouteRepositoryImpl) GetBySID(ctx context.Context, sid string) (*route.Route, error) {
	var model models.RouteModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get route by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return r.loadWithStops(ctx, &model)
}

func (r *RouteRepositoryImpl) ListByHub(ctx context.Context, hubID uint) ([]*route.Route, error) {
	var routeModels []*models.RouteModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("hub_id = ?", hubID).
		Order("id ASC").
		Find(&routeModels).Error; err != nil {
		r.logger.Errorw("failed to list routes by hub", "hub_id", hubID, "error", err)
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]*route.Route, 0, len(routeModels))
	for _, model := range routeModels {
		entity, err := r.loadWithStops(ctx, model)
		if err != nil {
			return nil, err
		}
		routes = append(routes, entity)
	}
	return routes, nil
}

func (r *RouteRepositoryImpl) Update(ctx context.Context, entity *route.Route) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RouteModel{}).
		Where("id = ?", model.ID).
		Select("name", "driver_id", "is_active", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update route", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("route %d not found for update", model.ID)
	}

	return nil
}

// ReplaceStops deletes the persisted stop rows and inserts the route's current
// list. Must run inside a transaction so readers never observe a partial
// sequence; last writer wins with no version check.
func (r *RouteRepositoryImpl) ReplaceStops(ctx context.Context, entity *route.Route) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("route_id = ?", entity.ID()).Delete(&models.RouteStopModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete route stops", "route_id", entity.ID(), "error", err)
		return fmt.Errorf("failed to delete route stops: %w", err)
	}

	stopModels := r.mapper.ToStopModels(entity)
	if len(stopModels) > 0 {
		if err := tx.Create(&stopModels).Error; err != nil {
			r.logger.Errorw("failed to insert route stops", "route_id", entity.ID(), "error", err)
			return fmt.Errorf("failed to insert route stops: %w", err)
		}
	}

	if err := tx.Model(&models.RouteModel{}).
		Where("id = ?", entity.ID()).
		Update("updated_at", entity.UpdatedAt()).Error; err != nil {
		r.logger.Errorw("failed to touch route", "route_id", entity.ID(), "error", err)
		return fmt.Errorf("failed to update route: %w", err)
	}

	return nil
}

func (r *RouteRepositoryImpl) loadWithStops(ctx context.Context, model *models.RouteModel) (*route.Route, error) {
	var stopModels []*models.RouteStopModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("route_id = ?", model.ID).
		Order("sequence ASC").
		Find(&stopModels).Error; err != nil {
		r.logger.Errorw("failed to load route stops", "route_id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to load route stops: %w", err)
	}

	return r.mapper.ToEntity(model, stopModels)
}
