package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/mappers"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type ZoneRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ZoneMapper
	logger logger.Interface
}

func NewZoneRepository(
	db *gorm.DB,
	logger logger.Interface,
) zone.Repository {
	return &ZoneRepositoryImpl{
		db:     db,
		mapper: mappers.NewZoneMapper(),
		logger: logger,
	}
}

func (r *ZoneRepositoryImpl) Create(ctx context.Context, entity *zone.Zone) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map zone entity to model", "error", err)
		return fmt.Errorf("failed to map zone entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create zone in database", "error", err)
		return fmt.Errorf("failed to create zone: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set zone ID", "error", err)
		return fmt.Errorf("failed to set zone ID: %w", err)
	}

	r.logger.Infow("zone created successfully", "id", model.ID, "code", model.Code)
	return nil
}

func (r *ZoneRepositoryImpl) GetByID(ctx context.Context, id uint) (*zone.Zone, error) {
	var model models.ZoneModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get zone by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ZoneRepositoryImpl) GetBySID(ctx context.Context, sid string) (*zone.Zone, error) {
	var model models.ZoneModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get zone by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ZoneRepositoryImpl) Update(ctx context.Context, entity *zone.Zone) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map zone entity to model", "error", err)
		return fmt.Errorf("failed to map zone entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ZoneModel{}).
		Where("id = ?", model.ID).
		Select(
			"code", "name", "hub_id", "boundary", "pincodes", "service_days",
			"service_time_start", "service_time_end", "verticals", "is_active",
			"updated_at",
		).
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update zone", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update zone: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("zone %d not found for update", model.ID)
	}

	return nil
}

// ListActive orders by ascending ID. Resolution depends on this: overlapping
// matches go to the first configured zone.
func (r *ZoneRepositoryImpl) ListActive(ctx context.Context) ([]*zone.Zone, error) {
	var zoneModels []*models.ZoneModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&zoneModels).Error; err != nil {
		r.logger.Errorw("failed to list active zones", "error", err)
		return nil, fmt.Errorf("failed to list active zones: %w", err)
	}

	return r.mapper.ToEntities(zoneModels)
}
