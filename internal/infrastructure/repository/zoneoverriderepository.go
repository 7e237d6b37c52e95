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

type ZoneOverrideRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ZoneOverrideMapper
	logger logger.Interface
}

func NewZoneOverrideRepository(
	db *gorm.DB,
	logger logger.Interface,
) zone.OverrideRepository {
	return &ZoneOverrideRepositoryImpl{
		db:     db,
		mapper: mappers.NewZoneOverrideMapper(),
		logger: logger,
	}
}

func (r *ZoneOverrideRepositoryImpl) Create(ctx context.Context, entity *zone.Override) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map zone override entity to model", "error", err)
		return fmt.Errorf("failed to map zone override entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create zone override in database", "error", err)
		return fmt.Errorf("failed to create zone override: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set zone override ID", "error", err)
		return fmt.Errorf("failed to set zone override ID: %w", err)
	}

	r.logger.Infow("zone override created successfully",
		"id", model.ID, "target_kind", model.TargetKind, "target_id", model.TargetID, "zone_id", model.ZoneID)
	return nil
}

func (r *ZoneOverrideRepositoryImpl) GetByID(ctx context.Context, id uint) (*zone.Override, error) {
	var model models.ZoneOverrideModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get zone override by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get zone override: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ZoneOverrideRepositoryImpl) Update(ctx context.Context, entity *zone.Override) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map zone override entity to model", "error", err)
		return fmt.Errorf("failed to map zone override entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ZoneOverrideModel{}).
		Where("id = ?", model.ID).
		Select("zone_id", "reason", "expires_at", "is_active", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update zone override", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update zone override: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("zone override %d not found for update", model.ID)
	}

	return nil
}

func (r *ZoneOverrideRepositoryImpl) ListForAddress(ctx context.Context, addressID uint) ([]*zone.Override, error) {
	return r.listForTarget(ctx, string(zone.TargetAddress), addressID)
}

func (r *ZoneOverrideRepositoryImpl) ListForUser(ctx context.Context, userID uint) ([]*zone.Override, error) {
	return r.listForTarget(ctx, string(zone.TargetUser), userID)
}

// listForTarget returns active overrides newest first. Expiry is filtered by
// the caller against its as-of instant, not here.
func (r *ZoneOverrideRepositoryImpl) listForTarget(ctx context.Context, kind string, targetID uint) ([]*zone.Override, error) {
	var overrideModels []*models.ZoneOverrideModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&overrideModels).Error; err != nil {
		r.logger.Errorw("failed to list zone overrides", "target_kind", kind, "target_id", targetID, "error", err)
		return nil, fmt.Errorf("failed to list zone overrides: %w", err)
	}

	return r.mapper.ToEntities(overrideModels)
}
