package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/domain/bottle"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/mappers"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type BottleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BottleMapper
	logger logger.Interface
}

func NewBottleRepository(
	db *gorm.DB,
	logger logger.Interface,
) bottle.Repository {
	return &BottleRepositoryImpl{
		db:     db,
		mapper: mappers.NewBottleMapper(),
		logger: logger,
	}
}

func (r *BottleRepositoryImpl) Create(ctx context.Context, entity *bottle.Bottle) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create bottle in database", "error", err)
		return fmt.Errorf("failed to create bottle: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set bottle ID", "error", err)
		return fmt.Errorf("failed to set bottle ID: %w", err)
	}

	return r.appendPendingLogs(ctx, entity)
}

func (r *BottleRepositoryImpl) GetByID(ctx context.Context, id uint) (*bottle.Bottle, error) {
	var model models.BottleModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get bottle by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get bottle: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BottleRepositoryImpl) GetBySID(ctx context.Context, sid string) (*bottle.Bottle, error) {
	var model models.BottleModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get bottle by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get bottle: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BottleRepositoryImpl) Update(ctx context.Context, entity *bottle.Bottle) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BottleModel{}).
		Where("id = ?", model.ID).
		Select("status", "user_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update bottle", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update bottle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bottle %d not found for update", model.ID)
	}

	return r.appendPendingLogs(ctx, entity)
}

// FindAvailable locks the returned rows so two concurrent issues cannot hand
// out the same bottle.
func (r *BottleRepositoryImpl) FindAvailable(ctx context.Context, limit int) ([]*bottle.Bottle, error) {
	var bottleModels []*models.BottleModel

	query := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate()).
		Where("status = ?", string(bottle.StatusAvailable)).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&bottleModels).Error; err != nil {
		r.logger.Errorw("failed to find available bottles", "error", err)
		return nil, fmt.Errorf("failed to find available bottles: %w", err)
	}

	return r.mapper.ToEntities(bottleModels)
}

func (r *BottleRepositoryImpl) ListLogs(ctx context.Context, bottleID uint) ([]bottle.Log, error) {
	var logModels []*models.BottleLogModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("bottle_id = ?", bottleID).
		Order("id ASC").
		Find(&logModels).Error; err != nil {
		r.logger.Errorw("failed to list bottle logs", "bottle_id", bottleID, "error", err)
		return nil, fmt.Errorf("failed to list bottle logs: %w", err)
	}

	return r.mapper.ToLogs(logModels), nil
}

// appendPendingLogs inserts ledger rows accumulated on the aggregate since it
// was loaded. The ledger is insert-only; rows are never updated or deleted.
func (r *BottleRepositoryImpl) appendPendingLogs(ctx context.Context, entity *bottle.Bottle) error {
	logModels := r.mapper.ToLogModels(entity)
	if len(logModels) == 0 {
		return nil
	}

	for _, l := range logModels {
		if l.BottleID == 0 {
			l.BottleID = entity.ID()
		}
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&logModels).Error; err != nil {
		r.logger.Errorw("failed to append bottle logs", "bottle_id", entity.ID(), "error", err)
		return fmt.Errorf("failed to append bottle logs: %w", err)
	}

	entity.ClearPendingLogs()
	return nil
}
