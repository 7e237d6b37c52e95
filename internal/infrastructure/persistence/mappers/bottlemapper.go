package mappers

import (
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/domain/bottle"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
)

type BottleMapper interface {
	ToEntity(model *models.BottleModel) (*bottle.Bottle, error)
	ToModel(entity *bottle.Bottle) *models.BottleModel
	ToEntities(models []*models.BottleModel) ([]*bottle.Bottle, error)
	ToLogModels(entity *bottle.Bottle) []*models.BottleLogModel
	ToLogs(models []*models.BottleLogModel) []bottle.Log
}

type BottleMapperImpl struct{}

func NewBottleMapper() BottleMapper {
	return &BottleMapperImpl{}
}

func (m *BottleMapperImpl) ToEntity(model *models.BottleModel) (*bottle.Bottle, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := bottle.Reconstruct(bottle.BottleReconstructParams{
		ID:            model.ID,
		SID:           model.SID,
		Status:        bottle.Status(model.Status),
		DepositAmount: model.DepositAmount,
		UserID:        model.UserID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct bottle entity: %w", err)
	}

	return entity, nil
}

func (m *BottleMapperImpl) ToModel(entity *bottle.Bottle) *models.BottleModel {
	if entity == nil {
		return nil
	}

	return &models.BottleModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		Status:        string(entity.Status()),
		DepositAmount: entity.DepositAmount(),
		UserID:        entity.UserID(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *BottleMapperImpl) ToEntities(bottleModels []*models.BottleModel) ([]*bottle.Bottle, error) {
	entities := make([]*bottle.Bottle, 0, len(bottleModels))
	for _, model := range bottleModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *BottleMapperImpl) ToLogModels(entity *bottle.Bottle) []*models.BottleLogModel {
	logs := entity.PendingLogs()
	logModels := make([]*models.BottleLogModel, 0, len(logs))
	for _, l := range logs {
		logModels = append(logModels, &models.BottleLogModel{
			BottleID:      l.BottleID,
			Action:        string(l.Action),
			Condition:     l.Condition,
			DepositAmount: l.DepositAmount,
			RefundAmount:  l.RefundAmount,
			OccurredAt:    l.OccurredAt,
		})
	}
	return logModels
}

func (m *BottleMapperImpl) ToLogs(logModels []*models.BottleLogModel) []bottle.Log {
	logs := make([]bottle.Log, 0, len(logModels))
	for _, l := range logModels {
		logs = append(logs, bottle.Log{
			BottleID:      l.BottleID,
			Action:        bottle.Status(l.Action),
			Condition:     l.Condition,
			DepositAmount: l.DepositAmount,
			RefundAmount:  l.RefundAmount,
			OccurredAt:    l.OccurredAt,
		})
	}
	return logs
}
