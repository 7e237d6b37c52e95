package mappers

import (
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
)

type ZoneOverrideMapper interface {
	ToEntity(model *models.ZoneOverrideModel) (*zone.Override, error)
	ToModel(entity *zone.Override) (*models.ZoneOverrideModel, error)
	ToEntities(models []*models.ZoneOverrideModel) ([]*zone.Override, error)
}

type ZoneOverrideMapperImpl struct{}

func NewZoneOverrideMapper() ZoneOverrideMapper {
	return &ZoneOverrideMapperImpl{}
}

func (m *ZoneOverrideMapperImpl) ToEntity(model *models.ZoneOverrideModel) (*zone.Override, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := zone.ReconstructOverride(zone.OverrideReconstructParams{
		ID:         model.ID,
		SID:        model.SID,
		TargetKind: zone.OverrideTargetKind(model.TargetKind),
		TargetID:   model.TargetID,
		ZoneID:     model.ZoneID,
		Reason:     model.Reason,
		ExpiresAt:  model.ExpiresAt,
		IsActive:   model.IsActive,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct zone override entity: %w", err)
	}

	return entity, nil
}

func (m *ZoneOverrideMapperImpl) ToModel(entity *zone.Override) (*models.ZoneOverrideModel, error) {
	if entity == nil {
		return nil, nil
	}

	target := entity.Target()
	return &models.ZoneOverrideModel{
		ID:         entity.ID(),
		SID:        entity.SID(),
		TargetKind: string(target.Kind()),
		TargetID:   target.ID(),
		ZoneID:     entity.ZoneID(),
		Reason:     entity.Reason(),
		ExpiresAt:  entity.ExpiresAt(),
		IsActive:   entity.IsActive(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *ZoneOverrideMapperImpl) ToEntities(overrideModels []*models.ZoneOverrideModel) ([]*zone.Override, error) {
	entities := make([]*zone.Override, 0, len(overrideModels))
	for _, model := range overrideModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
