package mappers

import (
	"fmt"
	"sort"

	"github.com/freshvale-inc/freshvale/internal/domain/route"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
)

type RouteMapper interface {
	ToEntity(model *models.RouteModel, stops []*models.RouteStopModel) (*route.Route, error)
	ToModel(entity *route.Route) *models.RouteModel
	ToStopModels(entity *route.Route) []*models.RouteStopModel
}

type RouteMapperImpl struct{}

func NewRouteMapper() RouteMapper {
	return &RouteMapperImpl{}
}

func (m *RouteMapperImpl) ToEntity(model *models.RouteModel, stopModels []*models.RouteStopModel) (*route.Route, error) {
	if model == nil {
		return nil, nil
	}

	stops := make([]route.Stop, 0, len(stopModels))
	for _, s := range stopModels {
		stops = append(stops, route.Stop{AddressID: s.AddressID, Sequence: s.Sequence})
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Sequence < stops[j].Sequence })

	entity, err := route.Reconstruct(route.RouteReconstructParams{
		ID:        model.ID,
		SID:       model.SID,
		HubID:     model.HubID,
		Name:      model.Name,
		DriverID:  model.DriverID,
		Stops:     stops,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct route entity: %w", err)
	}

	return entity, nil
}

func (m *RouteMapperImpl) ToModel(entity *route.Route) *models.RouteModel {
	if entity == nil {
		return nil
	}

	return &models.RouteModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		HubID:     entity.HubID(),
		Name:      entity.Name(),
		DriverID:  entity.DriverID(),
		IsActive:  entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *RouteMapperImpl) ToStopModels(entity *route.Route) []*models.RouteStopModel {
	stops := entity.Stops()
	stopModels := make([]*models.RouteStopModel, 0, len(stops))
	for _, s := range stops {
		stopModels = append(stopModels, &models.RouteStopModel{
			RouteID:   entity.ID(),
			AddressID: s.AddressID,
			Sequence:  s.Sequence,
		})
	}
	return stopModels
}
