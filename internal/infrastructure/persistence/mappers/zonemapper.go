package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
)

type ZoneMapper interface {
	ToEntity(model *models.ZoneModel) (*zone.Zone, error)
	ToModel(entity *zone.Zone) (*models.ZoneModel, error)
	ToEntities(models []*models.ZoneModel) ([]*zone.Zone, error)
}

type ZoneMapperImpl struct{}

func NewZoneMapper() ZoneMapper {
	return &ZoneMapperImpl{}
}

// coordinateRow is the JSON shape of one boundary vertex.
type coordinateRow struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (m *ZoneMapperImpl) ToEntity(model *models.ZoneModel) (*zone.Zone, error) {
	if model == nil {
		return nil, nil
	}

	var boundaryRows []coordinateRow
	if model.Boundary != nil {
		if err := json.Unmarshal(model.Boundary, &boundaryRows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zone boundary: %w", err)
		}
	}
	boundary := make(zone.Polygon, 0, len(boundaryRows))
	for _, row := range boundaryRows {
		boundary = append(boundary, zone.Coordinate{Lat: row.Lat, Lng: row.Lng})
	}

	var pincodes []string
	if model.Pincodes != nil {
		if err := json.Unmarshal(model.Pincodes, &pincodes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zone pincodes: %w", err)
		}
	}

	var dayInts []int
	if model.ServiceDays != nil {
		if err := json.Unmarshal(model.ServiceDays, &dayInts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zone service days: %w", err)
		}
	}
	serviceDays := make([]time.Weekday, 0, len(dayInts))
	for _, d := range dayInts {
		serviceDays = append(serviceDays, time.Weekday(d))
	}

	var verticals []string
	if model.Verticals != nil {
		if err := json.Unmarshal(model.Verticals, &verticals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zone verticals: %w", err)
		}
	}

	entity, err := zone.ReconstructZone(zone.ZoneReconstructParams{
		ID:               model.ID,
		SID:              model.SID,
		Code:             model.Code,
		Name:             model.Name,
		HubID:            model.HubID,
		Boundary:         boundary,
		Pincodes:         pincodes,
		ServiceDays:      serviceDays,
		ServiceTimeStart: model.ServiceTimeStart,
		ServiceTimeEnd:   model.ServiceTimeEnd,
		Verticals:        verticals,
		IsActive:         model.IsActive,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct zone entity: %w", err)
	}

	return entity, nil
}

func (m *ZoneMapperImpl) ToModel(entity *zone.Zone) (*models.ZoneModel, error) {
	if entity == nil {
		return nil, nil
	}

	boundary := entity.Boundary()
	boundaryRows := make([]coordinateRow, 0, len(boundary))
	for _, c := range boundary {
		boundaryRows = append(boundaryRows, coordinateRow{Lat: c.Lat, Lng: c.Lng})
	}
	boundaryJSON, err := json.Marshal(boundaryRows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zone boundary: %w", err)
	}

	pincodesJSON, err := json.Marshal(entity.Pincodes())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zone pincodes: %w", err)
	}

	days := entity.ServiceDays()
	dayInts := make([]int, 0, len(days))
	for _, d := range days {
		dayInts = append(dayInts, int(d))
	}
	daysJSON, err := json.Marshal(dayInts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zone service days: %w", err)
	}

	verticalsJSON, err := json.Marshal(entity.Verticals())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zone verticals: %w", err)
	}

	return &models.ZoneModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		Code:             entity.Code(),
		Name:             entity.Name(),
		HubID:            entity.HubID(),
		Boundary:         boundaryJSON,
		Pincodes:         pincodesJSON,
		ServiceDays:      daysJSON,
		ServiceTimeStart: entity.ServiceTimeStart(),
		ServiceTimeEnd:   entity.ServiceTimeEnd(),
		Verticals:        verticalsJSON,
		IsActive:         entity.IsActive(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *ZoneMapperImpl) ToEntities(zoneModels []*models.ZoneModel) ([]*zone.Zone, error) {
	entities := make([]*zone.Zone, 0, len(zoneModels))
	for _, model := range zoneModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
