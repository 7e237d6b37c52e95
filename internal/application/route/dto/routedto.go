package dto

import (
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/route"
)

// StopDTO is one stop in the visiting order.
type StopDTO struct {
	AddressID uint `json:"address_id"`
	Sequence  int  `json:"sequence"`
}

// RouteDTO is the serializable route view.
type RouteDTO struct {
	SID       string    `json:"id"`
	HubID     uint      `json:"hub_id"`
	Name      string    `json:"name"`
	DriverID  *uint     `json:"driver_id,omitempty"`
	Stops     []StopDTO `json:"stops"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToRouteDTO maps the aggregate to its DTO.
func ToRouteDTO(r *route.Route) *RouteDTO {
	if r == nil {
		return nil
	}

	stops := r.Stops()
	stopDTOs := make([]StopDTO, 0, len(stops))
	for _, s := range stops {
		stopDTOs = append(stopDTOs, StopDTO{AddressID: s.AddressID, Sequence: s.Sequence})
	}

	return &RouteDTO{
		SID:       r.SID(),
		HubID:     r.HubID(),
		Name:      r.Name(),
		DriverID:  r.DriverID(),
		Stops:     stopDTOs,
		IsActive:  r.IsActive(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
