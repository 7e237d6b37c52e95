package dto

import (
	"github.com/freshvale-inc/freshvale/internal/domain/zone"
)

// ZoneDTO is the serializable zone view returned by serviceability checks.
type ZoneDTO struct {
	SID              string   `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	ServiceDays      []int    `json:"service_days"`
	ServiceTimeStart int      `json:"service_time_start"`
	ServiceTimeEnd   int      `json:"service_time_end"`
	Verticals        []string `json:"verticals"`
}

// ResolutionDTO reports the outcome of a serviceability check. Not being
// serviceable is a normal outcome, not an error.
type ResolutionDTO struct {
	Serviceable bool     `json:"serviceable"`
	Zone        *ZoneDTO `json:"zone,omitempty"`
	MatchedBy   string   `json:"matched_by,omitempty"`
	OverrideSID string   `json:"override_id,omitempty"`
}

// ToZoneDTO maps the domain zone to its DTO.
func ToZoneDTO(z *zone.Zone) *ZoneDTO {
	if z == nil {
		return nil
	}

	days := z.ServiceDays()
	dayInts := make([]int, 0, len(days))
	for _, d := range days {
		dayInts = append(dayInts, int(d))
	}

	return &ZoneDTO{
		SID:              z.SID(),
		Code:             z.Code(),
		Name:             z.Name(),
		ServiceDays:      dayInts,
		ServiceTimeStart: z.ServiceTimeStart(),
		ServiceTimeEnd:   z.ServiceTimeEnd(),
		Verticals:        z.Verticals(),
	}
}
