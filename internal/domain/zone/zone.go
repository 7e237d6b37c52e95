package zone

import (
	"fmt"
	"strings"
	"time"

	sharedid "github.com/freshvale-inc/freshvale/internal/shared/id"
)

// VerticalBoth marks a zone as serving every business line.
const VerticalBoth = "both"

// Zone is a geographic/administrative delivery area: a hub-owned region with
// its own service days, daily service window, and serviceable verticals.
// Matching is by pincode membership or point-in-polygon against the boundary.
type Zone struct {
	id               uint
	sid              string
	code             string
	name             string
	hubID            uint
	boundary         Polygon
	pincodes         map[string]bool
	serviceDays      map[time.Weekday]bool
	serviceTimeStart int // minutes from midnight
	serviceTimeEnd   int
	verticals        map[string]bool
	isActive         bool
	createdAt        time.Time
	updatedAt        time.Time
}

// NewZone creates a zone. Pincodes are trimmed and deduplicated; the boundary
// polygon may be empty for pincode-only zones. The service window end must
// not precede its start.
func NewZone(
	code, name string,
	hubID uint,
	boundary Polygon,
	pincodes []string,
	serviceDays []time.Weekday,
	serviceTimeStart, serviceTimeEnd int,
	verticals []string,
	asOf time.Time,
) (*Zone, error) {
	if code == "" {
		return nil, fmt.Errorf("zone code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("zone name is required")
	}
	if hubID == 0 {
		return nil, fmt.Errorf("hub ID is required")
	}
	if serviceTimeEnd < serviceTimeStart {
		return nil, fmt.Errorf("service time end must not precede start")
	}
	if len(verticals) == 0 {
		return nil, fmt.Errorf("at least one vertical is required")
	}

	z := &Zone{
		sid:              sharedid.MustGenerateWithPrefix(sharedid.PrefixZone, sharedid.DefaultLength),
		code:             code,
		name:             name,
		hubID:            hubID,
		boundary:         boundary,
		pincodes:         make(map[string]bool),
		serviceDays:      make(map[time.Weekday]bool),
		serviceTimeStart: serviceTimeStart,
		serviceTimeEnd:   serviceTimeEnd,
		verticals:        make(map[string]bool),
		isActive:         true,
		createdAt:        asOf,
		updatedAt:        asOf,
	}

	for _, pin := range pincodes {
		pin = strings.TrimSpace(pin)
		if pin != "" {
			z.pincodes[pin] = true
		}
	}
	for _, d := range serviceDays {
		z.serviceDays[d] = true
	}
	for _, v := range verticals {
		z.verticals[v] = true
	}

	return z, nil
}

// ZoneReconstructParams carries persisted zone fields.
type ZoneReconstructParams struct {
	ID               uint
	SID              string
	Code             string
	Name             string
	HubID            uint
	Boundary         Polygon
	Pincodes         []string
	ServiceDays      []time.Weekday
	ServiceTimeStart int
	ServiceTimeEnd   int
	Verticals        []string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructZone rebuilds a zone from persistence.
func ReconstructZone(p ZoneReconstructParams) (*Zone, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("zone ID cannot be zero")
	}

	z := &Zone{
		id:               p.ID,
		sid:              p.SID,
		code:             p.Code,
		name:             p.Name,
		hubID:            p.HubID,
		boundary:         p.Boundary,
		pincodes:         make(map[string]bool, len(p.Pincodes)),
		serviceDays:      make(map[time.Weekday]bool, len(p.ServiceDays)),
		serviceTimeStart: p.ServiceTimeStart,
		serviceTimeEnd:   p.ServiceTimeEnd,
		verticals:        make(map[string]bool, len(p.Verticals)),
		isActive:         p.IsActive,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
	for _, pin := range p.Pincodes {
		pin = strings.TrimSpace(pin)
		if pin != "" {
			z.pincodes[pin] = true
		}
	}
	for _, d := range p.ServiceDays {
		z.serviceDays[d] = true
	}
	for _, v := range p.Verticals {
		z.verticals[v] = true
	}
	return z, nil
}

func (z *Zone) ID() uint              { return z.id }
func (z *Zone) SID() string           { return z.sid }
func (z *Zone) Code() string          { return z.code }
func (z *Zone) Name() string          { return z.name }
func (z *Zone) HubID() uint           { return z.hubID }
func (z *Zone) Boundary() Polygon     { return z.boundary }
func (z *Zone) ServiceTimeStart() int { return z.serviceTimeStart }
func (z *Zone) ServiceTimeEnd() int   { return z.serviceTimeEnd }
func (z *Zone) IsActive() bool        { return z.isActive }
func (z *Zone) CreatedAt() time.Time  { return z.createdAt }
func (z *Zone) UpdatedAt() time.Time  { return z.updatedAt }

// SetID sets the zone ID (only for persistence layer use)
func (z *Zone) SetID(id uint) error {
	if z.id != 0 {
		return fmt.Errorf("zone ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("zone ID cannot be zero")
	}
	z.id = id
	return nil
}

// Pincodes returns the deduplicated pincode set as a sorted-insensitive slice.
func (z *Zone) Pincodes() []string {
	out := make([]string, 0, len(z.pincodes))
	for pin := range z.pincodes {
		out = append(out, pin)
	}
	return out
}

// ServiceDays returns the weekday mask as a slice.
func (z *Zone) ServiceDays() []time.Weekday {
	out := make([]time.Weekday, 0, len(z.serviceDays))
	for d := range z.serviceDays {
		out = append(out, d)
	}
	return out
}

// Verticals returns the served business lines.
func (z *Zone) Verticals() []string {
	out := make([]string, 0, len(z.verticals))
	for v := range z.verticals {
		out = append(out, v)
	}
	return out
}

// ServesVertical reports whether the zone serves the business line. A zone
// flagged "both" serves every vertical.
func (z *Zone) ServesVertical(vertical string) bool {
	return z.verticals[vertical] || z.verticals[VerticalBoth]
}

// ServesWeekday reports whether the weekday is in the zone's service mask.
// A day outside the mask is never a delivery day for subscriptions bound to
// the zone.
func (z *Zone) ServesWeekday(day time.Weekday) bool {
	return z.serviceDays[day]
}

// HasPincode reports pincode membership after trimming.
func (z *Zone) HasPincode(pincode string) bool {
	return z.pincodes[strings.TrimSpace(pincode)]
}

// Matches applies the geometric/pincode predicate of zone resolution: the
// zone must be active and serve the vertical, and either the pincode is in
// the zone's set or the coordinate falls inside the boundary polygon.
func (z *Zone) Matches(pincode string, coord *Coordinate, vertical string) bool {
	if !z.isActive {
		return false
	}
	if !z.ServesVertical(vertical) {
		return false
	}
	if z.HasPincode(pincode) {
		return true
	}
	if coord != nil && z.boundary.Contains(*coord) {
		return true
	}
	return false
}

// Activate marks the zone as matchable.
func (z *Zone) Activate(asOf time.Time) {
	z.isActive = true
	z.updatedAt = asOf
}

// Deactivate removes the zone from matching without deleting it.
func (z *Zone) Deactivate(asOf time.Time) {
	z.isActive = false
	z.updatedAt = asOf
}
