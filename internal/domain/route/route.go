package route

import (
	"fmt"
	"time"

	sharedid "github.com/freshvale-inc/freshvale/internal/shared/id"
)

// MoveDirection selects the neighbor a stop is swapped with.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// Stop is one address in a driver's ordered visiting sequence.
type Stop struct {
	AddressID uint
	Sequence  int
}

// Route is a hub-owned, strictly-ordered list of delivery stops. The central
// invariant: after any successful mutation the stop sequence numbers are
// exactly {1..N}, dense and duplicate-free.
type Route struct {
	id        uint
	sid       string
	hubID     uint
	name      string
	driverID  *uint
	stops     []Stop
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewRoute creates an empty route for a hub.
func NewRoute(hubID uint, name string, asOf time.Time) (*Route, error) {
	if hubID == 0 {
		return nil, fmt.Errorf("hub ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("route name is required")
	}

	return &Route{
		sid:       sharedid.MustGenerateWithPrefix(sharedid.PrefixRoute, sharedid.DefaultLength),
		hubID:     hubID,
		name:      name,
		isActive:  true,
		createdAt: asOf,
		updatedAt: asOf,
	}, nil
}

// RouteReconstructParams carries persisted route fields. Stops must arrive
// ordered by sequence.
type RouteReconstructParams struct {
	ID        uint
	SID       string
	HubID     uint
	Name      string
	DriverID  *uint
	Stops     []Stop
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reconstruct rebuilds a route from persistence, verifying sequence density.
func Reconstruct(p RouteReconstructParams) (*Route, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("route ID cannot be zero")
	}
	if err := checkDense(p.Stops); err != nil {
		return nil, fmt.Errorf("persisted route %d violates sequence invariant: %w", p.ID, err)
	}

	return &Route{
		id:        p.ID,
		sid:       p.SID,
		hubID:     p.HubID,
		name:      p.Name,
		driverID:  p.DriverID,
		stops:     append([]Stop(nil), p.Stops...),
		isActive:  p.IsActive,
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
	}, nil
}

func (r *Route) ID() uint             { return r.id }
func (r *Route) SID() string          { return r.sid }
func (r *Route) HubID() uint          { return r.hubID }
func (r *Route) Name() string         { return r.name }
func (r *Route) DriverID() *uint      { return r.driverID }
func (r *Route) IsActive() bool       { return r.isActive }
func (r *Route) CreatedAt() time.Time { return r.createdAt }
func (r *Route) UpdatedAt() time.Time { return r.updatedAt }

// Stops returns a copy of the ordered stop list.
func (r *Route) Stops() []Stop {
	return append([]Stop(nil), r.stops...)
}

// SetID sets the route ID (only for persistence layer use)
func (r *Route) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("route ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("route ID cannot be zero")
	}
	r.id = id
	return nil
}

// AssignDriver hands the route to a driver.
func (r *Route) AssignDriver(driverID uint, asOf time.Time) error {
	if driverID == 0 {
		return fmt.Errorf("driver ID is required")
	}
	r.driverID = &driverID
	r.updatedAt = asOf
	return nil
}

// HasStop reports whether the address is already on the route.
func (r *Route) HasStop(addressID uint) bool {
	for _, s := range r.stops {
		if s.AddressID == addressID {
			return true
		}
	}
	return false
}

// AddStop appends the address at the end of the sequence. Adding an address
// already present is a no-op.
func (r *Route) AddStop(addressID uint, asOf time.Time) error {
	if addressID == 0 {
		return fmt.Errorf("address ID is required")
	}
	if r.HasStop(addressID) {
		return nil
	}

	r.stops = append(r.stops, Stop{AddressID: addressID, Sequence: len(r.stops) + 1})
	r.updatedAt = asOf
	return nil
}

// RemoveStop removes the address and re-densifies the remaining sequence
// numbers. Removing an absent address reports found=false without error.
func (r *Route) RemoveStop(addressID uint, asOf time.Time) (found bool) {
	for i, s := range r.stops {
		if s.AddressID == addressID {
			r.stops = append(r.stops[:i], r.stops[i+1:]...)
			r.renumber()
			r.updatedAt = asOf
			return true
		}
	}
	return false
}

// MoveStop swaps the stop at the zero-based index with its neighbor in the
// given direction. Moving past either boundary is a no-op.
func (r *Route) MoveStop(index int, direction MoveDirection, asOf time.Time) error {
	if index < 0 || index >= len(r.stops) {
		return fmt.Errorf("stop index %d out of range", index)
	}

	var neighbor int
	switch direction {
	case MoveUp:
		neighbor = index - 1
	case MoveDown:
		neighbor = index + 1
	default:
		return fmt.Errorf("invalid move direction: %s", direction)
	}

	if neighbor < 0 || neighbor >= len(r.stops) {
		return nil
	}

	r.stops[index].AddressID, r.stops[neighbor].AddressID = r.stops[neighbor].AddressID, r.stops[index].AddressID
	r.updatedAt = asOf
	return nil
}

// Reorder replaces the entire stop list with the submitted address order.
// The submission must contain no duplicates; position determines sequence.
// Validation that every ID resolves to a known address is the caller's
// concern, since the aggregate cannot see the address table.
func (r *Route) Reorder(addressIDs []uint, asOf time.Time) error {
	seen := make(map[uint]bool, len(addressIDs))
	for _, id := range addressIDs {
		if id == 0 {
			return fmt.Errorf("address ID cannot be zero")
		}
		if seen[id] {
			return fmt.Errorf("duplicate address ID %d in sequence", id)
		}
		seen[id] = true
	}

	stops := make([]Stop, len(addressIDs))
	for i, id := range addressIDs {
		stops[i] = Stop{AddressID: id, Sequence: i + 1}
	}

	r.stops = stops
	r.updatedAt = asOf
	return nil
}

// Validate checks the sequence density invariant.
func (r *Route) Validate() error {
	return checkDense(r.stops)
}

func (r *Route) renumber() {
	for i := range r.stops {
		r.stops[i].Sequence = i + 1
	}
}

// checkDense verifies the multiset of sequence numbers equals {1..N} in
// order, with no gaps or duplicates, and no repeated addresses.
func checkDense(stops []Stop) error {
	seen := make(map[uint]bool, len(stops))
	for i, s := range stops {
		if s.Sequence != i+1 {
			return fmt.Errorf("sequence gap at position %d: got %d, want %d", i, s.Sequence, i+1)
		}
		if seen[s.AddressID] {
			return fmt.Errorf("duplicate address %d", s.AddressID)
		}
		seen[s.AddressID] = true
	}
	return nil
}
