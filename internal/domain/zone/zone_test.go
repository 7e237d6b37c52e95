package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZone(t *testing.T, pincodes []string, boundary Polygon, verticals []string) *Zone {
	t.Helper()

	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	z, err := NewZone("Z-EAST", "East Hub Zone", 1, boundary, pincodes,
		[]time.Weekday{time.Monday, time.Wednesday, time.Friday},
		6*60, 11*60, verticals, asOf)
	require.NoError(t, err)
	require.NoError(t, z.SetID(1))
	return z
}

func TestNewZone_Validation(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewZone("", "name", 1, nil, nil, nil, 0, 0, []string{"grocery"}, asOf)
	assert.Error(t, err)

	_, err = NewZone("Z1", "name", 0, nil, nil, nil, 0, 0, []string{"grocery"}, asOf)
	assert.Error(t, err)

	_, err = NewZone("Z1", "name", 1, nil, nil, nil, 600, 500, []string{"grocery"}, asOf)
	assert.Error(t, err)

	_, err = NewZone("Z1", "name", 1, nil, nil, nil, 0, 0, nil, asOf)
	assert.Error(t, err)
}

func TestZoneMatches_Pincode(t *testing.T) {
	z := newTestZone(t, []string{"560001", " 560002 "}, nil, []string{"grocery"})

	assert.True(t, z.Matches("560001", nil, "grocery"))
	// Pincodes are trimmed on both sides.
	assert.True(t, z.Matches(" 560002", nil, "grocery"))
	assert.False(t, z.Matches("560099", nil, "grocery"))
}

func TestZoneMatches_Polygon(t *testing.T) {
	boundary := Polygon{
		{Lat: 12.90, Lng: 77.55},
		{Lat: 12.90, Lng: 77.65},
		{Lat: 13.00, Lng: 77.65},
		{Lat: 13.00, Lng: 77.55},
	}
	z := newTestZone(t, nil, boundary, []string{"grocery"})

	inside := Coordinate{Lat: 12.95, Lng: 77.60}
	outside := Coordinate{Lat: 12.80, Lng: 77.60}

	assert.True(t, z.Matches("", &inside, "grocery"))
	assert.False(t, z.Matches("", &outside, "grocery"))
	// Missing coordinate means no geometric match.
	assert.False(t, z.Matches("", nil, "grocery"))
}

func TestZoneMatches_Vertical(t *testing.T) {
	z := newTestZone(t, []string{"560001"}, nil, []string{"grocery"})
	assert.True(t, z.Matches("560001", nil, "grocery"))
	assert.False(t, z.Matches("560001", nil, "daily_fresh"))

	both := newTestZone(t, []string{"560001"}, nil, []string{VerticalBoth})
	assert.True(t, both.Matches("560001", nil, "grocery"))
	assert.True(t, both.Matches("560001", nil, "daily_fresh"))
}

func TestZoneMatches_InactiveNeverMatches(t *testing.T) {
	z := newTestZone(t, []string{"560001"}, nil, []string{"grocery"})
	z.Deactivate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.False(t, z.Matches("560001", nil, "grocery"))

	z.Activate(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	assert.True(t, z.Matches("560001", nil, "grocery"))
}

func TestZoneServesWeekday(t *testing.T) {
	z := newTestZone(t, []string{"560001"}, nil, []string{"grocery"})

	assert.True(t, z.ServesWeekday(time.Monday))
	assert.True(t, z.ServesWeekday(time.Wednesday))
	assert.True(t, z.ServesWeekday(time.Friday))
	assert.False(t, z.ServesWeekday(time.Sunday))
	assert.False(t, z.ServesWeekday(time.Tuesday))
}
