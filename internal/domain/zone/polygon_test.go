package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonContains(t *testing.T) {
	// Unit square around the origin.
	square := Polygon{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}

	tests := []struct {
		name   string
		point  Coordinate
		inside bool
	}{
		{"center", Coordinate{Lat: 5, Lng: 5}, true},
		{"near edge inside", Coordinate{Lat: 0.1, Lng: 0.1}, true},
		{"outside north", Coordinate{Lat: 11, Lng: 5}, false},
		{"outside west", Coordinate{Lat: 5, Lng: -1}, false},
		{"far away", Coordinate{Lat: 100, Lng: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, square.Contains(tt.point))
		})
	}
}

func TestPolygonContains_ConcaveShape(t *testing.T) {
	// L-shape: the notch in the upper right is outside.
	lShape := Polygon{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 5, Lng: 10},
		{Lat: 5, Lng: 5},
		{Lat: 10, Lng: 5},
		{Lat: 10, Lng: 0},
	}

	assert.True(t, lShape.Contains(Coordinate{Lat: 2, Lng: 2}))
	assert.True(t, lShape.Contains(Coordinate{Lat: 8, Lng: 2}))
	assert.True(t, lShape.Contains(Coordinate{Lat: 2, Lng: 8}))
	assert.False(t, lShape.Contains(Coordinate{Lat: 8, Lng: 8}))
}

func TestPolygonContains_Degenerate(t *testing.T) {
	assert.False(t, Polygon{}.Contains(Coordinate{Lat: 1, Lng: 1}))
	assert.False(t, Polygon{{Lat: 0, Lng: 0}}.Contains(Coordinate{Lat: 0, Lng: 0}))
	assert.False(t, Polygon{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}.Contains(Coordinate{Lat: 0.5, Lng: 0.5}))
}
