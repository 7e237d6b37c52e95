package zone

// Coordinate is one vertex of a zone boundary polygon.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is an ordered list of boundary coordinates. An empty polygon never
// matches geometrically; pincode matching alone governs such zones.
type Polygon []Coordinate

// Contains runs a standard ray-casting test for the point against the
// polygon. Vertices are taken in order; the closing edge from the last vertex
// back to the first is implied.
func (p Polygon) Contains(point Coordinate) bool {
	if len(p) < 3 {
		return false
	}

	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		pi, pj := p[i], p[j]
		if (pi.Lat > point.Lat) != (pj.Lat > point.Lat) {
			intersectLng := (pj.Lng-pi.Lng)*(point.Lat-pi.Lat)/(pj.Lat-pi.Lat) + pi.Lng
			if point.Lng < intersectLng {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
