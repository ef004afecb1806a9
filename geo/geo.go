package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

//*******************************************
// coordinates
//*******************************************

// Projected planar coordinate in meters.
type Coord [2]float32

type CoordArray []Coord

func (self Coord) ToPoint() orb.Point {
	return orb.Point{float64(self[0]), float64(self[1])}
}

func FromPoint(point orb.Point) Coord {
	return Coord{float32(point[0]), float32(point[1])}
}

//*******************************************
// distances
//*******************************************

func Distance(a, b Coord) float64 {
	return planar.Distance(a.ToPoint(), b.ToPoint())
}

// Distance from point to the segment between a and b.
func DistanceToSegment(point, a, b Coord) float64 {
	segment := orb.LineString{a.ToPoint(), b.ToPoint()}
	return planar.DistanceFrom(segment, point.ToPoint())
}

func PolylineLength(coords CoordArray) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += Distance(coords[i-1], coords[i])
	}
	return length
}

//*******************************************
// projection
//*******************************************

const earth_radius = 6371000.0

// Equirectangular projection centered on a reference coordinate.
// Good enough for the regional extents a transit network covers.
type Projection struct {
	Lon0 float64 `json:"lon0"`
	Lat0 float64 `json:"lat0"`
}

func NewProjection(lon0, lat0 float64) Projection {
	return Projection{Lon0: lon0, Lat0: lat0}
}

func (self Projection) Project(lon, lat float64) Coord {
	x := earth_radius * (lon - self.Lon0) * math.Pi / 180 * math.Cos(self.Lat0*math.Pi/180)
	y := earth_radius * (lat - self.Lat0) * math.Pi / 180
	return Coord{float32(x), float32(y)}
}
