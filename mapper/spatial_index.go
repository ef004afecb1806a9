package mapper

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
	"github.com/ttpr0/go-ptmapper/geo"
	"github.com/ttpr0/go-ptmapper/network"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// spatial link index
//*******************************************

type _LinkItem struct {
	id    int32
	point orb.Point
}

func (self _LinkItem) Point() orb.Point {
	return self.point
}

type LinkDistance struct {
	LinkID   int32
	Distance float64
}

// Quadtree over link midpoints. Candidate midpoints are refined with the
// exact point-to-segment distance, so long links are still found when only
// part of them lies inside the search radius.
// Read-only after construction, safe for concurrent queries.
type SpatialIndex struct {
	net       *network.Network
	tree      *quadtree.Quadtree
	max_reach float64
}

func NewSpatialIndex(net *network.Network) *SpatialIndex {
	items := NewList[_LinkItem](net.LinkCount())
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{0, 0}}
	first := true
	max_reach := 0.0
	net.ForEachLink(func(id int32, link network.Link) {
		geom := net.GetLinkGeometry(id)
		mid := _Midpoint(geom)
		point := mid.ToPoint()
		if first {
			bound = orb.Bound{Min: point, Max: point}
			first = false
		} else {
			bound = bound.Extend(point)
		}
		for _, c := range geom {
			d := geo.Distance(mid, c)
			if d > max_reach {
				max_reach = d
			}
		}
		items.Add(_LinkItem{id: id, point: point})
	})

	tree := quadtree.New(bound.Pad(1.0))
	for _, item := range items {
		tree.Add(item)
	}
	return &SpatialIndex{
		net:       net,
		tree:      tree,
		max_reach: max_reach,
	}
}

// Links within radius of the coordinate, ascending by exact
// point-to-segment distance.
func (self *SpatialIndex) NearestLinks(loc geo.Coord, radius float64) List[LinkDistance] {
	point := loc.ToPoint()
	pad := radius + self.max_reach
	bound := orb.Bound{
		Min: orb.Point{point[0] - pad, point[1] - pad},
		Max: orb.Point{point[0] + pad, point[1] + pad},
	}
	items := self.tree.InBound(nil, bound)

	result := NewList[LinkDistance](len(items))
	for _, item := range items {
		id := item.(_LinkItem).id
		dist := self._ExactDistance(loc, id)
		if dist <= radius {
			result.Add(LinkDistance{LinkID: id, Distance: dist})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		return result[i].LinkID < result[j].LinkID
	})
	return result
}

// The k closest links to the coordinate.
func (self *SpatialIndex) KNearestLinks(loc geo.Coord, k int) List[LinkDistance] {
	radius := self.max_reach + 100
	for {
		result := self.NearestLinks(loc, radius)
		if result.Length() >= k || result.Length() >= self.net.LinkCount() {
			if result.Length() > k {
				result = result[:k]
			}
			return result
		}
		radius *= 2
	}
}

func (self *SpatialIndex) _ExactDistance(loc geo.Coord, link int32) float64 {
	geom := self.net.GetLinkGeometry(link)
	line := make(orb.LineString, len(geom))
	for i, c := range geom {
		line[i] = c.ToPoint()
	}
	return planar.DistanceFrom(line, loc.ToPoint())
}

func _Midpoint(geom geo.CoordArray) geo.Coord {
	a := geom[0]
	b := geom[len(geom)-1]
	return geo.Coord{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}
