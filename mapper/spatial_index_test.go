package mapper

import (
	"testing"

	"github.com/ttpr0/go-ptmapper/geo"
	"github.com/ttpr0/go-ptmapper/network"
)

// corridor of four car/bus links along the x-axis plus one rail link
// far off to the side
func _BuildCorridorNetwork() (*network.Network, []int32) {
	net := network.NewNetwork()
	net.AddNode(0, geo.Coord{0, 0})
	net.AddNode(1, geo.Coord{100, 0})
	net.AddNode(2, geo.Coord{200, 0})
	net.AddNode(3, geo.Coord{300, 0})
	net.AddNode(4, geo.Coord{400, 0})
	net.AddNode(5, geo.Coord{0, 2000})
	net.AddNode(6, geo.Coord{100, 2000})

	links := make([]int32, 5)
	links[0] = net.AddLink(network.Link{From: 0, To: 1, Length: 100, Freespeed: 10, Modes: []string{"car", "bus"}})
	links[1] = net.AddLink(network.Link{From: 1, To: 2, Length: 100, Freespeed: 10, Modes: []string{"car", "bus"}})
	links[2] = net.AddLink(network.Link{From: 2, To: 3, Length: 100, Freespeed: 10, Modes: []string{"car", "bus"}})
	links[3] = net.AddLink(network.Link{From: 3, To: 4, Length: 100, Freespeed: 10, Modes: []string{"car", "bus"}})
	links[4] = net.AddLink(network.Link{From: 5, To: 6, Length: 100, Freespeed: 20, Modes: []string{"rail"}})
	return net, links
}

func TestNearestLinks(t *testing.T) {
	net, links := _BuildCorridorNetwork()
	index := NewSpatialIndex(net)

	result := index.NearestLinks(geo.Coord{50, 10}, 20)
	if result.Length() != 1 {
		t.Fatalf("links within 20m of (50,10) = %v; want one", result)
	}
	if result[0].LinkID != links[0] || result[0].Distance != 10 {
		t.Errorf("nearest link = %v with distance %v; want link %v at 10", result[0].LinkID, result[0].Distance, links[0])
	}
}

func TestNearestLinksSorted(t *testing.T) {
	net, _ := _BuildCorridorNetwork()
	index := NewSpatialIndex(net)

	result := index.NearestLinks(geo.Coord{150, 10}, 500)
	if result.Length() != 4 {
		t.Fatalf("links within 500m of (150,10) = %v; want the four corridor links", result)
	}
	for i := 1; i < result.Length(); i++ {
		if result[i].Distance < result[i-1].Distance {
			t.Errorf("result not sorted by distance: %v", result)
		}
	}
	if result[0].LinkID != 1 {
		t.Errorf("closest link = %v; want 1", result[0].LinkID)
	}
}

// a point past a link's endpoint must still find the link when the
// endpoint is in range, even though the midpoint is not
func TestNearestLinksLongLink(t *testing.T) {
	net := network.NewNetwork()
	net.AddNode(0, geo.Coord{0, 0})
	net.AddNode(1, geo.Coord{1000, 0})
	id := net.AddLink(network.Link{From: 0, To: 1, Length: 1000, Freespeed: 10, Modes: []string{"car"}})
	index := NewSpatialIndex(net)

	result := index.NearestLinks(geo.Coord{0, 30}, 50)
	if result.Length() != 1 || result[0].LinkID != id {
		t.Fatalf("long link not found from its endpoint: %v", result)
	}
	if result[0].Distance != 30 {
		t.Errorf("distance = %v; want 30", result[0].Distance)
	}
}

func TestKNearestLinks(t *testing.T) {
	net, links := _BuildCorridorNetwork()
	index := NewSpatialIndex(net)

	result := index.KNearestLinks(geo.Coord{50, 10}, 2)
	if result.Length() != 2 {
		t.Fatalf("k-nearest returned %v links; want 2", result.Length())
	}
	if result[0].LinkID != links[0] || result[1].LinkID != links[1] {
		t.Errorf("k-nearest = %v; want links %v and %v", result, links[0], links[1])
	}
}
