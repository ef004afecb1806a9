package parser

import (
	"math"
	"testing"

	. "github.com/ttpr0/go-ptmapper/util"
)

func TestCreateNetwork(t *testing.T) {
	// two junction nodes roughly 740m apart along a meridian
	osm_nodes := Dict[int64, TempNode]{
		1: {Lon: 7.0, Lat: 51.0, Count: 2},
		2: {Lon: 7.0, Lat: 51.0033, Count: 1},
		3: {Lon: 7.0, Lat: 51.0066, Count: 2},
	}
	ways := List[OSMWay]{
		{
			NodeA: 1,
			NodeB: 3,
			Attr:  WayAttribs{Modes: []string{"car", "bus"}, Speed: 50, Oneway: false},
			Nodes: List[[2]float64]{{7.0, 51.0}, {7.0, 51.0033}, {7.0, 51.0066}},
		},
	}

	net, _ := _CreateNetwork(&osm_nodes, &ways)

	if net.NodeCount() != 2 {
		t.Fatalf("node count = %v; want the two junctions", net.NodeCount())
	}
	if net.LinkCount() != 2 {
		t.Fatalf("link count = %v; want a link per direction", net.LinkCount())
	}

	link := net.GetLink(0)
	expected := 0.0066 * math.Pi / 180 * 6371000
	if math.Abs(link.Length-expected) > 1 {
		t.Errorf("link length = %v; want about %v", link.Length, expected)
	}
	if link.Freespeed != 50/3.6 {
		t.Errorf("freespeed = %v; want %v", link.Freespeed, 50/3.6)
	}
	if len(link.Geom) != 3 {
		t.Errorf("geometry vertices = %v; want 3", len(link.Geom))
	}

	reverse := net.GetLink(1)
	if reverse.From != link.To || reverse.To != link.From {
		t.Errorf("reverse link spans %v->%v; want %v->%v", reverse.From, reverse.To, link.To, link.From)
	}
}

func TestCreateNetworkOneway(t *testing.T) {
	osm_nodes := Dict[int64, TempNode]{
		1: {Lon: 7.0, Lat: 51.0, Count: 2},
		2: {Lon: 7.001, Lat: 51.0, Count: 2},
	}
	ways := List[OSMWay]{
		{
			NodeA: 1,
			NodeB: 2,
			Attr:  WayAttribs{Modes: []string{"car", "bus"}, Speed: 100, Oneway: true},
			Nodes: List[[2]float64]{{7.0, 51.0}, {7.001, 51.0}},
		},
	}

	net, _ := _CreateNetwork(&osm_nodes, &ways)
	if net.LinkCount() != 1 {
		t.Errorf("link count = %v; want a single directed link", net.LinkCount())
	}
}
