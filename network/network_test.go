package network

import (
	"testing"

	"github.com/ttpr0/go-ptmapper/geo"
	. "github.com/ttpr0/go-ptmapper/util"
)

func _BuildTestNetwork() *Network {
	net := NewNetwork()
	net.AddNode(0, geo.Coord{0, 0})
	net.AddNode(1, geo.Coord{100, 0})
	net.AddNode(2, geo.Coord{200, 0})
	net.AddLink(Link{From: 0, To: 1, Length: 100, Freespeed: 10, Modes: []string{"car", "bus"}})
	net.AddLink(Link{From: 1, To: 2, Length: 100, Freespeed: 10, Modes: []string{"car"}})
	net.AddLink(Link{From: 2, To: 1, Length: 100, Freespeed: 10, Modes: []string{"rail"}})
	return net
}

func TestAdjacency(t *testing.T) {
	net := _BuildTestNetwork()

	fwd := NewList[int32](2)
	net.ForAdjacentLinks(1, FORWARD, func(ref LinkRef) {
		fwd.Add(ref.LinkID)
	})
	if fwd.Length() != 1 || fwd[0] != 1 {
		t.Errorf("forward links of node 1 = %v; want [1]", fwd)
	}

	bwd := NewList[int32](2)
	net.ForAdjacentLinks(1, BACKWARD, func(ref LinkRef) {
		bwd.Add(ref.LinkID)
	})
	if bwd.Length() != 2 {
		t.Errorf("backward links of node 1 = %v; want two links", bwd)
	}
}

func TestHasMode(t *testing.T) {
	net := _BuildTestNetwork()
	link := net.GetLink(0)
	if !link.HasMode("bus") || link.HasMode("rail") {
		t.Errorf("link 0 modes = %v; want bus but not rail", link.Modes)
	}
	allowed := Dict[string, bool]{"rail": true, "light_rail": true}
	link = net.GetLink(2)
	if !link.HasAnyMode(allowed) {
		t.Errorf("link 2 should match rail mode set")
	}
}

func TestRemoveLink(t *testing.T) {
	net := _BuildTestNetwork()
	net.RemoveLink(1)
	if net.IsLink(1) {
		t.Errorf("link 1 still present after remove")
	}
	if net.LinkCount() != 2 {
		t.Errorf("LinkCount = %v; want 2", net.LinkCount())
	}
	count := 0
	net.ForAdjacentLinks(1, FORWARD, func(ref LinkRef) {
		count++
	})
	if count != 0 {
		t.Errorf("node 1 forward degree = %v; want 0", count)
	}
}

func TestRemoveNode(t *testing.T) {
	net := _BuildTestNetwork()
	net.RemoveNode(1)
	if net.IsNode(1) {
		t.Errorf("node 1 still present after remove")
	}
	// all incident links removed with it
	if net.LinkCount() != 0 {
		t.Errorf("LinkCount = %v; want 0", net.LinkCount())
	}
}

func TestAddNextNode(t *testing.T) {
	net := _BuildTestNetwork()
	id := net.AddNextNode(geo.Coord{50, 50})
	if id != 3 {
		t.Errorf("AddNextNode id = %v; want 3", id)
	}
	if !net.IsNode(id) {
		t.Errorf("added node missing")
	}
}

func TestSetLinkKeepsEndpoints(t *testing.T) {
	net := _BuildTestNetwork()
	link := net.GetLink(0)
	link.Freespeed = 25
	net.SetLink(0, link)
	if net.GetLink(0).Freespeed != 25 {
		t.Errorf("Freespeed = %v; want 25", net.GetLink(0).Freespeed)
	}
}
