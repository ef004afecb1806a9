package schedule

import (
	"testing"

	"github.com/ttpr0/go-ptmapper/geo"
)

func TestBindFacility(t *testing.T) {
	sched := NewSchedule()
	sched.AddFacility("s1", geo.Coord{0, 0})

	bound := sched.BindFacility("s1", 5)
	if bound.ID != "s1" || bound.LinkID != 5 {
		t.Errorf("first bind = %v; want s1 on link 5", bound)
	}

	// same link binds the same facility again
	again := sched.BindFacility("s1", 5)
	if again != bound {
		t.Errorf("re-bind to same link created a copy")
	}
}

func TestBindFacilitySplits(t *testing.T) {
	sched := NewSchedule()
	sched.AddFacility("s1", geo.Coord{0, 0})

	sched.BindFacility("s1", 5)
	child := sched.BindFacility("s1", 7)
	if child.ID != "s1.link:7" || child.LinkID != 7 || child.Parent != "s1" {
		t.Errorf("split = %+v; want child s1.link:7 of s1", child)
	}

	// splits are keyed by (facility, link): same request returns the same child
	child2 := sched.BindFacility("s1", 7)
	if child2 != child {
		t.Errorf("second split for link 7 created a new facility")
	}

	// splitting a child keeps the original parent
	grand := sched.BindFacility("s1.link:7", 9)
	if grand.ID != "s1.link:9" || grand.Parent != "s1" {
		t.Errorf("split of child = %+v; want s1.link:9 with parent s1", grand)
	}
}

func TestUsedFacilities(t *testing.T) {
	sched := NewSchedule()
	sched.AddFacility("s1", geo.Coord{0, 0})
	sched.AddFacility("s2", geo.Coord{100, 0})
	sched.AddFacility("unused", geo.Coord{500, 0})

	line := sched.AddLine("l1")
	route := &TransitRoute{ID: "r1", Mode: "bus"}
	route.Stops.Add(RouteStop{FacilityID: "s1"})
	route.Stops.Add(RouteStop{FacilityID: "s2"})
	line.Routes.Add(route)

	used := sched.UsedFacilities()
	if !used.ContainsKey("s1") || !used.ContainsKey("s2") || used.ContainsKey("unused") {
		t.Errorf("used = %v; want s1,s2 only", used)
	}
}
