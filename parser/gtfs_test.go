package parser

import (
	"testing"

	"github.com/ttpr0/go-ptmapper/geo"
)

func TestParseSchedule(t *testing.T) {
	projection := geo.NewProjection(7.0, 51.0)
	sched := ParseSchedule("./testdata/gtfs", projection)

	if sched.FacilityCount() != 3 {
		t.Errorf("facility count = %v; want 3", sched.FacilityCount())
	}
	if sched.Lines().Length() != 1 {
		t.Fatalf("line count = %v; want 1", sched.Lines().Length())
	}

	// t1 and t2 share the same stop pattern, t3 runs the other way
	routes := sched.Routes()
	if routes.Length() != 2 {
		t.Fatalf("route count = %v; want 2 after pattern dedup", routes.Length())
	}

	route := routes[0]
	if route.Mode != "bus" {
		t.Errorf("route mode = %v; want bus", route.Mode)
	}
	if route.Stops.Length() != 3 {
		t.Fatalf("stop count = %v; want 3", route.Stops.Length())
	}
	if route.Stops[0].FacilityID != "s1" || route.Stops[2].FacilityID != "s3" {
		t.Errorf("stop sequence = %v to %v; want s1 to s3", route.Stops[0].FacilityID, route.Stops[2].FacilityID)
	}
	if route.Stops[0].DepartureOffset != 0 {
		t.Errorf("first departure offset = %v; want 0", route.Stops[0].DepartureOffset)
	}
	if route.Stops[1].ArrivalOffset != 300 || route.Stops[1].DepartureOffset != 360 {
		t.Errorf("second stop offsets = %v/%v; want 300/360", route.Stops[1].ArrivalOffset, route.Stops[1].DepartureOffset)
	}
	if route.Stops[2].ArrivalOffset != 600 {
		t.Errorf("last arrival offset = %v; want 600", route.Stops[2].ArrivalOffset)
	}

	reverse := routes[1]
	if reverse.Stops[0].FacilityID != "s3" {
		t.Errorf("reverse route starts at %v; want s3", reverse.Stops[0].FacilityID)
	}

	facility := sched.GetFacility("s1")
	if facility.Loc[0] != 0 || facility.Loc[1] != 0 {
		t.Errorf("facility s1 projected to %v; want the projection origin", facility.Loc)
	}
}
