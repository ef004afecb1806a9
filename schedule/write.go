package schedule

import (
	"sort"

	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// json export
//*******************************************

type FacilityJSON struct {
	ID     string  `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	LinkID int32   `json:"link"`
	Parent string  `json:"parent,omitempty"`
}

type RouteStopJSON struct {
	Facility        string  `json:"facility"`
	ArrivalOffset   float64 `json:"arrival_offset"`
	DepartureOffset float64 `json:"departure_offset"`
}

type RouteJSON struct {
	ID    string          `json:"id"`
	Mode  string          `json:"mode"`
	Stops []RouteStopJSON `json:"stops"`
	Links []int32         `json:"links"`
}

type LineJSON struct {
	ID     string      `json:"id"`
	Routes []RouteJSON `json:"routes"`
}

type ScheduleJSON struct {
	Facilities []FacilityJSON `json:"facilities"`
	Lines      []LineJSON     `json:"lines"`
}

func (self *Schedule) ToJSON() ScheduleJSON {
	facilities := NewList[FacilityJSON](self.facilities.Length())
	self.ForEachFacility(func(facility *StopFacility) {
		facilities.Add(FacilityJSON{
			ID:     facility.ID,
			X:      facility.Loc[0],
			Y:      facility.Loc[1],
			LinkID: facility.LinkID,
			Parent: facility.Parent,
		})
	})
	sort.Slice(facilities, func(i, j int) bool { return facilities[i].ID < facilities[j].ID })

	lines := NewList[LineJSON](self.lines.Length())
	for _, line := range self.lines {
		routes := NewList[RouteJSON](line.Routes.Length())
		for _, route := range line.Routes {
			stops := NewList[RouteStopJSON](route.Stops.Length())
			for _, stop := range route.Stops {
				stops.Add(RouteStopJSON{
					Facility:        stop.FacilityID,
					ArrivalOffset:   stop.ArrivalOffset,
					DepartureOffset: stop.DepartureOffset,
				})
			}
			routes.Add(RouteJSON{ID: route.ID, Mode: route.Mode, Stops: stops, Links: route.Links})
		}
		lines.Add(LineJSON{ID: line.ID, Routes: routes})
	}

	return ScheduleJSON{Facilities: facilities, Lines: lines}
}
