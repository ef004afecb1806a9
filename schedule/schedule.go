package schedule

import (
	"strconv"

	"github.com/ttpr0/go-ptmapper/geo"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// schedule structs
//*******************************************

// A timetabled stop location to be bound to a network link.
// LinkID is -1 until the mapper assigns one.
type StopFacility struct {
	ID     string
	Loc    geo.Coord
	LinkID int32
	Parent string
}

type RouteStop struct {
	FacilityID      string
	ArrivalOffset   float64
	DepartureOffset float64
}

type TransitRoute struct {
	ID    string
	Mode  string
	Stops List[RouteStop]
	Links List[int32]
}

type TransitLine struct {
	ID     string
	Routes List[*TransitRoute]
}

//*******************************************
// schedule
//*******************************************

type Schedule struct {
	facilities Dict[string, *StopFacility]
	lines      List[*TransitLine]
}

func NewSchedule() *Schedule {
	return &Schedule{
		facilities: NewDict[string, *StopFacility](100),
		lines:      NewList[*TransitLine](10),
	}
}

func (self *Schedule) AddFacility(id string, loc geo.Coord) *StopFacility {
	if self.facilities.ContainsKey(id) {
		panic("facility already exists")
	}
	facility := &StopFacility{ID: id, Loc: loc, LinkID: -1}
	self.facilities[id] = facility
	return facility
}

func (self *Schedule) GetFacility(id string) *StopFacility {
	return self.facilities[id]
}
func (self *Schedule) IsFacility(id string) bool {
	return self.facilities.ContainsKey(id)
}
func (self *Schedule) RemoveFacility(id string) {
	self.facilities.Delete(id)
}
func (self *Schedule) FacilityCount() int {
	return self.facilities.Length()
}
func (self *Schedule) ForEachFacility(callback func(*StopFacility)) {
	for _, facility := range self.facilities {
		callback(facility)
	}
}

func (self *Schedule) AddLine(id string) *TransitLine {
	line := &TransitLine{ID: id, Routes: NewList[*TransitRoute](2)}
	self.lines.Add(line)
	return line
}

func (self *Schedule) Lines() List[*TransitLine] {
	return self.lines
}

func (self *Schedule) Routes() List[*TransitRoute] {
	routes := NewList[*TransitRoute](self.lines.Length() * 2)
	for _, line := range self.lines {
		for _, route := range line.Routes {
			routes.Add(route)
		}
	}
	return routes
}

//*******************************************
// facility splitting
//*******************************************

// Binds a facility to a link, splitting it into a link-specific child
// when it is already bound to a different link. Splits are keyed by
// (facility, link) so the result is independent of route order.
func (self *Schedule) BindFacility(id string, link int32) *StopFacility {
	facility := self.facilities[id]
	if facility == nil {
		panic("facility doesn't exist: " + id)
	}
	if facility.LinkID == -1 {
		facility.LinkID = link
		return facility
	}
	if facility.LinkID == link {
		return facility
	}
	parent := facility.ID
	if facility.Parent != "" {
		parent = facility.Parent
	}
	child_id := parent + ".link:" + strconv.Itoa(int(link))
	if self.facilities.ContainsKey(child_id) {
		return self.facilities[child_id]
	}
	child := &StopFacility{
		ID:     child_id,
		Loc:    facility.Loc,
		LinkID: link,
		Parent: parent,
	}
	self.facilities[child_id] = child
	return child
}

// Facility ids referenced by at least one route.
func (self *Schedule) UsedFacilities() Dict[string, bool] {
	used := NewDict[string, bool](self.facilities.Length())
	for _, route := range self.Routes() {
		for _, stop := range route.Stops {
			used[stop.FacilityID] = true
		}
	}
	return used
}
