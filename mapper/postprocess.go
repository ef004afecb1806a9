package mapper

import (
	"github.com/ttpr0/go-ptmapper/network"
	"github.com/ttpr0/go-ptmapper/schedule"
	. "github.com/ttpr0/go-ptmapper/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// network post-processing
//*******************************************

// Adjusts freespeeds to the mapped schedule and prunes network elements no
// route uses. Must run after every route has been committed.
type NetworkPostProcessor struct {
	net     *network.Network
	sched   *schedule.Schedule
	usage   Dict[int32, *LinkUsage]
	options Options
}

func NewNetworkPostProcessor(net *network.Network, sched *schedule.Schedule, usage Dict[int32, *LinkUsage], options Options) *NetworkPostProcessor {
	return &NetworkPostProcessor{
		net:     net,
		sched:   sched,
		usage:   usage,
		options: options,
	}
}

// Raises the freespeed of used links carrying one of the configured modes to
// the speed the tightest scheduled travel time requires. Freespeeds are
// never lowered.
func (self *NetworkPostProcessor) AdjustFreespeed() {
	modes := NewDict[string, bool](len(self.options.ScheduleFreespeedModes))
	for _, m := range self.options.ScheduleFreespeedModes {
		modes[m] = true
	}

	adjusted := 0
	for id, usage := range self.usage {
		if usage.Routes == 0 || usage.RequiredSpeed <= 0 {
			continue
		}
		if !self.net.IsLink(id) {
			continue
		}
		link := self.net.GetLink(id)
		if !link.HasAnyMode(modes) {
			continue
		}
		if usage.RequiredSpeed > link.Freespeed {
			link.Freespeed = usage.RequiredSpeed
			self.net.SetLink(id, link)
			adjusted += 1
		}
	}
	slog.Info("adjusted link freespeeds", "links", adjusted)
}

// Removes links used by no transit route unless one of their modes is in
// the keep-list, then nodes left without links, then unreferenced stop
// facilities when configured. Running it again changes nothing.
func (self *NetworkPostProcessor) CleanUp() {
	keep := NewDict[string, bool](len(self.options.ModesToKeepOnCleanUp))
	for _, m := range self.options.ModesToKeepOnCleanUp {
		keep[m] = true
	}

	remove_links := NewList[int32](100)
	self.net.ForEachLink(func(id int32, link network.Link) {
		usage := self.usage[id]
		if usage != nil && usage.Routes > 0 {
			return
		}
		if link.HasAnyMode(keep) {
			return
		}
		remove_links.Add(id)
	})
	for _, id := range remove_links {
		self.net.RemoveLink(id)
	}

	remove_nodes := NewList[int32](100)
	self.net.ForEachNode(func(id int32, node network.Node) {
		if self.net.GetNodeDegree(id, network.FORWARD) == 0 && self.net.GetNodeDegree(id, network.BACKWARD) == 0 {
			remove_nodes.Add(id)
		}
	})
	for _, id := range remove_nodes {
		self.net.RemoveNode(id)
	}

	removed_facilities := 0
	if self.options.RemoveNotUsedStopFacilities {
		used := self.sched.UsedFacilities()
		remove_facilities := NewList[string](10)
		self.sched.ForEachFacility(func(facility *schedule.StopFacility) {
			if !used.ContainsKey(facility.ID) {
				remove_facilities.Add(facility.ID)
			}
		})
		for _, id := range remove_facilities {
			self.sched.RemoveFacility(id)
		}
		removed_facilities = remove_facilities.Length()
	}

	slog.Info("network clean-up",
		"removed_links", remove_links.Length(),
		"removed_nodes", remove_nodes.Length(),
		"removed_facilities", removed_facilities,
	)
}
