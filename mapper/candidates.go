package mapper

import (
	"sync"

	"github.com/ttpr0/go-ptmapper/network"
	"github.com/ttpr0/go-ptmapper/schedule"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// link candidates
//*******************************************

type LinkCandidate struct {
	Facility *schedule.StopFacility
	LinkID   int32
	Distance float64
}

// Builds per-stop candidate sets. Results are cached by (stop, schedule mode)
// since routes sharing a stop and mode get identical sets.
type CandidateFinder struct {
	net             *network.Network
	index           *SpatialIndex
	mode_assignment Dict[string, Dict[string, bool]]
	max_distance    float64
	n_threshold     int
	multiplier      float64

	mu    sync.Mutex
	cache Dict[string, List[LinkCandidate]]
}

func NewCandidateFinder(net *network.Network, index *SpatialIndex, options Options) *CandidateFinder {
	options = options.Normalized()
	return &CandidateFinder{
		net:             net,
		index:           index,
		mode_assignment: options.ModeAssignment(),
		max_distance:    options.MaxLinkCandidateDistance,
		n_threshold:     options.NLinkThreshold,
		multiplier:      options.CandidateDistanceMultiplier,
		cache:           NewDict[string, List[LinkCandidate]](100),
	}
}

// Candidate links for a stop, ascending by distance. Empty when the schedule
// mode has no network modes assigned or no eligible link is in range; such
// stops are mapped with artificial links.
func (self *CandidateFinder) FindCandidates(facility *schedule.StopFacility, schedule_mode string) List[LinkCandidate] {
	self.mu.Lock()
	defer self.mu.Unlock()

	key := facility.ID + "|" + schedule_mode
	if self.cache.ContainsKey(key) {
		return self.cache[key]
	}

	candidates := self._Find(facility, schedule_mode)
	self.cache[key] = candidates
	return candidates
}

func (self *CandidateFinder) _Find(facility *schedule.StopFacility, schedule_mode string) List[LinkCandidate] {
	modes, ok := self.mode_assignment[schedule_mode]
	if !ok || modes.Length() == 0 {
		return NewList[LinkCandidate](0)
	}

	nearest := self.index.NearestLinks(facility.Loc, self.max_distance)
	eligible := NewList[LinkDistance](nearest.Length())
	for _, near := range nearest {
		link := self.net.GetLink(near.LinkID)
		if link.HasAnyMode(modes) {
			eligible.Add(near)
		}
	}

	// keep the closest nLinkThreshold links, then expand the set by all
	// links within multiplier times the distance of the last kept one
	cutoff := self.max_distance
	if eligible.Length() > self.n_threshold {
		cutoff = eligible[self.n_threshold-1].Distance * self.multiplier
	}

	candidates := NewList[LinkCandidate](eligible.Length())
	for _, near := range eligible {
		if near.Distance > cutoff {
			break
		}
		candidates.Add(LinkCandidate{
			Facility: facility,
			LinkID:   near.LinkID,
			Distance: near.Distance,
		})
	}
	return candidates
}
