package mapper

import (
	"math"

	"github.com/ttpr0/go-ptmapper/network"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// travel cost model
//*******************************************

type CostModel struct {
	net                     *network.Network
	typ                     TravelCostType
	with_candidate_distance bool
}

func NewCostModel(net *network.Network, typ TravelCostType, with_candidate_distance bool) *CostModel {
	return &CostModel{
		net:                     net,
		typ:                     typ,
		with_candidate_distance: with_candidate_distance,
	}
}

// Cost of traversing a single link. Links without a usable freespeed are
// infinitely expensive under travelTime and treated as absent edges.
func (self *CostModel) LinkCost(id int32) float64 {
	link := self.net.GetLink(id)
	switch self.typ {
	case LINK_LENGTH:
		return link.Length
	case TRAVEL_TIME:
		if link.Freespeed <= 0 {
			return math.Inf(1)
		}
		return link.Length / link.Freespeed
	default:
		panic("unknown travel cost type")
	}
}

func (self *CostModel) PathCost(links List[int32]) float64 {
	cost := 0.0
	for _, link := range links {
		cost += self.LinkCost(link)
	}
	return cost
}

// Extra cost for boarding or alighting at a candidate link. The stop-to-link
// distance is weighted with the fixed factor 2; changing it would silently
// alter mapping outcomes.
func (self *CostModel) CandidatePenalty(candidate LinkCandidate) float64 {
	if !self.with_candidate_distance {
		return 0
	}
	beeline := 2 * candidate.Distance
	switch self.typ {
	case LINK_LENGTH:
		return beeline
	case TRAVEL_TIME:
		link := self.net.GetLink(candidate.LinkID)
		if link.Freespeed <= 0 {
			return math.Inf(1)
		}
		return beeline / link.Freespeed
	default:
		panic("unknown travel cost type")
	}
}
