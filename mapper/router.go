package mapper

import (
	"math"

	"github.com/ttpr0/go-ptmapper/network"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// path finder
//*******************************************

type PathResult struct {
	Links List[int32]
	Cost  float64
	From  LinkCandidate
	To    LinkCandidate
}

// Combined stop-to-link distance of both end candidates,
// used to break cost ties.
func (self *PathResult) CandidateDistance() float64 {
	return self.From.Distance + self.To.Distance
}

// Shortest paths between candidate links over the subgraph of links
// carrying an allowed network mode for the schedule mode.
// Read-only on the network, safe for concurrent use.
type PathFinder struct {
	net             *network.Network
	cost            *CostModel
	mode_assignment Dict[string, Dict[string, bool]]
}

func NewPathFinder(net *network.Network, cost *CostModel, options Options) *PathFinder {
	return &PathFinder{
		net:             net,
		cost:            cost,
		mode_assignment: options.ModeAssignment(),
	}
}

type _PQItem struct {
	node int32
	cost float64
}

// Minimum-cost path over all candidate pairs. Returns None when the
// candidate sets lie in disconnected components of the restricted subgraph;
// the caller falls back to an artificial link.
func (self *PathFinder) ShortestPath(from_candidates, to_candidates List[LinkCandidate], schedule_mode string) Optional[PathResult] {
	best := None[PathResult]()
	for _, from := range from_candidates {
		results := self.PathsFrom(from, to_candidates, schedule_mode)
		for _, result := range results {
			if !result.HasValue() {
				continue
			}
			if !best.HasValue() {
				best = result
				continue
			}
			if result.Value.Cost < best.Value.Cost {
				best = result
			} else if result.Value.Cost == best.Value.Cost && result.Value.CandidateDistance() < best.Value.CandidateDistance() {
				best = result
			}
		}
	}
	return best
}

// Paths from one candidate to every to-candidate, index-aligned with
// to_candidates. A single Dijkstra run seeded behind the from-link serves
// all sinks; the search stops once every reachable sink is settled.
// Both end links enter the cost at half weight, so a stop link shared by
// two consecutive route segments is counted once over the whole chain.
func (self *PathFinder) PathsFrom(from LinkCandidate, to_candidates List[LinkCandidate], schedule_mode string) Array[Optional[PathResult]] {
	results := NewArray[Optional[PathResult]](to_candidates.Length())

	modes, ok := self.mode_assignment[schedule_mode]
	if !ok || modes.Length() == 0 {
		return results
	}
	seed_cost := 0.5*self.cost.LinkCost(from.LinkID) + self.cost.CandidatePenalty(from)
	if math.IsInf(seed_cost, 1) {
		return results
	}

	// candidates on the same link need no search at all
	pending := NewDict[int32, List[int]](to_candidates.Length())
	for i, to := range to_candidates {
		if to.LinkID == from.LinkID {
			total := seed_cost + 0.5*self.cost.LinkCost(to.LinkID) + self.cost.CandidatePenalty(to)
			if !math.IsInf(total, 1) {
				results[i] = Some(PathResult{
					Links: List[int32]{from.LinkID},
					Cost:  total,
					From:  from,
					To:    to,
				})
			}
			continue
		}
		to_link := self.net.GetLink(to.LinkID)
		indices := pending[to_link.From]
		indices.Add(i)
		pending[to_link.From] = indices
	}
	if pending.Length() == 0 {
		return results
	}

	from_link := self.net.GetLink(from.LinkID)
	start := from_link.To

	dist := NewDict[int32, float64](100)
	prev := NewDict[int32, LinkRefPrev](100)
	settled := NewDict[int32, bool](100)
	heap := NewPriorityQueue[_PQItem, float64](100)

	dist[start] = seed_cost
	heap.Enqueue(_PQItem{start, seed_cost}, seed_cost)

	remaining := pending.Length()
	for remaining > 0 {
		curr, ok := heap.Dequeue()
		if !ok {
			break
		}
		if settled.ContainsKey(curr.node) {
			continue
		}
		settled[curr.node] = true
		if pending.ContainsKey(curr.node) {
			remaining -= 1
		}
		self.net.ForAdjacentLinks(curr.node, network.FORWARD, func(ref network.LinkRef) {
			link := self.net.GetLink(ref.LinkID)
			if !link.HasAnyMode(modes) {
				return
			}
			link_cost := self.cost.LinkCost(ref.LinkID)
			if math.IsInf(link_cost, 1) {
				return
			}
			new_cost := curr.cost + link_cost
			if !dist.ContainsKey(ref.OtherID) || new_cost < dist[ref.OtherID] {
				dist[ref.OtherID] = new_cost
				prev[ref.OtherID] = LinkRefPrev{Link: ref.LinkID, Node: curr.node}
				heap.Enqueue(_PQItem{ref.OtherID, new_cost}, new_cost)
			}
		})
	}

	for node, indices := range pending {
		if !dist.ContainsKey(node) {
			continue
		}
		links := self._ReconstructPath(start, node, prev)
		for _, i := range indices {
			to := to_candidates[i]
			total := dist[node] + 0.5*self.cost.LinkCost(to.LinkID) + self.cost.CandidatePenalty(to)
			if math.IsInf(total, 1) {
				continue
			}
			path := NewList[int32](links.Length() + 2)
			path.Add(from.LinkID)
			for _, l := range links {
				path.Add(l)
			}
			path.Add(to.LinkID)
			results[i] = Some(PathResult{
				Links: path,
				Cost:  total,
				From:  from,
				To:    to,
			})
		}
	}
	return results
}

type LinkRefPrev struct {
	Link int32
	Node int32
}

func (self *PathFinder) _ReconstructPath(start, end int32, prev Dict[int32, LinkRefPrev]) List[int32] {
	links := NewList[int32](8)
	node := end
	for node != start {
		ref := prev[node]
		links.Add(ref.Link)
		node = ref.Node
	}
	// collected back to front
	for i, j := 0, links.Length()-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links
}
