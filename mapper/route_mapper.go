package mapper

import (
	"math"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"github.com/ttpr0/go-ptmapper/geo"
	"github.com/ttpr0/go-ptmapper/network"
	"github.com/ttpr0/go-ptmapper/schedule"
	. "github.com/ttpr0/go-ptmapper/util"
	"golang.org/x/exp/slog"
)

// Capacity and freespeed given to artificial links until the freespeed
// post-processing pass adjusts them to the schedule.
const artificial_link_freespeed = 50.0 / 3.6
const artificial_link_capacity = 9999.0

//*******************************************
// link usage
//*******************************************

// What the mapping assigned onto a link, collected for post-processing.
type LinkUsage struct {
	Modes         Dict[string, bool]
	Routes        int
	RequiredSpeed float64
}

//*******************************************
// route mapper
//*******************************************

type Report struct {
	Routes             int `json:"routes"`
	SegmentsReal       int `json:"segments_real"`
	SegmentsArtificial int `json:"segments_artificial"`
	StopsNoCandidates  int `json:"stops_without_candidates"`
	ArtificialLinks    int `json:"artificial_links"`
	SplitFacilities    int `json:"split_facilities"`
}

// Maps every transit route onto the network. Route plans are computed by a
// pool of workers over the read-only network; all mutation happens in a
// serial commit phase afterwards.
type RouteMapper struct {
	net     *network.Network
	sched   *schedule.Schedule
	options Options
	finder  *CandidateFinder
	cost    *CostModel
	router  *PathFinder

	usage      Dict[int32, *LinkUsage]
	artificial Dict[string, int32]
	stubs      Dict[string, int32]
}

func NewRouteMapper(net *network.Network, sched *schedule.Schedule, index *SpatialIndex, options Options) *RouteMapper {
	options = options.Normalized()
	cost := NewCostModel(net, options.TravelCostType, options.RoutingWithCandidateDistance)
	return &RouteMapper{
		net:     net,
		sched:   sched,
		options: options,
		finder:  NewCandidateFinder(net, index, options),
		cost:    cost,
		router:  NewPathFinder(net, cost, options),

		usage:      NewDict[int32, *LinkUsage](100),
		artificial: NewDict[string, int32](10),
		stubs:      NewDict[string, int32](10),
	}
}

func (self *RouteMapper) Usage() Dict[int32, *LinkUsage] {
	return self.usage
}

func (self *RouteMapper) Run() Report {
	routes := self.sched.Routes()
	slog.Info("mapping transit routes", "routes", routes.Length(), "threads", self.options.NumOfThreads)

	// plans are collected by submission index and committed in route order,
	// so splits and artificial links come out the same on every run
	plans := make([]*_RoutePlan, routes.Length())
	workers := pool.New().WithMaxGoroutines(self.options.NumOfThreads)
	for i, route := range routes {
		workers.Go(func() {
			plans[i] = self._PlanRoute(route)
		})
	}
	workers.Wait()

	report := Report{Routes: routes.Length()}
	facilities_before := self.sched.FacilityCount()
	for _, plan := range plans {
		self._CommitRoute(plan, &report)
	}
	report.ArtificialLinks = self.artificial.Length() + self.stubs.Length()
	report.SplitFacilities = self.sched.FacilityCount() - facilities_before

	slog.Info("mapping finished",
		"segments_real", report.SegmentsReal,
		"segments_artificial", report.SegmentsArtificial,
		"stops_without_candidates", report.StopsNoCandidates,
		"artificial_links", report.ArtificialLinks,
		"split_facilities", report.SplitFacilities,
	)
	return report
}

//*******************************************
// planning phase (parallel, read-only)
//*******************************************

type _Segment struct {
	Path          Optional[PathResult]
	Beeline       float64
	ScheduledTime float64
}

type _RoutePlan struct {
	Route      *schedule.TransitRoute
	Facilities []string
	Chosen     []Optional[LinkCandidate]
	Segments   []_Segment
}

// Selects the cost-optimal chain of link candidates over all stops of the
// route. Candidate layers form a DAG; a plain layer-by-layer minimization
// finds the best chain. Segments whose best real path is missing or costs
// more than maxTravelCostFactor times the baseline become artificial.
func (self *RouteMapper) _PlanRoute(route *schedule.TransitRoute) *_RoutePlan {
	n := route.Stops.Length()
	plan := &_RoutePlan{
		Route:      route,
		Facilities: make([]string, n),
		Chosen:     make([]Optional[LinkCandidate], n),
		Segments:   make([]_Segment, 0),
	}
	if n == 0 {
		return plan
	}

	layers := make([]List[LinkCandidate], n)
	for i := 0; i < n; i++ {
		stop := route.Stops[i]
		plan.Facilities[i] = stop.FacilityID
		facility := self.sched.GetFacility(stop.FacilityID)
		layers[i] = self.finder.FindCandidates(facility, route.Mode)
	}
	if n == 1 {
		if layers[0].Length() > 0 {
			plan.Chosen[0] = Some(layers[0][0])
		}
		return plan
	}

	plan.Segments = make([]_Segment, n-1)

	// per-segment baselines for the artificial-link threshold
	baselines := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		a := self.sched.GetFacility(route.Stops[i].FacilityID)
		b := self.sched.GetFacility(route.Stops[i+1].FacilityID)
		beeline := geo.Distance(a.Loc, b.Loc)
		scheduled := route.Stops[i+1].ArrivalOffset - route.Stops[i].DepartureOffset
		plan.Segments[i].Beeline = beeline
		plan.Segments[i].ScheduledTime = scheduled
		if self.options.TravelCostType == TRAVEL_TIME {
			baselines[i] = scheduled
			if scheduled <= 0 {
				// no usable timetable offsets, approximate a travel time
				baselines[i] = beeline / artificial_link_freespeed
			}
		} else {
			baselines[i] = beeline
		}
	}

	// stops without candidates enter the chain as a single stub entry
	sizes := make([]int, n)
	for i := 0; i < n; i++ {
		sizes[i] = layers[i].Length()
		if sizes[i] == 0 {
			sizes[i] = 1
		}
	}

	type _ChainState struct {
		cost     float64
		distance float64
		prev     int
		path     Optional[PathResult]
	}
	states := make([][]_ChainState, n)
	states[0] = make([]_ChainState, sizes[0])
	for a := 0; a < sizes[0]; a++ {
		distance := 0.0
		if layers[0].Length() > 0 {
			distance = layers[0][a].Distance
		}
		states[0][a] = _ChainState{cost: 0, distance: distance, prev: -1}
	}

	for i := 0; i < n-1; i++ {
		limit := math.Inf(1)
		if baselines[i] > 0 {
			limit = self.options.MaxTravelCostFactor * baselines[i]
		}
		artificial_cost := limit

		// per from-candidate search results against the whole next layer
		paths := make([]Array[Optional[PathResult]], layers[i].Length())
		if layers[i].Length() > 0 && layers[i+1].Length() > 0 {
			for a := 0; a < layers[i].Length(); a++ {
				paths[a] = self.router.PathsFrom(layers[i][a], layers[i+1], route.Mode)
			}
		}

		states[i+1] = make([]_ChainState, sizes[i+1])
		for b := 0; b < sizes[i+1]; b++ {
			best := _ChainState{cost: math.Inf(1), prev: -1}
			b_distance := 0.0
			if layers[i+1].Length() > 0 {
				b_distance = layers[i+1][b].Distance
			}
			for a := 0; a < sizes[i]; a++ {
				edge_cost := artificial_cost
				edge_path := None[PathResult]()
				if layers[i].Length() > 0 && layers[i+1].Length() > 0 {
					result := paths[a][b]
					if result.HasValue() && result.Value.Cost <= limit {
						edge_cost = result.Value.Cost
						edge_path = result
					}
				}
				cost := states[i][a].cost + edge_cost
				distance := states[i][a].distance + b_distance
				// infinite edges are still selectable as a last resort so
				// the chain never breaks, they just become artificial links
				if best.prev == -1 || cost < best.cost || (cost == best.cost && distance < best.distance) {
					best = _ChainState{cost: cost, distance: distance, prev: a, path: edge_path}
				}
			}
			states[i+1][b] = best
		}
	}

	// pick the cheapest final state and walk the chain backwards
	final := 0
	for b := 1; b < sizes[n-1]; b++ {
		s := states[n-1][b]
		f := states[n-1][final]
		if s.cost < f.cost || (s.cost == f.cost && s.distance < f.distance) {
			final = b
		}
	}
	index := final
	for i := n - 1; i >= 0; i-- {
		if layers[i].Length() > 0 {
			plan.Chosen[i] = Some(layers[i][index])
		}
		if i > 0 {
			plan.Segments[i-1].Path = states[i][index].path
			index = states[i][index].prev
		}
	}
	return plan
}

//*******************************************
// commit phase (serial)
//*******************************************

func (self *RouteMapper) _CommitRoute(plan *_RoutePlan, report *Report) {
	route := plan.Route
	n := len(plan.Facilities)
	if n == 0 {
		return
	}

	// resolve each stop to its link, creating stubs for candidate-less stops
	stop_links := make([]int32, n)
	for i := 0; i < n; i++ {
		if plan.Chosen[i].HasValue() {
			stop_links[i] = plan.Chosen[i].Value.LinkID
		} else {
			stop_links[i] = self._GetStubLink(plan.Facilities[i])
			report.StopsNoCandidates += 1
		}
		facility := self.sched.BindFacility(plan.Facilities[i], stop_links[i])
		if facility.ID != plan.Facilities[i] {
			route.Stops[i].FacilityID = facility.ID
		}
	}

	route.Links = NewList[int32](n * 2)
	seen := NewDict[int32, bool](n * 2)
	for i, segment := range plan.Segments {
		var links List[int32]
		if segment.Path.HasValue() {
			links = segment.Path.Value.Links
			report.SegmentsReal += 1
		} else {
			art := self._GetArtificialLink(plan.Facilities[i], plan.Facilities[i+1],
				stop_links[i], stop_links[i+1], segment.Beeline)
			links = List[int32]{stop_links[i], art, stop_links[i+1]}
			report.SegmentsArtificial += 1
		}

		for j, link := range links {
			if j == 0 && route.Links.Length() > 0 && route.Links[route.Links.Length()-1] == link {
				continue
			}
			route.Links.Add(link)
		}

		self._MarkUsage(links, route.Mode, segment.ScheduledTime, seen)
	}
}

func (self *RouteMapper) _MarkUsage(links List[int32], mode string, scheduled_time float64, seen Dict[int32, bool]) {
	total_length := 0.0
	for _, link := range links {
		total_length += self.net.GetLink(link).Length
	}
	required := 0.0
	if scheduled_time > 0 && total_length > 0 {
		// satisfying the schedule needs the same speed on every link
		// of the segment when time is distributed by length
		required = total_length / scheduled_time
	}
	for _, link := range links {
		usage := self.usage[link]
		if usage == nil {
			usage = &LinkUsage{Modes: NewDict[string, bool](2)}
			self.usage[link] = usage
		}
		usage.Modes[mode] = true
		if !seen.ContainsKey(link) {
			usage.Routes += 1
			seen[link] = true
		}
		if required > usage.RequiredSpeed {
			usage.RequiredSpeed = required
		}
	}
}

// Loop link at the stop coordinate for stops with no link candidates,
// one per facility.
func (self *RouteMapper) _GetStubLink(facility_id string) int32 {
	if self.stubs.ContainsKey(facility_id) {
		return self.stubs[facility_id]
	}
	facility := self.sched.GetFacility(facility_id)
	node := self.net.AddNextNode(facility.Loc)
	link := self.net.AddLink(network.Link{
		From:      node,
		To:        node,
		Length:    0,
		Freespeed: artificial_link_freespeed,
		Capacity:  artificial_link_capacity,
		Modes:     []string{ARTIFICIAL_LINK_MODE},
	})
	self.stubs[facility_id] = link
	return link
}

// Synthesizes a link bridging two stops, connecting the end of the first
// stop's link to the start of the second stop's link. Keyed by the stop
// pair and both stop links, so routes sharing the gap reuse the same link
// but routes resolved to different stop links each get a connecting one.
func (self *RouteMapper) _GetArtificialLink(from_facility, to_facility string, from_link, to_link int32, beeline float64) int32 {
	key := from_facility + "->" + to_facility + "|" + strconv.Itoa(int(from_link)) + ":" + strconv.Itoa(int(to_link))
	if self.artificial.ContainsKey(key) {
		return self.artificial[key]
	}
	link := self.net.AddLink(network.Link{
		From:      self.net.GetLink(from_link).To,
		To:        self.net.GetLink(to_link).From,
		Length:    beeline,
		Freespeed: artificial_link_freespeed,
		Capacity:  artificial_link_capacity,
		Modes:     []string{ARTIFICIAL_LINK_MODE},
	})
	self.artificial[key] = link
	return link
}
