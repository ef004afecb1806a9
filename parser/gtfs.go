package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ttpr0/go-ptmapper/geo"
	"github.com/ttpr0/go-ptmapper/schedule"
	. "github.com/ttpr0/go-ptmapper/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// gtfs parser
//*******************************************

type GTFSStop struct {
	StopID string  `csv:"stop_id"`
	Name   string  `csv:"stop_name"`
	Lat    float64 `csv:"stop_lat"`
	Lon    float64 `csv:"stop_lon"`
}

type GTFSRoute struct {
	RouteID   string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	RouteType int    `csv:"route_type"`
}

type GTFSTrip struct {
	RouteID string `csv:"route_id"`
	TripID  string `csv:"trip_id"`
}

type GTFSStopTime struct {
	TripID    string `csv:"trip_id"`
	Arrival   string `csv:"arrival_time"`
	Departure string `csv:"departure_time"`
	StopID    string `csv:"stop_id"`
	Sequence  int    `csv:"stop_sequence"`
}

// Reads a GTFS feed directory into a transit schedule. Stop coordinates are
// projected into the plane of the road network. Trips of a route sharing the
// same stop sequence and offsets collapse into a single transit route.
func ParseSchedule(gtfs_dir string, projection geo.Projection) *schedule.Schedule {
	sched := schedule.NewSchedule()

	for stop := range ReadCSVFromFile[GTFSStop](gtfs_dir+"/stops.txt", ',') {
		if sched.IsFacility(stop.StopID) {
			continue
		}
		sched.AddFacility(stop.StopID, projection.Project(stop.Lon, stop.Lat))
	}

	route_modes := NewDict[string, string](100)
	for route := range ReadCSVFromFile[GTFSRoute](gtfs_dir+"/routes.txt", ',') {
		route_modes[route.RouteID] = _GetScheduleMode(route.RouteType)
	}

	trip_routes := NewDict[string, string](1000)
	for trip := range ReadCSVFromFile[GTFSTrip](gtfs_dir+"/trips.txt", ',') {
		trip_routes[trip.TripID] = trip.RouteID
	}

	trip_stops := NewDict[string, List[GTFSStopTime]](1000)
	for stop_time := range ReadCSVFromFile[GTFSStopTime](gtfs_dir+"/stop_times.txt", ',') {
		if !trip_routes.ContainsKey(stop_time.TripID) {
			continue
		}
		times := trip_stops[stop_time.TripID]
		times.Add(stop_time)
		trip_stops[stop_time.TripID] = times
	}

	// trips with identical stop patterns map to the same transit route
	lines := NewDict[string, *schedule.TransitLine](100)
	patterns := NewDict[string, bool](1000)
	trip_ids := make([]string, 0, trip_stops.Length())
	for trip_id := range trip_stops {
		trip_ids = append(trip_ids, trip_id)
	}
	sort.Strings(trip_ids)

	for _, trip_id := range trip_ids {
		times := trip_stops[trip_id]
		route_id := trip_routes[trip_id]
		mode, ok := route_modes[route_id]
		if !ok {
			continue
		}
		stops := _BuildRouteStops(times, sched)
		if stops.Length() < 2 {
			continue
		}

		pattern := route_id + "|" + _PatternKey(stops)
		if patterns.ContainsKey(pattern) {
			continue
		}
		patterns[pattern] = true

		line, ok := lines[route_id]
		if !ok {
			line = sched.AddLine(route_id)
			lines[route_id] = line
		}
		route := &schedule.TransitRoute{
			ID:    fmt.Sprintf("%s_%d", route_id, line.Routes.Length()),
			Mode:  mode,
			Stops: stops,
		}
		line.Routes.Add(route)
	}

	slog.Info("parsed gtfs feed",
		"facilities", sched.FacilityCount(),
		"lines", sched.Lines().Length(),
		"routes", sched.Routes().Length(),
	)
	return sched
}

// Orders the stop times of one trip and converts them to offsets relative
// to the first departure.
func _BuildRouteStops(times List[GTFSStopTime], sched *schedule.Schedule) List[schedule.RouteStop] {
	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Sequence < times[j].Sequence
	})

	stops := NewList[schedule.RouteStop](times.Length())
	start, ok := _ParseGTFSTime(times[0].Departure)
	if !ok {
		start, ok = _ParseGTFSTime(times[0].Arrival)
		if !ok {
			return stops
		}
	}
	for _, stop_time := range times {
		if !sched.IsFacility(stop_time.StopID) {
			continue
		}
		arrival, ok := _ParseGTFSTime(stop_time.Arrival)
		if !ok {
			arrival = start
		}
		departure, ok := _ParseGTFSTime(stop_time.Departure)
		if !ok {
			departure = arrival
		}
		stops.Add(schedule.RouteStop{
			FacilityID:      stop_time.StopID,
			ArrivalOffset:   arrival - start,
			DepartureOffset: departure - start,
		})
	}
	return stops
}

func _PatternKey(stops List[schedule.RouteStop]) string {
	var builder strings.Builder
	for _, stop := range stops {
		builder.WriteString(stop.FacilityID)
		builder.WriteString(fmt.Sprintf(":%g:%g;", stop.ArrivalOffset, stop.DepartureOffset))
	}
	return builder.String()
}

// GTFS times may pass midnight, so hours are not capped at 24.
func _ParseGTFSTime(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	minutes, err2 := strconv.Atoi(parts[1])
	seconds, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(hours*3600 + minutes*60 + seconds), true
}

func _GetScheduleMode(route_type int) string {
	switch route_type {
	case 0:
		return "tram"
	case 1:
		return "subway"
	case 2:
		return "rail"
	case 3:
		return "bus"
	case 4:
		return "ferry"
	case 5:
		return "cable_car"
	case 6:
		return "gondola"
	case 7:
		return "funicular"
	default:
		return "other"
	}
}
