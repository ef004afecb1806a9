package parser

import (
	"strconv"

	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidWay(tags Dict[string, string]) bool
	DecodeWay(tags Dict[string, string]) WayAttribs
}

// Decodes drivable roads and rail tracks into multimodal links.
type MultimodalDecoder struct {
}

var road_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "unclassified": true, "road": true}

var rail_types = Dict[string, bool]{"rail": true, "light_rail": true, "subway": true, "tram": true, "narrow_gauge": true}

func (self *MultimodalDecoder) IsValidWay(tags Dict[string, string]) bool {
	if tags.ContainsKey("highway") && road_types.ContainsKey(tags.Get("highway")) {
		return true
	}
	if tags.ContainsKey("railway") && rail_types.ContainsKey(tags.Get("railway")) {
		if tags.Get("service") == "yard" || tags.Get("service") == "spur" {
			return false
		}
		return true
	}
	return false
}

func (self *MultimodalDecoder) DecodeWay(tags Dict[string, string]) WayAttribs {
	if tags.ContainsKey("railway") && rail_types.ContainsKey(tags.Get("railway")) {
		rail_type := tags.Get("railway")
		return WayAttribs{
			Modes:  []string{_GetRailMode(rail_type)},
			Speed:  _GetSpeed(tags.Get("maxspeed"), _GetRailDefaultSpeed(rail_type)),
			Oneway: tags.Get("oneway") == "yes",
		}
	}
	road_type := tags.Get("highway")
	return WayAttribs{
		Modes:  []string{"car", "bus"},
		Speed:  _GetSpeed(tags.Get("maxspeed"), _GetRoadDefaultSpeed(road_type)),
		Oneway: _IsOneway(tags.Get("oneway"), tags.Get("junction"), road_type),
	}
}

//*******************************************
// utility methods
//*******************************************

func _IsOneway(oneway string, junction string, road_type string) bool {
	if road_type == "motorway" || road_type == "motorway_link" || road_type == "trunk" || road_type == "trunk_link" {
		return true
	}
	if junction == "roundabout" {
		return true
	}
	return oneway == "yes"
}

func _GetRailMode(rail_type string) string {
	switch rail_type {
	case "light_rail":
		return "light_rail"
	case "subway":
		return "subway"
	case "tram":
		return "tram"
	default:
		return "rail"
	}
}

func _GetSpeed(maxspeed string, fallback float64) float64 {
	if maxspeed == "" {
		return fallback
	}
	if maxspeed == "walk" {
		return 10
	}
	if maxspeed == "none" {
		return 130
	}
	speed, err := strconv.Atoi(maxspeed)
	if err != nil {
		return fallback
	}
	return float64(speed)
}

func _GetRoadDefaultSpeed(road_type string) float64 {
	switch road_type {
	case "motorway":
		return 120
	case "trunk":
		return 85
	case "motorway_link", "trunk_link":
		return 60
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "primary_link", "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "unclassified", "residential":
		return 30
	case "living_street":
		return 10
	case "service":
		return 20
	default:
		return 20
	}
}

func _GetRailDefaultSpeed(rail_type string) float64 {
	switch rail_type {
	case "rail":
		return 120
	case "light_rail":
		return 80
	case "subway":
		return 60
	case "tram", "narrow_gauge":
		return 40
	default:
		return 60
	}
}
