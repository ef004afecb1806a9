package parser

import (
	"testing"

	. "github.com/ttpr0/go-ptmapper/util"
)

func TestIsValidWay(t *testing.T) {
	decoder := MultimodalDecoder{}

	if !decoder.IsValidWay(Dict[string, string]{"highway": "residential"}) {
		t.Errorf("residential road rejected")
	}
	if decoder.IsValidWay(Dict[string, string]{"highway": "footway"}) {
		t.Errorf("footway accepted")
	}
	if !decoder.IsValidWay(Dict[string, string]{"railway": "rail"}) {
		t.Errorf("rail track rejected")
	}
	if decoder.IsValidWay(Dict[string, string]{"railway": "rail", "service": "yard"}) {
		t.Errorf("yard track accepted")
	}
	if decoder.IsValidWay(Dict[string, string]{"building": "yes"}) {
		t.Errorf("non-way tags accepted")
	}
}

func TestDecodeRoad(t *testing.T) {
	decoder := MultimodalDecoder{}

	attr := decoder.DecodeWay(Dict[string, string]{"highway": "secondary", "maxspeed": "70"})
	if len(attr.Modes) != 2 || attr.Modes[0] != "car" || attr.Modes[1] != "bus" {
		t.Errorf("road modes = %v; want car and bus", attr.Modes)
	}
	if attr.Speed != 70 {
		t.Errorf("speed = %v; want the tagged 70", attr.Speed)
	}
	if attr.Oneway {
		t.Errorf("secondary road without oneway tag decoded as oneway")
	}

	attr = decoder.DecodeWay(Dict[string, string]{"highway": "motorway"})
	if !attr.Oneway {
		t.Errorf("motorway not decoded as oneway")
	}
	if attr.Speed != 120 {
		t.Errorf("motorway default speed = %v; want 120", attr.Speed)
	}

	attr = decoder.DecodeWay(Dict[string, string]{"highway": "residential", "junction": "roundabout"})
	if !attr.Oneway {
		t.Errorf("roundabout not decoded as oneway")
	}
}

func TestDecodeRail(t *testing.T) {
	decoder := MultimodalDecoder{}

	attr := decoder.DecodeWay(Dict[string, string]{"railway": "light_rail"})
	if len(attr.Modes) != 1 || attr.Modes[0] != "light_rail" {
		t.Errorf("light rail modes = %v; want light_rail", attr.Modes)
	}
	if attr.Speed != 80 {
		t.Errorf("light rail default speed = %v; want 80", attr.Speed)
	}

	attr = decoder.DecodeWay(Dict[string, string]{"railway": "rail", "maxspeed": "160"})
	if attr.Speed != 160 {
		t.Errorf("rail speed = %v; want the tagged 160", attr.Speed)
	}
}

func TestDecodeMaxspeedFallbacks(t *testing.T) {
	decoder := MultimodalDecoder{}

	attr := decoder.DecodeWay(Dict[string, string]{"highway": "tertiary", "maxspeed": "walk"})
	if attr.Speed != 10 {
		t.Errorf("maxspeed=walk decoded to %v; want 10", attr.Speed)
	}
	attr = decoder.DecodeWay(Dict[string, string]{"highway": "tertiary", "maxspeed": "none"})
	if attr.Speed != 130 {
		t.Errorf("maxspeed=none decoded to %v; want 130", attr.Speed)
	}
	attr = decoder.DecodeWay(Dict[string, string]{"highway": "tertiary", "maxspeed": "50 mph"})
	if attr.Speed != 50 {
		t.Errorf("unparsable maxspeed decoded to %v; want the type default 50", attr.Speed)
	}
}
