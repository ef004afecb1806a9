package parser

import (
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Lon   float64
	Lat   float64
	Count int32
}

type OSMWay struct {
	NodeA int64
	NodeB int64
	Attr  WayAttribs
	Nodes List[[2]float64]
}

type WayAttribs struct {
	Modes  []string
	Speed  float64 // km/h
	Oneway bool
}
