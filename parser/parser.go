package parser

import (
	"context"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-ptmapper/geo"
	"github.com/ttpr0/go-ptmapper/network"
	. "github.com/ttpr0/go-ptmapper/util"
	"golang.org/x/exp/slog"
)

const default_link_capacity = 1000.0

// Parses an osm.pbf extract into a routable link network. Ways are split at
// junction nodes, coordinates are projected into planar meters around the
// extract's center. The projection is returned so other inputs can be
// placed in the same plane.
func ParseNetwork(pbf_file string, decoder IOSMDecoder) (*network.Network, geo.Projection) {
	osm_nodes := NewDict[int64, TempNode](10000)
	ways := NewList[OSMWay](10000)
	_ParseOsm(pbf_file, decoder, &osm_nodes, &ways)
	slog.Info("parsed osm extract", "ways", ways.Length(), "nodes", osm_nodes.Length())
	return _CreateNetwork(&osm_nodes, &ways)
}

func _ParseOsm(filename string, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode], ways *List[OSMWay]) {
	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_InitWayHandler(scanner, decoder, osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_NodeHandler(scanner, osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_WayHandler(scanner, decoder, osm_nodes, ways)
	scanner.Close()
}

//*******************************************
// osm handler methods
//*******************************************

// first pass: count how often each node is referenced by kept ways,
// way endpoints count twice so they always become junctions
func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidWay(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				node := (*osm_nodes)[ndref]
				node.Count += 1
				if i == 0 || i == l-1 {
					node.Count += 1
				}
				(*osm_nodes)[ndref] = node
			}
		default:
			continue
		}
	}
}

// second pass: pick up the coordinates of referenced nodes
func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			node := osm_nodes.Get(id)
			node.Lon = object.Lon
			node.Lat = object.Lat
			osm_nodes.Set(id, node)
		default:
			continue
		}
	}
}

// third pass: cut ways into edges between junction nodes
func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode], ways *List[OSMWay]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidWay(tags) {
				continue
			}
			attr := decoder.DecodeWay(tags)

			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			start := nodes[0].FeatureID().Ref()
			way := OSMWay{Attr: attr, Nodes: NewList[[2]float64](4)}
			for i := 0; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				node := osm_nodes.Get(curr)
				way.Nodes.Add([2]float64{node.Lon, node.Lat})
				if node.Count > 1 && curr != start {
					way.NodeA = start
					way.NodeB = curr
					ways.Add(way)
					start = curr
					way = OSMWay{Attr: attr, Nodes: NewList[[2]float64](4)}
					way.Nodes.Add([2]float64{node.Lon, node.Lat})
				}
			}
		default:
			continue
		}
	}
}

//*******************************************
// network construction
//*******************************************

func _CreateNetwork(osm_nodes *Dict[int64, TempNode], ways *List[OSMWay]) (*network.Network, geo.Projection) {
	min_lon, min_lat := 180.0, 90.0
	max_lon, max_lat := -180.0, -90.0
	for _, node := range *osm_nodes {
		if node.Count <= 1 {
			continue
		}
		if node.Lon < min_lon {
			min_lon = node.Lon
		}
		if node.Lon > max_lon {
			max_lon = node.Lon
		}
		if node.Lat < min_lat {
			min_lat = node.Lat
		}
		if node.Lat > max_lat {
			max_lat = node.Lat
		}
	}
	projection := geo.NewProjection((min_lon+max_lon)/2, (min_lat+max_lat)/2)

	net := network.NewNetwork()
	node_mapping := NewDict[int64, int32](osm_nodes.Length())
	for ref, node := range *osm_nodes {
		if node.Count <= 1 {
			continue
		}
		node_mapping[ref] = net.AddNextNode(projection.Project(node.Lon, node.Lat))
	}

	for _, way := range *ways {
		geom := NewArray[geo.Coord](way.Nodes.Length())
		for i, lonlat := range way.Nodes {
			geom[i] = projection.Project(lonlat[0], lonlat[1])
		}
		length := geo.PolylineLength(geo.CoordArray(geom))
		net.AddLink(network.Link{
			From:      node_mapping[way.NodeA],
			To:        node_mapping[way.NodeB],
			Length:    length,
			Freespeed: way.Attr.Speed / 3.6,
			Capacity:  default_link_capacity,
			Modes:     way.Attr.Modes,
			Geom:      geo.CoordArray(geom),
		})
		if !way.Attr.Oneway {
			reverse := NewArray[geo.Coord](geom.Length())
			for i, c := range geom {
				reverse[geom.Length()-1-i] = c
			}
			net.AddLink(network.Link{
				From:      node_mapping[way.NodeB],
				To:        node_mapping[way.NodeA],
				Length:    length,
				Freespeed: way.Attr.Speed / 3.6,
				Capacity:  default_link_capacity,
				Modes:     way.Attr.Modes,
				Geom:      geo.CoordArray(reverse),
			})
		}
	}
	return net, projection
}
