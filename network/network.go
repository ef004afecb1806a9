package network

import (
	"github.com/ttpr0/go-ptmapper/geo"
	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

//*******************************************
// network structs
//*******************************************

type Node struct {
	Loc geo.Coord
}

type Link struct {
	From      int32
	To        int32
	Length    float64
	Freespeed float64
	Capacity  float64
	Modes     []string
	Geom      geo.CoordArray
}

func (self *Link) HasMode(mode string) bool {
	for _, m := range self.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func (self *Link) HasAnyMode(modes Dict[string, bool]) bool {
	for _, m := range self.Modes {
		if modes.ContainsKey(m) {
			return true
		}
	}
	return false
}

type LinkRef struct {
	LinkID  int32
	OtherID int32
}

//*******************************************
// network
//*******************************************

// Directed multimodal network using dictionaries.
// Links and nodes can be added and removed during mapping.
type Network struct {
	nodes        Dict[int32, Node]
	links        Dict[int32, Link]
	fwd_linkrefs Dict[int32, List[LinkRef]]
	bwd_linkrefs Dict[int32, List[LinkRef]]

	max_node_id int32
	max_link_id int32
}

func NewNetwork() *Network {
	return &Network{
		nodes:        NewDict[int32, Node](100),
		links:        NewDict[int32, Link](100),
		fwd_linkrefs: NewDict[int32, List[LinkRef]](100),
		bwd_linkrefs: NewDict[int32, List[LinkRef]](100),

		max_node_id: 0,
		max_link_id: 0,
	}
}

func (self *Network) NodeCount() int {
	return self.nodes.Length()
}
func (self *Network) LinkCount() int {
	return self.links.Length()
}
func (self *Network) IsNode(node int32) bool {
	return self.nodes.ContainsKey(node)
}
func (self *Network) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *Network) IsLink(link int32) bool {
	return self.links.ContainsKey(link)
}
func (self *Network) GetLink(link int32) Link {
	return self.links[link]
}
func (self *Network) SetLink(id int32, link Link) {
	if !self.links.ContainsKey(id) {
		panic("link doesn't exist")
	}
	old := self.links[id]
	if old.From != link.From || old.To != link.To {
		panic("link endpoints are immutable")
	}
	self.links[id] = link
}

func (self *Network) AddNode(id int32, loc geo.Coord) {
	if self.nodes.ContainsKey(id) {
		panic("node already exists")
	}
	if id >= self.max_node_id {
		self.max_node_id = id + 1
	}
	self.nodes[id] = Node{Loc: loc}
	self.fwd_linkrefs[id] = NewList[LinkRef](2)
	self.bwd_linkrefs[id] = NewList[LinkRef](2)
}

func (self *Network) AddNextNode(loc geo.Coord) int32 {
	id := self.max_node_id
	self.AddNode(id, loc)
	return id
}

func (self *Network) AddLink(link Link) int32 {
	if !self.nodes.ContainsKey(link.From) {
		panic("from-node doesn't exist")
	}
	if !self.nodes.ContainsKey(link.To) {
		panic("to-node doesn't exist")
	}
	id := self.max_link_id
	self.max_link_id = id + 1
	self.links[id] = link
	fwd_linkrefs := self.fwd_linkrefs[link.From]
	fwd_linkrefs.Add(LinkRef{LinkID: id, OtherID: link.To})
	self.fwd_linkrefs[link.From] = fwd_linkrefs
	bwd_linkrefs := self.bwd_linkrefs[link.To]
	bwd_linkrefs.Add(LinkRef{LinkID: id, OtherID: link.From})
	self.bwd_linkrefs[link.To] = bwd_linkrefs
	return id
}

func (self *Network) RemoveLink(id int32) {
	if !self.links.ContainsKey(id) {
		panic("link doesn't exist")
	}
	link := self.links[id]
	fwd_linkrefs := self.fwd_linkrefs[link.From]
	for i, ref := range fwd_linkrefs {
		if ref.LinkID == id {
			fwd_linkrefs.Remove(i)
			break
		}
	}
	self.fwd_linkrefs[link.From] = fwd_linkrefs
	bwd_linkrefs := self.bwd_linkrefs[link.To]
	for i, ref := range bwd_linkrefs {
		if ref.LinkID == id {
			bwd_linkrefs.Remove(i)
			break
		}
	}
	self.bwd_linkrefs[link.To] = bwd_linkrefs
	self.links.Delete(id)
}

func (self *Network) RemoveNode(id int32) {
	if !self.nodes.ContainsKey(id) {
		panic("node doesn't exist")
	}
	for self.fwd_linkrefs[id].Length() > 0 {
		self.RemoveLink(self.fwd_linkrefs[id][0].LinkID)
	}
	for self.bwd_linkrefs[id].Length() > 0 {
		self.RemoveLink(self.bwd_linkrefs[id][0].LinkID)
	}
	self.fwd_linkrefs.Delete(id)
	self.bwd_linkrefs.Delete(id)
	self.nodes.Delete(id)
}

func (self *Network) GetNodeDegree(node int32, dir Direction) int {
	if dir == FORWARD {
		return self.fwd_linkrefs[node].Length()
	} else {
		return self.bwd_linkrefs[node].Length()
	}
}

func (self *Network) ForAdjacentLinks(node int32, dir Direction, callback func(LinkRef)) {
	var linkrefs List[LinkRef]
	if dir == FORWARD {
		linkrefs = self.fwd_linkrefs[node]
	} else {
		linkrefs = self.bwd_linkrefs[node]
	}
	for _, ref := range linkrefs {
		callback(ref)
	}
}

func (self *Network) ForEachNode(callback func(int32, Node)) {
	for id, node := range self.nodes {
		callback(id, node)
	}
}

func (self *Network) ForEachLink(callback func(int32, Link)) {
	for id, link := range self.links {
		callback(id, link)
	}
}

// Returns the link geometry, falling back to the straight
// segment between its nodes.
func (self *Network) GetLinkGeometry(id int32) geo.CoordArray {
	link := self.links[id]
	if len(link.Geom) >= 2 {
		return link.Geom
	}
	return geo.CoordArray{self.nodes[link.From].Loc, self.nodes[link.To].Loc}
}
