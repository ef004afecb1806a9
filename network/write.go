package network

import (
	"sort"

	. "github.com/ttpr0/go-ptmapper/util"
)

//*******************************************
// json export
//*******************************************

type NodeJSON struct {
	ID int32   `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

type LinkJSON struct {
	ID        int32    `json:"id"`
	From      int32    `json:"from"`
	To        int32    `json:"to"`
	Length    float64  `json:"length"`
	Freespeed float64  `json:"freespeed"`
	Capacity  float64  `json:"capacity"`
	Modes     []string `json:"modes"`
}

type NetworkJSON struct {
	Nodes []NodeJSON `json:"nodes"`
	Links []LinkJSON `json:"links"`
}

func (self *Network) ToJSON() NetworkJSON {
	nodes := NewList[NodeJSON](self.NodeCount())
	self.ForEachNode(func(id int32, node Node) {
		nodes.Add(NodeJSON{ID: id, X: node.Loc[0], Y: node.Loc[1]})
	})
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	links := NewList[LinkJSON](self.LinkCount())
	self.ForEachLink(func(id int32, link Link) {
		links.Add(LinkJSON{
			ID:        id,
			From:      link.From,
			To:        link.To,
			Length:    link.Length,
			Freespeed: link.Freespeed,
			Capacity:  link.Capacity,
			Modes:     link.Modes,
		})
	})
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })

	return NetworkJSON{Nodes: nodes, Links: links}
}
