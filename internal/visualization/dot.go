// Package visualization renders union-find forests in various output formats.
package visualization

import (
	"fmt"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/nvandessel/uflab/internal/unionfind"
)

// Format specifies the output format for forest rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// siteNode is a site in the rendered graph. Roots are drawn as double circles.
type siteNode struct {
	id   int64
	root bool
}

func (n siteNode) ID() int64 { return n.id }

// Attributes implements encoding.Attributer.
func (n siteNode) Attributes() []encoding.Attribute {
	if n.root {
		return []encoding.Attribute{{Key: "shape", Value: "doublecircle"}}
	}
	return []encoding.Attribute{{Key: "shape", Value: "circle"}}
}

// RenderDOT produces a Graphviz DOT representation of the forest with one
// edge from every non-root site to its parent.
func RenderDOT(name string, f unionfind.Forest) (string, error) {
	parents := f.Parents()
	g := simple.NewDirectedGraph()
	for i, p := range parents {
		g.AddNode(siteNode{id: int64(i), root: i == p})
	}
	for i, p := range parents {
		if i == p {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(int64(i)), g.Node(int64(p))))
	}

	b, err := dot.Marshal(g, name, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal DOT: %w", err)
	}
	return string(b) + "\n", nil
}

// ForestJSON is the JSON form of a forest.
type ForestJSON struct {
	Nodes      []int        `json:"nodes"`
	Edges      []ForestEdge `json:"edges"`
	Roots      []int        `json:"roots"`
	Height     int          `json:"height"`
	NodeCount  int          `json:"node_count"`
	EdgeCount  int          `json:"edge_count"`
	Components int          `json:"components"`
}

// ForestEdge links a site to its parent.
type ForestEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// RenderJSON produces a JSON-ready representation with nodes, edges and roots.
func RenderJSON(f unionfind.Forest) ForestJSON {
	parents := f.Parents()
	out := ForestJSON{
		Nodes:  make([]int, len(parents)),
		Edges:  make([]ForestEdge, 0, len(parents)),
		Roots:  []int{},
		Height: unionfind.Height(f),
	}
	for i, p := range parents {
		out.Nodes[i] = i
		if i == p {
			out.Roots = append(out.Roots, i)
			continue
		}
		out.Edges = append(out.Edges, ForestEdge{Source: i, Target: p})
	}
	out.NodeCount = len(out.Nodes)
	out.EdgeCount = len(out.Edges)
	out.Components = len(out.Roots)
	return out
}
