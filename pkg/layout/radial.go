package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/conceptmap/pkg/tree"
)

const (
	radialMinW = 900
	radialMinH = 600

	radialCategories  = 5
	radialConcepts    = 3
	radialCategoryArc = 72
	radialSpread      = 1.2
	radialConceptDist = 100
	radialRingFrac    = 0.3

	centralRadius  = 35
	categoryRadius = 30
	conceptRadius  = 20

	radialStroke = 2
)

// RadialNode is one node of the radial overview. The set of implementations
// is closed: [CentralNode], [CategoryNode] and [ConceptNode].
type RadialNode interface {
	radialNode()
	NodeID() string
	Center() Point
}

// CentralNode sits in the middle of the canvas.
type CentralNode struct {
	X, Y       float64
	Radius     float64
	TopicCount int
	Progress   float64
}

// CategoryNode is one of the fixed ring of categories around the centre.
type CategoryNode struct {
	Index    int
	Angle    float64
	X, Y     float64
	Radius   float64
	Progress float64
}

// ConceptNode hangs off a category.
type ConceptNode struct {
	Category int
	Index    int
	Angle    float64
	X, Y     float64
	Radius   float64
	Progress float64
}

func (CentralNode) radialNode()  {}
func (CategoryNode) radialNode() {}
func (ConceptNode) radialNode()  {}

func (CentralNode) NodeID() string    { return "central" }
func (n CategoryNode) NodeID() string { return fmt.Sprintf("category-%d", n.Index) }
func (n ConceptNode) NodeID() string  { return fmt.Sprintf("concept-%d-%d", n.Category, n.Index) }

func (n CentralNode) Center() Point  { return Point{n.X, n.Y} }
func (n CategoryNode) Center() Point { return Point{n.X, n.Y} }
func (n ConceptNode) Center() Point  { return Point{n.X, n.Y} }

// RadialEdge joins two radial nodes.
type RadialEdge struct {
	From, To RadialNode
}

// RadialLayout is the typed output of [Radial].
type RadialLayout struct {
	Nodes  []RadialNode
	Edges  []RadialEdge
	Width  float64
	Height float64
}

// Radial builds the decorative overview: a central node, a ring of five
// categories 72° apart, and three concepts fanned out from each category.
// The shape does not depend on the hierarchy; topicCount only labels the
// centre. Progress values are seeded from node ids.
func Radial(topicCount int, width, height float64) RadialLayout {
	w, h := max(width, radialMinW), max(height, radialMinH)
	cx, cy := w/2, h/2

	central := CentralNode{X: cx, Y: cy, Radius: centralRadius, TopicCount: topicCount, Progress: 100}
	out := RadialLayout{Nodes: []RadialNode{central}, Width: w, Height: h}

	ring := min(w, h) * radialRingFrac
	categories := make([]CategoryNode, radialCategories)
	for i := range categories {
		angle := float64(i*radialCategoryArc) * math.Pi / 180
		c := CategoryNode{
			Index:  i,
			Angle:  angle,
			X:      cx + math.Cos(angle)*ring,
			Y:      cy + math.Sin(angle)*ring,
			Radius: categoryRadius,
		}
		c.Progress = decorativeProgress(c.NodeID())
		categories[i] = c
		out.Nodes = append(out.Nodes, c)
		out.Edges = append(out.Edges, RadialEdge{From: central, To: c})
	}

	for _, cat := range categories {
		for i := range radialConcepts {
			angle := cat.Angle + float64(i-1)*radialSpread
			c := ConceptNode{
				Category: cat.Index,
				Index:    i,
				Angle:    angle,
				X:        cat.X + math.Cos(angle)*radialConceptDist,
				Y:        cat.Y + math.Sin(angle)*radialConceptDist,
				Radius:   conceptRadius,
			}
			c.Progress = decorativeProgress(c.NodeID())
			out.Nodes = append(out.Nodes, c)
			out.Edges = append(out.Edges, RadialEdge{From: cat, To: c})
		}
	}
	return out
}

// decorativeProgress returns a stable value in [0, 100).
func decorativeProgress(id string) float64 {
	return SeededJitter(Hash(id), 50) + 50
}

// Result flattens the radial layout into the shared result shape.
func (r RadialLayout) Result() Result {
	res := emptyResult(r.Width, r.Height)
	for _, n := range r.Nodes {
		res.Nodes = append(res.Nodes, positionRadial(n))
	}
	for _, e := range r.Edges {
		c := Line(e.From.Center(), e.To.Center())
		res.Links = append(res.Links, Link{
			From:  e.From.NodeID(),
			To:    e.To.NodeID(),
			Path:  "M " + num(c.P0.X) + "," + num(c.P0.Y) + " L " + num(c.P3.X) + "," + num(c.P3.Y),
			Curve: c,
			Width: radialStroke,
		})
	}
	return res
}

func positionRadial(n RadialNode) PositionedNode {
	switch n := n.(type) {
	case CentralNode:
		label := "Central"
		if n.TopicCount > 0 {
			label = fmt.Sprintf("Central · %d topics", n.TopicCount)
		}
		return radialPositioned(n, label, KindCentral, 0, "", n.Radius, n.Progress)
	case CategoryNode:
		return radialPositioned(n, fmt.Sprintf("Category %d", n.Index+1), KindCategory, 1,
			CentralNode{}.NodeID(), n.Radius, n.Progress)
	case ConceptNode:
		return radialPositioned(n, fmt.Sprintf("Concept %d", n.Index+1), KindConcept, 2,
			CategoryNode{Index: n.Category}.NodeID(), n.Radius, n.Progress)
	}
	panic(fmt.Sprintf("layout: unhandled radial node %T", n))
}

func radialPositioned(n RadialNode, label string, kind tree.Kind, depth int, parent string, r, progress float64) PositionedNode {
	c := n.Center()
	return PositionedNode{
		ID:       n.NodeID(),
		Label:    label,
		Kind:     kind,
		Depth:    depth,
		X:        c.X,
		Y:        c.Y,
		ParentID: parent,
		Radius:   r,
		Progress: &progress,
	}
}
