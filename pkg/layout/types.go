package layout

import (
	"strconv"
	"strings"

	"github.com/matzehuels/conceptmap/pkg/tree"
)

// NodeWidth is the nominal width of a node box. Link anchors sit on its right edge.
const NodeWidth = 150

// NodeHeight is the nominal height of a node box.
const NodeHeight = 36

// Kinds used only by the radial view.
const (
	KindCentral  tree.Kind = "central"
	KindCategory tree.Kind = "category"
	KindConcept  tree.Kind = "concept"
)

// PositionedNode is a placed node. Radius and Progress are only set by the
// radial view; Side only by the canopy view.
type PositionedNode struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     tree.Kind `json:"kind"`
	Depth    int       `json:"depth"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	ParentID string    `json:"parentId,omitempty"`
	Radius   float64   `json:"r,omitempty"`
	Progress *float64  `json:"progress,omitempty"`
	Side     int       `json:"side,omitempty"`
}

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Scale returns p * k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Bezier is a cubic curve from P0 to P3.
type Bezier struct {
	P0 Point `json:"p0"`
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
	P3 Point `json:"p3"`
}

// Line returns a degenerate cubic that draws a straight segment.
func Line(a, b Point) Bezier {
	return Bezier{P0: a, P1: a, P2: b, P3: b}
}

// At evaluates the curve at t in [0, 1].
func (b Bezier) At(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*b.P0.X + 3*u*u*t*b.P1.X + 3*u*t*t*b.P2.X + t*t*t*b.P3.X,
		Y: u*u*u*b.P0.Y + 3*u*u*t*b.P1.Y + 3*u*t*t*b.P2.Y + t*t*t*b.P3.Y,
	}
}

// Tangent returns the first derivative at t.
func (b Bezier) Tangent(t float64) Point {
	u := 1 - t
	return Point{
		X: 3*u*u*(b.P1.X-b.P0.X) + 6*u*t*(b.P2.X-b.P1.X) + 3*t*t*(b.P3.X-b.P2.X),
		Y: 3*u*u*(b.P1.Y-b.P0.Y) + 6*u*t*(b.P2.Y-b.P1.Y) + 3*t*t*(b.P3.Y-b.P2.Y),
	}
}

// Path renders the curve as SVG path data: "M x0,y0 C x1,y1 x2,y2 x3,y3".
func (b Bezier) Path() string {
	var sb strings.Builder
	sb.WriteString("M ")
	writePoint(&sb, b.P0)
	sb.WriteString(" C ")
	writePoint(&sb, b.P1)
	sb.WriteByte(' ')
	writePoint(&sb, b.P2)
	sb.WriteByte(' ')
	writePoint(&sb, b.P3)
	return sb.String()
}

func writePoint(sb *strings.Builder, p Point) {
	sb.WriteString(num(p.X))
	sb.WriteByte(',')
	sb.WriteString(num(p.Y))
}

// num formats v with the shortest representation that round-trips.
func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Link connects two placed nodes. Path is SVG path data; Curve carries the
// same geometry as control points for raster sinks.
type Link struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Path  string  `json:"path"`
	Curve Bezier  `json:"curve"`
	Width float64 `json:"width"`
}

func curveLink(from, to string, c Bezier, width float64) Link {
	return Link{From: from, To: to, Path: c.Path(), Curve: c, Width: width}
}

// Trunk is a decorative stroke that is not a parent→child link.
type Trunk struct {
	ID    string  `json:"id"`
	Path  string  `json:"path"`
	Curve Bezier  `json:"curve"`
	Width float64 `json:"width"`
}

// Result is the output of every strategy. Width and Height are the canvas
// size, never smaller than the requested viewport.
type Result struct {
	View    View             `json:"view"`
	Nodes   []PositionedNode `json:"nodes"`
	Links   []Link           `json:"links"`
	Trunks  []Trunk          `json:"trunks,omitempty"`
	Columns int              `json:"columns,omitempty"`
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
}

func emptyResult(width, height float64) Result {
	return Result{
		Nodes:  []PositionedNode{},
		Links:  []Link{},
		Width:  width,
		Height: height,
	}
}

// Node returns the placed node with id.
func (r Result) Node(id string) (PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Bounds returns the smallest rectangle containing every node box.
func (r Result) Bounds() (minX, minY, maxX, maxY float64) {
	if len(r.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = r.Nodes[0].X, r.Nodes[0].Y
	maxX, maxY = minX, minY
	for _, n := range r.Nodes {
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+NodeWidth)
		maxY = max(maxY, n.Y+NodeHeight)
	}
	return minX, minY, maxX, maxY
}
