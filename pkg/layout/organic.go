package layout

import (
	"math"

	"github.com/matzehuels/conceptmap/pkg/tree"
)

const (
	organicPadX     = 40
	organicPadY     = 60
	organicUnitGap  = 230
	organicLevelGap = 150
	groundHeight    = 26

	swayTopic  = 80
	swayOther  = 60
	liftBase   = 80
	liftAmp    = 40
	controlAmp = 18

	strokeTopic = 5.5
	strokeOther = 3.5
	trunkStroke = 7
)

// Organic lays out roots bottom-up: topics sit near the ground line and
// deeper levels grow upward. Leaves take consecutive x-units in traversal
// order and every parent is centred over the span of its direct children.
// Callers pass the already pruned visible tree. Nodes are returned in
// post-order.
func Organic(roots []tree.Node, width, height float64) Result {
	if len(roots) == 0 {
		return emptyResult(width, height)
	}

	nodes, units := assignUnits(roots)

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, u := range units {
		minX = min(minX, u)
		maxX = max(maxX, u)
	}
	span := max(1, maxX-minX)
	canvasW := max(width, 2*organicPadX+span*organicUnitGap+1)
	canvasH := max(height, 2*organicPadY+2*organicLevelGap+1)

	for i := range nodes {
		nodes[i].X = organicPadX + (units[i]-minX)*organicUnitGap
		nodes[i].Y = canvasH - organicPadY - float64(nodes[i].Depth)*organicLevelGap
	}

	return Result{
		Nodes:  nodes,
		Links:  links(nodes, organicCurve, organicStroke),
		Trunks: trunks(nodes, canvasH),
		Width:  canvasW,
		Height: canvasH,
	}
}

// assignUnits returns nodes in post-order with their x-units aligned by index.
func assignUnits(roots []tree.Node) ([]PositionedNode, []float64) {
	var (
		nodes []PositionedNode
		units []float64
		next  float64
	)
	var visit func(n tree.Node, depth int, parentID string) float64
	visit = func(n tree.Node, depth int, parentID string) float64 {
		var unit float64
		if len(n.Children) == 0 {
			unit = next
			next++
		} else {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, c := range n.Children {
				u := visit(c, depth+1, n.ID)
				lo = min(lo, u)
				hi = max(hi, u)
			}
			unit = (lo + hi) / 2
		}
		nodes = append(nodes, PositionedNode{
			ID:       n.ID,
			Label:    n.Label,
			Kind:     n.Kind,
			Depth:    depth,
			ParentID: parentID,
		})
		units = append(units, unit)
		return unit
	}
	for _, r := range roots {
		visit(r, 0, "")
	}
	return nodes, units
}

// organicCurve bends a branch from the parent's right edge to the child's
// top edge. All offsets derive from the pair's hash.
func organicCurve(from, to PositionedNode) Bezier {
	seed := HashPair(from.ID, to.ID)
	sway := float64(swayOther)
	if from.Kind == tree.KindTopic {
		sway = swayTopic
	}

	cx := (from.X+to.X)/2 + SeededJitter(seed+1, sway)
	liftParent := liftBase + math.Abs(SeededJitter(seed+2, liftAmp))
	liftChild := liftBase + math.Abs(SeededJitter(seed+3, liftAmp))

	x1, y1 := from.X+NodeWidth, from.Y-10
	x2, y2 := to.X+10, to.Y+28

	return Bezier{
		P0: Point{x1, y1},
		P1: Point{cx + SeededJitter(seed+4, controlAmp), y1 - liftParent},
		P2: Point{cx + SeededJitter(seed+5, controlAmp), y2 + liftChild},
		P3: Point{x2, y2},
	}
}

func organicStroke(from PositionedNode) float64 {
	if from.Kind == tree.KindTopic {
		return strokeTopic
	}
	return strokeOther
}

// trunks draws one stroke per topic from the ground line up to the topic box.
func trunks(nodes []PositionedNode, canvasH float64) []Trunk {
	ground := canvasH - groundHeight
	var out []Trunk
	for _, n := range nodes {
		if n.Kind != tree.KindTopic {
			continue
		}
		x, top := n.X+NodeWidth, n.Y+30
		c := Bezier{
			P0: Point{x, ground},
			P1: Point{x - 40, ground - 60},
			P2: Point{x - 20, top + 60},
			P3: Point{x, top},
		}
		out = append(out, Trunk{ID: n.ID, Path: c.Path(), Curve: c, Width: trunkStroke})
	}
	return out
}
