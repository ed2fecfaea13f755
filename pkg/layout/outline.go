package layout

import "github.com/matzehuels/conceptmap/pkg/tree"

const (
	outlinePadX   = 24
	outlinePadY   = 40
	outlineIndent = 28
	outlineRow    = 36
	outlineStroke = 1.5
	outlineMinW   = 480
)

// Outline places visible nodes as an indented list, one row each, in
// depth-first order.
func Outline(roots []tree.Node, isCollapsed tree.CollapsedFunc, width, height float64) Result {
	if len(roots) == 0 {
		return emptyResult(width, height)
	}

	nodes := visible(roots, isCollapsed)
	maxDepth := 0
	for i := range nodes {
		nodes[i].X = outlinePadX + float64(nodes[i].Depth)*outlineIndent
		nodes[i].Y = outlinePadY + float64(i)*outlineRow
		maxDepth = max(maxDepth, nodes[i].Depth)
	}

	return Result{
		Nodes:  nodes,
		Links:  links(nodes, outlineCurve, fixedStroke(outlineStroke)),
		Width:  max(width, outlinePadX*2+float64(maxDepth)*outlineIndent+outlineMinW),
		Height: max(height, outlinePadY*2+float64(len(nodes))*outlineRow),
	}
}

// outlineCurve is an elbow from under the parent's marker to the child's left edge.
func outlineCurve(from, to PositionedNode) Bezier {
	x1, y1 := from.X+10, from.Y+outlineRow/2
	x2, y2 := to.X, to.Y+outlineRow/2
	return Bezier{
		P0: Point{x1, y1},
		P1: Point{x1, y2},
		P2: Point{x1, y2},
		P3: Point{x2, y2},
	}
}
