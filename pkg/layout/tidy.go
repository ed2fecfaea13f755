package layout

import (
	"math"

	"github.com/matzehuels/conceptmap/pkg/tree"
)

const (
	tidyPadX     = 24
	tidyPadY     = 40
	tidyMinGap   = 260
	tidyMinUsedH = 90
	tidyColWidth = 320
	tidyMinH     = 360
	tidyStroke   = 2
)

// Tidy places visible nodes in one column per depth, spreading each column
// evenly over the viewport height. Children of collapsed nodes are skipped.
// Nodes are returned in depth-first visit order.
func Tidy(roots []tree.Node, isCollapsed tree.CollapsedFunc, width, height float64) Result {
	if len(roots) == 0 {
		return emptyResult(width, height)
	}

	nodes := visible(roots, isCollapsed)

	var buckets [][]int
	for i, n := range nodes {
		for len(buckets) <= n.Depth {
			buckets = append(buckets, nil)
		}
		buckets[n.Depth] = append(buckets[n.Depth], i)
	}

	columns := len(buckets)
	colGap := max(tidyMinGap, math.Floor(width/float64(max(columns, 1))))
	usableH := max(height-2*tidyPadY, tidyMinUsedH)

	for depth, bucket := range buckets {
		step := 0.0
		if len(bucket) > 1 {
			step = usableH / float64(len(bucket)-1)
		}
		for i, idx := range bucket {
			nodes[idx].X = tidyPadX + float64(depth)*colGap
			if len(bucket) > 1 {
				nodes[idx].Y = tidyPadY + float64(i)*step
			} else {
				nodes[idx].Y = tidyPadY + usableH/2
			}
		}
	}

	return Result{
		Nodes:   nodes,
		Links:   links(nodes, tidyCurve, fixedStroke(tidyStroke)),
		Columns: columns,
		Width:   max(width, float64(columns*tidyColWidth)),
		Height:  max(height, tidyMinH),
	}
}

func tidyCurve(from, to PositionedNode) Bezier {
	x1, y1 := from.X+NodeWidth, from.Y
	x2, y2 := to.X, to.Y
	mx := x1 + (x2-x1)*0.5
	return Bezier{
		P0: Point{x1, y1},
		P1: Point{mx, y1},
		P2: Point{mx, y2},
		P3: Point{x2, y2},
	}
}

// visible flattens the pruned tree in pre-order with depth and parent set.
func visible(roots []tree.Node, isCollapsed tree.CollapsedFunc) []PositionedNode {
	nodes := []PositionedNode{}
	tree.Walk(roots, func(n tree.Node, depth int, parentID string) bool {
		nodes = append(nodes, PositionedNode{
			ID:       n.ID,
			Label:    n.Label,
			Kind:     n.Kind,
			Depth:    depth,
			ParentID: parentID,
		})
		return isCollapsed == nil || !isCollapsed(n.ID)
	})
	return nodes
}

// links emits one link per node with a placed parent, in node order.
func links(nodes []PositionedNode, curve func(from, to PositionedNode) Bezier, stroke func(from PositionedNode) float64) []Link {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		byID[n.ID] = i
	}
	out := []Link{}
	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		pi, ok := byID[n.ParentID]
		if !ok {
			continue
		}
		out = append(out, curveLink(n.ParentID, n.ID, curve(nodes[pi], n), stroke(nodes[pi])))
	}
	return out
}

func fixedStroke(w float64) func(PositionedNode) float64 {
	return func(PositionedNode) float64 { return w }
}
