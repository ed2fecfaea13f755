package layout

import (
	"math"

	"github.com/matzehuels/conceptmap/pkg/tree"
)

const (
	canopyMinW   = 900
	canopyMinH   = 600
	canopyPadY   = 56
	canopyTMin   = 0.22
	canopyTMax   = 0.92
	branchBase   = 180
	branchAmp    = 40
	elbowAt      = 0.55
	branchStroke = 7
	trunkWidth   = 14
)

// Canopy draws a single trunk across the canvas and hangs one leaf per
// subtopic off alternating sides of it. Each topic with leaves is placed on
// the trunk at the mean socket of its leaves, after all leaves, so every
// branch link starts at a placed node. Collapse state does not apply.
func Canopy(roots []tree.Node, width, height float64) Result {
	type leaf struct {
		topic int
		sub   tree.Node
	}
	var leaves []leaf
	for ti, t := range roots {
		for _, s := range t.Children {
			if s.Kind == tree.KindSubtopic {
				leaves = append(leaves, leaf{topic: ti, sub: s})
			}
		}
	}

	w, h := max(width, canopyMinW), max(height, canopyMinH)
	if len(leaves) == 0 {
		return emptyResult(w, h)
	}

	trunk := Bezier{
		P0: Point{w * 0.15, h - canopyPadY},
		P1: Point{w * 0.28, h * 0.60},
		P2: Point{w * 0.45, h * 0.42},
		P3: Point{w * 0.58, h * 0.18},
	}

	res := emptyResult(w, h)
	res.Trunks = []Trunk{{ID: "trunk", Path: trunk.Path(), Curve: trunk, Width: trunkWidth}}

	sockets := make([]float64, len(roots))
	counts := make([]int, len(roots))

	step := (canopyTMax - canopyTMin) / float64(len(leaves))
	for i, l := range leaves {
		topicID := roots[l.topic].ID
		t := canopyTMin + step*(float64(i)+0.5)
		sockets[l.topic] += t
		counts[l.topic]++
		p := trunk.At(t)
		side := 1.0
		if i%2 != 0 {
			side = -1
		}
		n := normal(trunk.Tangent(t), side)
		seed := Hash(l.sub.ID)

		length := branchBase + SeededJitter(seed+1, branchAmp)
		anchor := p.Add(Point{SeededJitter(seed+2, 8), SeededJitter(seed+3, 8)})
		center := anchor.Add(n.Scale(length)).Add(Point{0, SeededJitter(seed+4, 10)})
		elbow := anchor.Add(n.Scale(length * elbowAt)).Add(Point{SeededJitter(seed+5, 22), SeededJitter(seed+6, 16)})

		res.Nodes = append(res.Nodes, PositionedNode{
			ID:       l.sub.ID,
			Label:    l.sub.Label,
			Kind:     tree.KindSubtopic,
			Depth:    1,
			X:        center.X,
			Y:        center.Y,
			ParentID: topicID,
			Side:     int(side),
		})
		branch := Bezier{
			P0: anchor,
			P1: elbow,
			P2: Point{center.X - side*40, center.Y},
			P3: Point{center.X - side*12, center.Y},
		}
		res.Links = append(res.Links, curveLink(topicID, l.sub.ID, branch, branchStroke))
	}

	for i, t := range roots {
		if counts[i] == 0 {
			continue
		}
		p := trunk.At(sockets[i] / float64(counts[i]))
		res.Nodes = append(res.Nodes, PositionedNode{
			ID:    t.ID,
			Label: t.Label,
			Kind:  tree.KindTopic,
			X:     p.X,
			Y:     p.Y,
		})
	}
	return res
}

// normal is the unit perpendicular of v on the given side.
func normal(v Point, side float64) Point {
	n := math.Hypot(v.X, v.Y)
	if n == 0 {
		n = 1
	}
	return Point{side * (-v.Y / n), side * (v.X / n)}
}
