package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/progress"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	paint
	viewport *layout.Viewport
}

// WithProgress colours topics and subtopics by their aggregated progress.
func WithProgress(r progress.Report) SVGOption { return func(s *svgRenderer) { s.report = r } }

// WithKnown colours known cards.
func WithKnown(known map[string]bool) SVGOption { return func(s *svgRenderer) { s.known = known } }

// WithTitle adds a document title.
func WithTitle(t string) SVGOption { return func(s *svgRenderer) { s.title = t } }

// WithViewport applies a pan/zoom transform to the drawing.
func WithViewport(v *layout.Viewport) SVGOption { return func(s *svgRenderer) { s.viewport = v } }

// RenderSVG draws res as a standalone SVG document.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := px(res.Width), px(res.Height)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Rect(0, 0, w, h, "fill:"+css(colorBackdrop))

	if r.viewport != nil {
		canvas.Gtransform(r.viewport.Transform())
	}

	if res.View == layout.ViewTrunk {
		canvas.Rect(0, h-26, w, 26, "fill:"+css(colorGround))
	}
	for _, t := range res.Trunks {
		canvas.Path(t.Path, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round", css(colorBranch), t.Width))
	}
	for _, l := range res.Links {
		canvas.Path(l.Path, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round", css(linkColor(res.View)), l.Width))
	}
	for _, n := range res.Nodes {
		r.node(canvas, n)
	}

	if r.viewport != nil {
		canvas.Gend()
	}
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) node(canvas *svg.SVG, n layout.PositionedNode) {
	canvas.Gid("node-" + n.ID)
	fill := css(r.fill(n))
	stroke := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", fill, css(colorStroke))

	label := truncate(n.Label, labelRunes)
	caption := r.caption(n)

	if n.Radius > 0 {
		canvas.Circle(px(n.X), px(n.Y), px(n.Radius), stroke)
		canvas.Text(px(n.X), px(n.Y+n.Radius+14), label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:middle", css(colorText)))
		if caption != "" {
			canvas.Text(px(n.X), px(n.Y+4), caption,
				fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif;text-anchor:middle", css(colorText)))
		}
		canvas.Gend()
		return
	}

	x, y, w, h := box(n)
	canvas.Roundrect(px(x), px(y), px(w), px(h), 8, 8, stroke)
	textY := y + h/2 + 4
	if caption != "" {
		textY = y + 15
		canvas.Text(px(x+10), px(y+29), caption,
			fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif", css(colorSubtle)))
	}
	canvas.Text(px(x+10), px(textY), label,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", css(colorText)))
	canvas.Gend()
}

func linkColor(v layout.View) color.RGBA {
	switch v {
	case layout.ViewTrunk, layout.ViewCanopy:
		return colorBranch
	}
	return colorLink
}

func px(v float64) int { return int(math.Round(v)) }
