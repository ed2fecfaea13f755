package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/progress"
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	paint
	scale float64
}

// WithPNGProgress colours topics and subtopics by their aggregated progress.
func WithPNGProgress(r progress.Report) PNGOption { return func(p *pngRenderer) { p.report = r } }

// WithPNGKnown colours known cards.
func WithPNGKnown(known map[string]bool) PNGOption { return func(p *pngRenderer) { p.known = known } }

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(p *pngRenderer) {
		if s > 0 {
			p.scale = s
		}
	}
}

// RenderPNG rasterises res.
func RenderPNG(res layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := max(px(res.Width*r.scale), 1), max(px(res.Height*r.scale), 1)
	dc := gg.NewContext(w, h)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineCapRound()

	if res.View == layout.ViewTrunk {
		dc.SetColor(colorGround)
		dc.DrawRectangle(0, res.Height-26, res.Width, 26)
		dc.Fill()
	}
	for _, t := range res.Trunks {
		stroke(dc, t.Curve, t.Width, colorBranch)
	}
	for _, l := range res.Links {
		stroke(dc, l.Curve, l.Width, linkColor(res.View))
	}
	for _, n := range res.Nodes {
		r.node(dc, n)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func stroke(dc *gg.Context, c layout.Bezier, width float64, col color.Color) {
	dc.SetColor(col)
	dc.SetLineWidth(width)
	dc.NewSubPath()
	dc.MoveTo(c.P0.X, c.P0.Y)
	dc.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	dc.Stroke()
}

func (r pngRenderer) node(dc *gg.Context, n layout.PositionedNode) {
	label := truncate(n.Label, labelRunes)
	caption := r.caption(n)

	if n.Radius > 0 {
		dc.SetColor(r.fill(n))
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(label, n.X, n.Y+n.Radius+12, 0.5, 0.5)
		if caption != "" {
			dc.DrawStringAnchored(caption, n.X, n.Y, 0.5, 0.5)
		}
		return
	}

	x, y, w, h := box(n)
	dc.SetColor(r.fill(n))
	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.Fill()
	dc.SetColor(colorStroke)
	dc.SetLineWidth(1.2)
	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.Stroke()

	dc.SetColor(colorText)
	if caption == "" {
		dc.DrawStringAnchored(label, x+10, y+h/2, 0, 0.5)
		return
	}
	dc.DrawStringAnchored(label, x+10, y+11, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(caption, x+10, y+26, 0, 0.5)
}
