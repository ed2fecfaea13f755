package sink

import (
	"fmt"
	"image/color"
	"math"

	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/progress"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

var (
	colorBackdrop = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorGround   = color.RGBA{0x05, 0x96, 0x69, 0x66}
	colorLink     = color.RGBA{0xcb, 0xd5, 0xe1, 0xff}
	colorBranch   = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	colorStroke   = color.RGBA{0x33, 0x41, 0x55, 0xff}
	colorText     = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colorSubtle   = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	colorKnown    = color.RGBA{0xd1, 0xfa, 0xe5, 0xff}
	colorUnknown  = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
)

var levelColors = map[progress.Level]color.RGBA{
	progress.LevelComplete: {0x10, 0xb9, 0x81, 0xff},
	progress.LevelHigh:     {0x84, 0xcc, 0x16, 0xff},
	progress.LevelMedium:   {0xf5, 0x9e, 0x0b, 0xff},
	progress.LevelLow:      {0xf9, 0x73, 0x16, 0xff},
	progress.LevelMinimal:  {0xe2, 0xe8, 0xf0, 0xff},
}

// LevelColor returns the fill used for a progress bucket.
func LevelColor(l progress.Level) color.RGBA {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return levelColors[progress.LevelMinimal]
}

func css(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

// paint holds the data shared by every sink to colour and caption nodes.
type paint struct {
	report progress.Report
	known  map[string]bool
	title  string
}

func (p paint) fill(n layout.PositionedNode) color.RGBA {
	switch {
	case n.Progress != nil:
		return LevelColor(progress.LevelFor(int(math.Round(*n.Progress))))
	case n.Kind == tree.KindCard:
		if p.known[n.ID] {
			return colorKnown
		}
		return colorUnknown
	default:
		if pair, ok := p.report.For(n.ID); ok {
			return LevelColor(pair.Level())
		}
		return colorUnknown
	}
}

// caption is the secondary line under a node label, if any.
func (p paint) caption(n layout.PositionedNode) string {
	switch {
	case n.Progress != nil:
		return fmt.Sprintf("%.0f%%", *n.Progress)
	case n.Kind == tree.KindCard:
		if p.known[n.ID] {
			return "known"
		}
		return ""
	default:
		if pair, ok := p.report.For(n.ID); ok {
			return fmt.Sprintf("%d/%d · %d%%", pair.Known, pair.Total, pair.Percent())
		}
		return ""
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// box is the node rectangle relative to its anchor point.
func box(n layout.PositionedNode) (x, y, w, h float64) {
	return n.X - 10, n.Y - 18, layout.NodeWidth + 20, layout.NodeHeight
}

const labelRunes = 22
