// Package dot exports the concept tree as a Graphviz graph.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/conceptmap/pkg/progress"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

// Options configures DOT export.
type Options struct {
	// Report adds known/total to topic and subtopic labels.
	Report *progress.Report
	// Known marks known cards with a filled style.
	Known map[string]bool
	// IsCollapsed hides the children of collapsed nodes.
	IsCollapsed tree.CollapsedFunc
}

// ToDOT converts the visible tree to Graphviz DOT, laid out left to right.
func ToDOT(roots []tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges [][2]string
	tree.Walk(roots, func(n tree.Node, _ int, parentID string) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts), ", "))
		if parentID != "" {
			edges = append(edges, [2]string{parentID, n.ID})
		}
		return opts.IsCollapsed == nil || !opts.IsCollapsed(n.ID)
	})

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n tree.Node, report *progress.Report) string {
	if report == nil || n.Kind == tree.KindCard {
		return n.Label
	}
	p, ok := report.For(n.ID)
	if !ok {
		return n.Label
	}
	return fmt.Sprintf("%s\n%d/%d (%d%%)", n.Label, p.Known, p.Total, p.Percent())
}

func fmtAttrs(n tree.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Report))}
	switch n.Kind {
	case tree.KindTopic:
		attrs = append(attrs, "penwidth=2", "fontsize=16")
	case tree.KindCard:
		if opts.Known[n.ID] {
			attrs = append(attrs, "fillcolor=\"#d1fae5\"")
		}
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
