// Package visualization renders visual scripts as static SVG images
// using the editor's canvas coordinates. It is a debugging aid for
// inspecting a graph outside the editor; it does not execute or
// compile anything.
package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/dreamengine-xyz/go-vscript/script"
)

const (
	nodeWidth  = 140.0
	nodeHeight = 48.0
	padding    = 60.0
)

// RenderSVG converts a visual script to an SVG document string.
// Nodes draw as rounded boxes at their editor positions; connections
// draw as lines from the source box to the target box. Synthetic
// subgraph connections ("<id>_then", "<id>_else", "<id>_body") render
// dashed so control-flow nesting is visible at a glance.
func RenderSVG(s *script.VisualScript) string {
	width, height := canvasSize(s)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height))
	b.WriteString(fmt.Sprintf(`  <title>%s</title>`+"\n", escape(s.Name)))

	// Connections first so boxes draw over them.
	for _, c := range s.Connections {
		src := s.NodeByID(c.Source)
		dst := s.NodeByID(c.Target)
		if src == nil || dst == nil {
			continue
		}
		dash := ""
		if isSubgraphHandle(c.Source, c.SourceHandle) {
			dash = ` stroke-dasharray="6,4"`
		}
		b.WriteString(fmt.Sprintf(
			`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="1.5"%s/>`+"\n",
			src.X+nodeWidth, src.Y+nodeHeight/2, dst.X, dst.Y+nodeHeight/2, dash))
	}

	for _, n := range s.Nodes {
		b.WriteString(fmt.Sprintf(
			`  <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="6" fill="%s" stroke="#333"/>`+"\n",
			n.X, n.Y, nodeWidth, nodeHeight, nodeFill(n.Type)))
		b.WriteString(fmt.Sprintf(
			`  <text x="%.1f" y="%.1f" font-size="11" font-family="monospace" text-anchor="middle">%s</text>`+"\n",
			n.X+nodeWidth/2, n.Y+18, escape(n.Type)))
		b.WriteString(fmt.Sprintf(
			`  <text x="%.1f" y="%.1f" font-size="10" font-family="monospace" text-anchor="middle" fill="#555">%s</text>`+"\n",
			n.X+nodeWidth/2, n.Y+34, escape(n.ID)))
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// SaveSVG renders a script and writes the SVG to a file.
func SaveSVG(s *script.VisualScript, filename string) error {
	return os.WriteFile(filename, []byte(RenderSVG(s)), 0644)
}

// canvasSize computes a bounding box that fits every node plus padding.
func canvasSize(s *script.VisualScript) (float64, float64) {
	maxX, maxY := 0.0, 0.0
	for _, n := range s.Nodes {
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}
	return maxX + nodeWidth + padding, maxY + nodeHeight + padding
}

// nodeFill picks a fill color by node namespace.
func nodeFill(nodeType string) string {
	switch {
	case strings.HasPrefix(nodeType, "event/"):
		return "#ffe0b2"
	case strings.HasPrefix(nodeType, "flow/"):
		return "#c8e6c9"
	case strings.HasPrefix(nodeType, "math/"):
		return "#bbdefb"
	case strings.HasPrefix(nodeType, "query/"), strings.HasPrefix(nodeType, "component/"):
		return "#e1bee7"
	default:
		return "#eeeeee"
	}
}

// isSubgraphHandle reports whether the handle is a synthetic subgraph
// port on the source node.
func isSubgraphHandle(source, handle string) bool {
	switch handle {
	case source + "_then", source + "_else", source + "_body":
		return true
	}
	return false
}

// escape performs minimal escaping for SVG text content.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
