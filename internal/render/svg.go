// Package render draws a laid-out radar as a standalone SVG document.
//
// Layout coordinates are y-up with the origin at the bottom left of the
// radar's bounding square; SVG is y-down, so every y is mirrored about the
// centre before drawing.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/internal/pipeline"
)

// Margin is the space around the radar for the title and quadrant labels.
const Margin = 60.0

const blipRadius = 9.0

// quadrantColors are indexed by quadrant position.
var quadrantColors = [...]string{"#3db5be", "#83ad78", "#e88744", "#8d2145"}

// ringFills shade bands from the centre outwards.
var ringFills = [...]string{"#e4e4e4", "#ececec", "#f2f2f2", "#f8f8f8"}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML makes s safe for SVG text and attribute values.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// SVG writes the radar to w.
func SVG(w io.Writer, res *pipeline.Result, title string) error {
	var sb strings.Builder
	g := res.Geometry
	size := 2*g.Radius + 2*Margin

	// Local drawing helpers: translate layout coordinates into the canvas.
	px := func(x float64) float64 { return x - g.CenterX + g.Radius + Margin }
	py := func(y float64) float64 { return g.CenterY - y + g.Radius + Margin }
	cx, cy := px(g.CenterX), py(g.CenterY)

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="Arial, Helvetica, sans-serif">`+"\n",
		size, size, size, size)
	fmt.Fprintf(&sb, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	if title != "" {
		fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="22" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
			cx, Margin/2, escapeXML(title))
	}

	// Bands, outermost first so inner circles paint over them
	for order := g.MaxRings - 1; order >= 0; order-- {
		band := g.BandFor(order)
		fmt.Fprintf(&sb, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#ffffff" stroke-width="2"/>`+"\n",
			cx, cy, band.Outer, ringFills[order%len(ringFills)])
	}

	// Axes
	fmt.Fprintf(&sb, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffffff" stroke-width="6"/>`+"\n",
		cx-g.Radius, cy, cx+g.Radius, cy)
	fmt.Fprintf(&sb, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffffff" stroke-width="6"/>`+"\n",
		cx, cy-g.Radius, cx, cy+g.Radius)

	// Ring labels along the upper vertical axis
	for _, ring := range res.Radar.Rings() {
		band := g.BandFor(ring.Order)
		fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="12" fill="#555555" text-anchor="middle">%s</text>`+"\n",
			cx, cy-(band.Inner+band.Outer)/2, escapeXML(ring.Name))
	}

	// Quadrant labels at the outer corner of each sector
	for i, q := range res.Radar.Quadrants() {
		sector, err := layout.SectorFor(i)
		if err != nil {
			return err
		}
		mid := sector.Start + (sector.End-sector.Start)/2
		lx := cx + math.Cos(mid)*g.Radius*1.05
		ly := cy - math.Sin(mid)*g.Radius*1.05
		anchor := "start"
		if math.Cos(mid) < 0 {
			anchor = "end"
		}
		fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="16" font-weight="bold" fill="%s" text-anchor="%s">%s</text>`+"\n",
			lx, ly, quadrantColors[i%len(quadrantColors)], anchor, escapeXML(q.Name))
	}

	// Blips: new ones as triangles, the rest as circles
	for _, p := range res.Placements {
		x, y := px(p.X), py(p.Y)
		color := quadrantColors[p.QuadrantIndex%len(quadrantColors)]

		fmt.Fprintf(&sb, `  <g class="blip" id="blip-%d">`+"\n", p.Number)
		fmt.Fprintf(&sb, `    <title>%s</title>`+"\n", escapeXML(p.Blip.Name))
		if p.Blip.IsNew {
			fmt.Fprintf(&sb, `    <polygon points="%s" fill="%s"/>`+"\n", triangle(x, y, blipRadius+2), color)
		} else {
			fmt.Fprintf(&sb, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x, y, blipRadius, color)
		}
		fmt.Fprintf(&sb, `    <text x="%.1f" y="%.1f" font-size="9" fill="#ffffff" text-anchor="middle">%d</text>`+"\n",
			x, y+3, p.Number)
		sb.WriteString("  </g>\n")
	}

	sb.WriteString("</svg>\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// triangle returns the points of an upward triangle inscribed in a circle
// of radius r around (x, y).
func triangle(x, y, r float64) string {
	pts := make([]string, 0, 3)
	for _, deg := range []float64{-90, 30, 150} {
		a := deg * math.Pi / 180
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x+r*math.Cos(a), y+r*math.Sin(a)))
	}
	return strings.Join(pts, " ")
}
