// Package export renders lab output as standalone SVG images.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG draws every set braille dot of canvas as a circle, scale
// pixels apart, in the theme's primary colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil || scale <= 0 {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(canvas.DotWidth())*scale, float64(canvas.DotHeight())*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", theme.Primary)

	r := scale * 0.4
	for y := 0; y < canvas.DotHeight(); y++ {
		for x := 0; x < canvas.DotWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws world points (y up) as one polyline. Both axes share
// a scale so arcs keep their shape. The ground line y=0 is drawn when it
// lies inside the padded bounds.
func TrajectoryToSVG(points []mechanics.Vec2, width, height int, theme viz.Theme) string {
	if len(points) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	padX := math.Max((maxX-minX)*0.1, 0.5)
	padY := math.Max((maxY-minY)*0.1, 0.5)
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY

	w, h := float64(width), float64(height)
	scale := math.Min(w/(maxX-minX), h/(maxY-minY))
	offX := (w - (maxX-minX)*scale) / 2
	offY := (h - (maxY-minY)*scale) / 2
	toSVG := func(p mechanics.Vec2) (float64, float64) {
		return offX + (p.X-minX)*scale, offY + (maxY-p.Y)*scale
	}

	var sb strings.Builder
	header(&sb, w, h)

	if minY < 0 && maxY > 0 {
		_, gy := toSVG(mechanics.Vec2{})
		fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%.0f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			gy, w, gy, theme.Muted)
	}

	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", theme.Primary)
	for i, p := range points {
		x, y := toSVG(p)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
