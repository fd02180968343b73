// Package export writes recorded runs in formats other tools can open.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/boxdrop/internal/headless"
)

// HeightSVG plots one mesh's height against time. It returns an empty string
// when the mesh has fewer than two samples.
func HeightSVG(samples []headless.Sample, mesh string, width, height int, stroke string) string {
	var ts, ys []float64
	for _, s := range samples {
		if s.Mesh == mesh {
			ts = append(ts, s.Time)
			ys = append(ys, s.Position.Y)
		}
	}
	if len(ts) < 2 {
		return ""
	}

	minT, maxT := bounds(ts)
	minY, maxY := bounds(ys)
	minY = min(minY, 0)
	rangeT := maxT - minT
	rangeY := maxY - minY
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// floor line
	floor := float64(height) - (0-minY)/rangeY*float64(height)
	fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#1a801a" stroke-width="1"/>
`, floor, width, floor)

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i := range ts {
		x := (ts[i] - minT) / rangeT * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

// WriteHeightSVG is HeightSVG written to w.
func WriteHeightSVG(w io.Writer, samples []headless.Sample, mesh string, width, height int) error {
	svg := HeightSVG(samples, mesh, width, height, "#cc3333")
	if svg == "" {
		return fmt.Errorf("mesh %q has fewer than two samples", mesh)
	}
	_, err := io.WriteString(w, svg)
	return err
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
