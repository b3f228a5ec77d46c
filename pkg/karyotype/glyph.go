package karyotype

import (
	"fmt"
	"strconv"

	"github.com/karyoview/karyoview/pkg/surface"
)

// Attributes hosts and tests can query.
const (
	AttrTooltipText = "data-tooltip-text"
	AttrTooltipPath = "data-tooltip-path"
	AttrContig      = "data-contig"
)

// render builds a fresh <svg> for the current state and attaches it to the
// container. The tooltip overlay is appended last so it paints on top.
func (v *View) render() {
	svg := v.el("svg")
	svg.SetAttribute("width", itoa(v.scale.Width))
	svg.SetAttribute("height", itoa(v.scale.Height))
	v.root = svg

	x := 0
	for i := range v.ds.Contigs {
		v.drawContig(svg, &v.ds.Contigs[i], x)
		x += v.geom.GlyphWidth + v.geom.GlyphSeparation
	}
	if v.state.Mode != ModeGiesma {
		v.drawLegend(svg, x)
	}
	v.tip = v.newTooltip(svg)

	v.container.AppendChild(svg)
}

func (v *View) drawContig(svg surface.Element, c *Contig, x int) {
	g := v.geom
	glyphPx := v.scale.Pixels(c.Size)
	y1 := g.Height - g.CapSize - glyphPx
	y2 := g.Height - g.CapSize

	for _, lx := range []int{x, x + g.GlyphWidth} {
		line := v.el("line")
		line.SetAttribute("x1", itoa(lx))
		line.SetAttribute("x2", itoa(lx))
		line.SetAttribute("y1", itoa(y1))
		line.SetAttribute("y2", itoa(y2))
		line.SetAttribute("stroke", outlineStroke)
		svg.AppendChild(line)
	}

	svg.AppendChild(v.capPath(x, y1, -g.CapCurve))
	svg.AppendChild(v.capPath(x, y2, g.CapCurve))

	for _, iv := range c.Clusters(v.state.Mode) {
		svg.AppendChild(v.hitRect(c.Name, iv, x, y1))
	}

	if v.state.Mode == ModeGiesma {
		for _, b := range c.GiesmaBands {
			top := v.scale.Pixels(b.Start)
			rect := v.el("rect")
			rect.SetAttribute("x", itoa(x))
			rect.SetAttribute("y", itoa(g.Height-glyphPx+top))
			rect.SetAttribute("width", itoa(g.GlyphWidth))
			rect.SetAttribute("height", itoa(v.scale.Pixels(b.End)-top))
			rect.SetAttribute("fill", StainColor(b.ColorCode))
			svg.AppendChild(rect)
		}
	}
}

// capPath is a single quadratic curve across the glyph top or bottom.
func (v *View) capPath(x, y, curve int) surface.Element {
	w := v.geom.GlyphWidth
	p := v.el("path")
	p.SetAttribute("d", fmt.Sprintf("M %d,%d Q %d,%d,%d,%d", x, y, x+w/2, y+curve, x+w, y))
	p.SetAttribute("style", capStyle)
	return p
}

func (v *View) hitRect(contig string, iv Interval, x, top int) surface.Element {
	startY := v.scale.Pixels(iv.Start)
	endY := v.scale.Pixels(iv.End)

	fill := Unmapped
	if v.state.Mode != ModeGiesma {
		fill = v.state.Legend.ColorFor(iv.Count)
	}
	desc := Descriptor(contig, iv)

	rect := v.el("rect")
	rect.SetAttribute("x", itoa(x+1))
	rect.SetAttribute("y", itoa(top+startY))
	rect.SetAttribute("width", itoa(v.geom.GlyphWidth-2))
	rect.SetAttribute("height", itoa(endY-startY))
	rect.SetAttribute("fill", fill)
	rect.SetAttribute(AttrTooltipText, desc)
	rect.SetAttribute(AttrContig, contig)
	if v.staticTips {
		rect.SetAttribute(AttrTooltipPath, v.fittedBubble(desc))
	}
	v.bindTooltip(rect)
	return rect
}

// Descriptor is the tooltip text of a hit cluster.
func Descriptor(contig string, iv Interval) string {
	return contig + ":" + itoa(iv.Start) + "-" + itoa(iv.End) + " count:" + itoa(iv.Count)
}

// drawLegend draws the framed legend at x. A mask hides the frame behind the
// title.
func (v *View) drawLegend(svg surface.Element, x int) {
	g := v.geom
	top := g.Height - g.LegendHeight
	maskID := "legendmask-" + v.id

	mask := v.el("mask")
	mask.SetAttribute("id", maskID)
	mask.AppendChild(v.rect(x, top, g.LegendWidth, g.LegendHeight, "fill: white;"))
	mask.AppendChild(v.rect(x+10, top, g.LegendWidth-25, 20, "fill: black;"))
	svg.AppendChild(mask)

	frame := v.rect(x, top, g.LegendWidth, g.LegendHeight, "fill: white; stroke: "+legendStroke+";")
	frame.SetAttribute("rx", "8")
	frame.SetAttribute("ry", "8")
	frame.SetAttribute("mask", "url(#"+maskID+")")
	svg.AppendChild(frame)

	title := v.el("text")
	title.SetAttribute("x", itoa(x+14))
	title.SetAttribute("y", itoa(top+6))
	title.SetText(v.title)
	svg.AppendChild(title)

	y := top + 16
	for _, b := range v.state.Legend.Buckets {
		swatch := v.rect(x+20, y, g.SwatchSize, g.SwatchSize, "fill: "+b.Color+"; stroke: "+legendStroke+";")
		svg.AppendChild(swatch)

		label := v.el("text")
		label.SetAttribute("x", itoa(x+20+g.SwatchSize))
		label.SetAttribute("y", itoa(y+g.SwatchSize-2))
		label.SetText(": " + b.Label)
		svg.AppendChild(label)

		y += g.SwatchSize + g.SwatchGap
	}
}

func (v *View) rect(x, y, w, h int, style string) surface.Element {
	r := v.el("rect")
	r.SetAttribute("x", itoa(x))
	r.SetAttribute("y", itoa(y))
	r.SetAttribute("width", itoa(w))
	r.SetAttribute("height", itoa(h))
	r.SetAttribute("style", style)
	return r
}

func (v *View) el(tag string) surface.Element {
	return v.doc.CreateElement(surface.SVGNamespace, tag)
}

func itoa(i int) string { return strconv.Itoa(i) }
