// Package karyotype renders a genome karyotype onto a drawing surface.
//
// # Overview
//
// A karyotype is drawn as a row of cylinder glyphs, one per contig, whose
// heights are proportional to sequence length. Each glyph is overlaid with
// one of three visualizations:
//
//   - [ModeAll]: hit clusters colored by magnitude
//   - [ModeNrph]: non-redundant profile hit clusters colored by magnitude
//   - [ModeGiesma]: cytogenetic staining bands in the fixed Giesma palette
//
// Hit modes also draw a legend panel. Every hit rectangle carries a tooltip
// descriptor shown in a speech-bubble overlay when the pointer moves over it.
//
// # Usage
//
//	doc := surface.NewTree()
//	container := doc.CreateElement("", "div")
//	v, err := karyotype.Create(container, doc, ds)
//	if err != nil {
//	    return err
//	}
//	mode, err := v.SwitchVisualization(karyotype.ModeGiesma)
//	// mode is ModeAll when ds carries no staining bands.
//
// # Pipeline
//
// [Create] summarizes the dataset once ([Summarize]), fixes the pixel scale
// ([NewScale]) and switches to [ModeAll]. Every later switch discards the
// previous surface element, recomputes the legend ([ComputeLegend]) and
// redraws all glyphs. Summary and scale never change after construction.
//
// # Geometry
//
// The pure pieces ([ComputeLegend], [NewScale], [BubblePath]) have no
// dependency on the surface and can be used on their own.
//
// A [View] is not safe for concurrent use.
package karyotype
