// Package sink turns live karyotype views into documents.
//
// # SVG Output
//
// [RenderSVG] serializes a view's <svg> element. With [WithScript] the SVG
// carries a small script that drives the same speech-bubble tooltip in a
// browser, using the bubble paths the view precomputed for every hit
// rectangle (see [karyotype.WithStaticTooltips]):
//
//	v, _, err := sink.NewView(ds, karyotype.ModeNrph, karyotype.WithStaticTooltips())
//	svg := sink.RenderSVG(v, sink.WithScript())
//
// # HTML Output
//
// [RenderHTML] wraps one rendering per mode in a standalone page with a
// button per mode ("All Hits", "NRPH Hits", "Giesma"). Buttons swap the
// visible rendering; the tooltip script is shared.
package sink
