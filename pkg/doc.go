// Package pkg holds the karyoview libraries.
//
// # Overview
//
// Karyoview draws a genome as a karyotype: one rounded glyph per contig,
// scaled to its size, with hit clusters or Giesma staining bands painted
// along it and a binned legend for the counts. The libraries are:
//
//  1. [karyotype] - dataset model, scale, legend, glyphs, tooltip and the
//     interactive view with its mode controller
//  2. [surface] - the retained element tree the view draws into
//  3. [sink] - standalone SVG and HTML documents from a view
//  4. [pipeline] - load, validate, render and cache in one call
//  5. [cache], [io], [config] - storage, dataset sources, TOML settings
//  6. [errors], [httputil], [observability], [buildinfo] - ambient support
//
// # Data Flow
//
//	dataset JSON (file, directory or MongoDB)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [karyotype] package (view over a [surface] tree)
//	         ↓
//	    [sink] package (SVG, HTML)
//	         ↓
//	    [cache] package (file or Redis)
//
// # Quick Start
//
//	ds, _ := io.ImportJSON("genome.json")
//	doc := surface.NewTree()
//	v, _ := karyotype.Create(doc.CreateElement("", "div"), doc, ds)
//	v.SwitchVisualization(karyotype.ModeNrph)
//
// The command-line tool and HTTP server live under cmd/ and internal/.
package pkg
