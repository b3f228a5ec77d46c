package karyotype

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/karyoview/karyoview/pkg/surface"
)

// chr1Dataset is the single-contig dataset whose geometry is worked out by
// hand: 280px of glyph for 1000bp, so 0.28px per base pair.
func chr1Dataset() *Dataset {
	return &Dataset{Contigs: []Contig{{
		Name:            "chr1",
		Size:            1000,
		HitClusters:     []Interval{{100, 200, 5}, {300, 400, 50}},
		NrphHitClusters: []Interval{},
	}}}
}

func stainedDataset() *Dataset {
	return &Dataset{Contigs: []Contig{
		{
			Name:            "chr1",
			Size:            2000,
			HitClusters:     []Interval{{100, 300, 12}, {900, 1000, 40}},
			NrphHitClusters: []Interval{{100, 300, 3}},
			GiesmaBands:     []Band{{1, 500, 1}, {501, 900, 8}, {901, 1000, 0}},
		},
		{
			Name:            "chr2",
			Size:            1000,
			HitClusters:     []Interval{{10, 20, 90}},
			NrphHitClusters: []Interval{{10, 20, 9}},
		},
	}}
}

type harness struct {
	doc       *surface.Tree
	container surface.Element
	view      *View
	selected  []string
}

func newHarness(t *testing.T, ds *Dataset, opts ...Option) *harness {
	t.Helper()
	h := &harness{doc: surface.NewTree()}
	h.container = h.doc.CreateElement("", "div")
	opts = append([]Option{
		WithID("test"),
		WithLogger(log.New(io.Discard)),
		WithSelectHandler(func(d string) { h.selected = append(h.selected, d) }),
	}, opts...)
	v, err := Create(h.container, h.doc, ds, opts...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h.view = v
	return h
}

func attr(t *testing.T, el surface.Element, name string) string {
	t.Helper()
	v, ok := el.Attribute(name)
	if !ok {
		t.Fatalf("<%s> has no %s attribute", el.Tag(), name)
	}
	return v
}
