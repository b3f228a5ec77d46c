package karyotype_test

import (
	"fmt"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/surface"
)

func ExampleCreate() {
	ds := &karyotype.Dataset{Contigs: []karyotype.Contig{{
		Name:        "chr1",
		Size:        1000,
		HitClusters: []karyotype.Interval{{Start: 100, End: 200, Count: 5}},
	}}}

	doc := surface.NewTree()
	container := doc.CreateElement("", "div")
	v, err := karyotype.Create(container, doc, ds, karyotype.WithID("demo"))
	if err != nil {
		panic(err)
	}

	rect := v.HitRects()[0]
	y, _ := rect.Attribute("y")
	fmt.Println("mode:", v.CurrentMode())
	fmt.Println("width:", v.Scale().Width)
	fmt.Println("rect y:", y)
	// Output:
	// mode: all
	// width: 196
	// rect y: 38
}

func ExampleView_SwitchVisualization() {
	ds := &karyotype.Dataset{Contigs: []karyotype.Contig{{Name: "chr1", Size: 1000}}}

	doc := surface.NewTree()
	v, _ := karyotype.Create(doc.CreateElement("", "div"), doc, ds, karyotype.WithID("demo"))

	// No staining bands, so Giesma falls back to all hits.
	mode, _ := v.SwitchVisualization(karyotype.ModeGiesma)
	fmt.Println(mode, v.State().FellBack())
	// Output:
	// all true
}

func ExampleComputeLegend() {
	l := karyotype.ComputeLegend(50, karyotype.DefaultLegendColors)
	for _, b := range l.Buckets[:3] {
		fmt.Println(b.Color, b.Label)
	}
	fmt.Println(l.ColorFor(50))
	// Output:
	// #fff 0
	// #3288bd 1-7
	// #66c2a5 8-14
	// #d53e4f
}

func ExampleBubblePath() {
	fmt.Println(karyotype.BubblePath(30, 25, 40, 5, 5, 5, 5))
	// Output:
	// M 10,30 V 25 L 5,25 Q 0,25,0,20 V 5 Q 0,0,5,0 H 35 Q 40,0,40,5 V 20 Q 40,25,35,25 H 15 L 10,30 z
}
