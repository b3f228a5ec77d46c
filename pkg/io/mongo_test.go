package io

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

func TestDatasetDocRoundTrip(t *testing.T) {
	want := sampleDataset()
	want.RemainingGenomeContig = &karyotype.Contig{
		Name:            "rest",
		Size:            300,
		HitClusters:     []karyotype.Interval{},
		NrphHitClusters: []karyotype.Interval{},
	}

	raw, err := bson.Marshal(newDatasetDoc("hg38", want))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc datasetDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Name != "hg38" {
		t.Errorf("name = %q, want hg38", doc.Name)
	}

	got, err := doc.dataset()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestDatasetDocBadTriple(t *testing.T) {
	doc := datasetDoc{Contigs: []contigDoc{{Name: "chr1", Size: 10, HitClusters: [][]int{{1, 2}}}}}
	if _, err := doc.dataset(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}

	doc = datasetDoc{Contigs: []contigDoc{{Name: "chr1", Size: 10, GiesmaBands: [][]int{{1, 2, 3, 4}}}}}
	if _, err := doc.dataset(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("band err = %v, want INVALID_INPUT", err)
	}
}
