package io

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

const sampleJSON = `{
  "singleton_contigs": [
    {"name": "chr1", "size": 2000, "hit_clusters": [[100, 300, 12]], "nrph_hit_clusters": [[100, 300, 3]], "giesma_bands": [[1, 500, 1]]},
    {"name": "chr2", "size": 1000, "hit_clusters": [], "nrph_hit_clusters": []}
  ]
}`

func sampleDataset() *karyotype.Dataset {
	return &karyotype.Dataset{Contigs: []karyotype.Contig{
		{
			Name:            "chr1",
			Size:            2000,
			HitClusters:     []karyotype.Interval{{Start: 100, End: 300, Count: 12}},
			NrphHitClusters: []karyotype.Interval{{Start: 100, End: 300, Count: 3}},
			GiesmaBands:     []karyotype.Band{{Start: 1, End: 500, ColorCode: 1}},
		},
		{Name: "chr2", Size: 1000, HitClusters: []karyotype.Interval{}, NrphHitClusters: []karyotype.Interval{}},
	}}
}

func TestReadJSON(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(ds, sampleDataset()) {
		t.Errorf("ReadJSON() = %+v, want %+v", ds, sampleDataset())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"malformed", `{"singleton_contigs": [`, errors.ErrCodeInvalidInput},
		{"wrong type", `{"singleton_contigs": {}}`, errors.ErrCodeInvalidInput},
		{"short triple", `{"singleton_contigs": [{"name": "a", "size": 5, "hit_clusters": [[1, 2]]}]}`, errors.ErrCodeInvalidInput},
		{"empty", `{"singleton_contigs": []}`, errors.ErrCodeInvalidInput},
		{"zero size", `{"singleton_contigs": [{"name": "a", "size": 0}]}`, errors.ErrCodeInvalidInput},
		{"unnamed", `{"singleton_contigs": [{"size": 5}]}`, errors.ErrCodeInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q (%v), want %q", got, err, tt.wantCode)
			}
		})
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(sampleDataset(), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !reflect.DeepEqual(got, sampleDataset()) {
		t.Errorf("round trip = %+v", got)
	}
}

func TestWriteJSONTriples(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleDataset(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"singleton_contigs"`, `[`, `100,`, `"giesma_bands"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "remaining_genome_contig") {
		t.Error("nil remaining contig was written")
	}
	if strings.Count(out, "giesma_bands") != 1 {
		t.Error("empty band list was written")
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hg38.json"), []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := NewDirSource(dir)
	ctx := context.Background()

	names, err := src.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"hg38"}) {
		t.Errorf("List() = %v, want [hg38]", names)
	}

	ds, err := src.Load(ctx, "hg38")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Contigs[0].Name != "chr1" {
		t.Errorf("first contig = %s", ds.Contigs[0].Name)
	}

	if _, err := src.Load(ctx, "mm10"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing dataset err = %v, want NOT_FOUND", err)
	}
	if _, err := src.Load(ctx, "../hg38"); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("traversal err = %v, want INVALID_NAME", err)
	}
}

func TestDirSourceSave(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "store"))
	ctx := context.Background()

	ds, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Save(ctx, "hg38", ds); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := src.Load(ctx, "hg38")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Contigs) != len(ds.Contigs) {
		t.Errorf("contigs = %d, want %d", len(got.Contigs), len(ds.Contigs))
	}

	if err := src.Save(ctx, "a/b", ds); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("bad name err = %v, want INVALID_NAME", err)
	}
}
