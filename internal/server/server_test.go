package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/httputil"
	kio "github.com/karyoview/karyoview/pkg/io"
	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/pipeline"
)

func plainDataset() *karyotype.Dataset {
	return &karyotype.Dataset{Contigs: []karyotype.Contig{
		{
			Name:            "chr1",
			Size:            2000,
			HitClusters:     []karyotype.Interval{{Start: 100, End: 300, Count: 12}},
			NrphHitClusters: []karyotype.Interval{{Start: 100, End: 300, Count: 3}},
		},
		{
			Name:            "chr2",
			Size:            1000,
			HitClusters:     []karyotype.Interval{{Start: 10, End: 20, Count: 90}},
			NrphHitClusters: []karyotype.Interval{},
		},
	}}
}

func stainedDataset() *karyotype.Dataset {
	ds := plainDataset()
	ds.Contigs[0].GiesmaBands = []karyotype.Band{{Start: 1, End: 900, ColorCode: 1}, {Start: 901, End: 2000, ColorCode: 8}}
	return ds
}

func newTestServer(t *testing.T, defaultDataset string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	for name, ds := range map[string]*karyotype.Dataset{"plain": plainDataset(), "stained": stainedDataset()} {
		if err := kio.ExportJSON(ds, filepath.Join(dir, name+".json")); err != nil {
			t.Fatalf("ExportJSON: %v", err)
		}
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger).WithSource(kio.NewDirSource(dir))
	srv := New(Config{Runner: runner, DefaultDataset: defaultDataset, MaxAge: time.Minute, Logger: logger})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "")
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("status = %q, want ok", got["status"])
	}
}

func TestDatasets(t *testing.T) {
	ts := newTestServer(t, "")
	resp, body := get(t, ts.URL+"/datasets")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct{ Datasets []string }
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(got.Datasets, ",") != "plain,stained" {
		t.Errorf("datasets = %v, want [plain stained]", got.Datasets)
	}
}

func TestDatasetsWithoutSource(t *testing.T) {
	srv := New(Config{Runner: pipeline.NewRunner(nil, nil, log.New(io.Discard)), Logger: log.New(io.Discard)})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestSVG(t *testing.T) {
	ts := newTestServer(t, "")

	tests := []struct {
		name     string
		query    string
		wantMode string
	}{
		{"default mode", "?dataset=plain", "all"},
		{"nrph", "?dataset=plain&mode=nrph", "nrph"},
		{"giesma falls back", "?dataset=plain&mode=giesma", "all"},
		{"giesma with bands", "?dataset=stained&mode=GIESMA", "giesma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/karyotype.svg"+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := resp.Header.Get("X-Karyotype-Mode"); got != tt.wantMode {
				t.Errorf("mode = %q, want %q", got, tt.wantMode)
			}
			if !strings.Contains(body, "<svg") || !strings.Contains(body, "<script") {
				t.Errorf("body is not a scripted svg: %.80s", body)
			}
			if resp.Header.Get("Cache-Control") != "public, max-age=60" {
				t.Errorf("Cache-Control = %q", resp.Header.Get("Cache-Control"))
			}
		})
	}
}

func TestSVGNotModified(t *testing.T) {
	ts := newTestServer(t, "")
	resp, _ := get(t, ts.URL+"/karyotype.svg?dataset=plain")
	tag := resp.Header.Get("ETag")
	if tag == "" {
		t.Fatal("no ETag")
	}

	resp, body := get(t, ts.URL+"/karyotype.svg?dataset=plain", "If-None-Match", tag)
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("status = %d, want 304", resp.StatusCode)
	}
	if body != "" {
		t.Errorf("304 body = %q", body)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, "")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"unknown mode", "/karyotype.svg?dataset=plain&mode=heat", 400, errors.ErrCodeInvalidMode},
		{"unknown mode in list", "/?dataset=plain&mode=all,heat", 400, errors.ErrCodeInvalidMode},
		{"missing dataset", "/karyotype.svg?dataset=hg19", 404, errors.ErrCodeNotFound},
		{"bad dataset name", "/summary?dataset=../etc", 400, errors.ErrCodeInvalidName},
		{"no dataset", "/summary", 400, errors.ErrCodeInvalidInput},
		{"unknown route", "/nope", 404, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body)
			}
			var eb httputil.ErrorBody
			if err := json.Unmarshal([]byte(body), &eb); err != nil {
				t.Fatalf("decode %q: %v", body, err)
			}
			if eb.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", eb.Code, tt.wantCode)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t, "plain")
	resp, body := get(t, ts.URL+"/summary?mode=all,giesma")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var rep pipeline.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Summary.ContigCount != 2 || rep.Summary.MaxHitMagnitude != 90 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if len(rep.Modes) != 2 {
		t.Fatalf("modes = %d, want 2", len(rep.Modes))
	}
	if rep.Modes[1].Requested != karyotype.ModeGiesma || rep.Modes[1].Effective != karyotype.ModeAll {
		t.Errorf("giesma report = %+v", rep.Modes[1])
	}
}

func TestPage(t *testing.T) {
	ts := newTestServer(t, "stained")
	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{
		`<button type="button" data-mode="all" class="active">All Hits</button>`,
		`data-mode="nrph"`,
		`data-mode="giesma"`,
		"<title>stained</title>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
