package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/karyoview/karyoview/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["n"] != 1 {
		t.Errorf("body = %v", got)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{"invalid mode", errors.New(errors.ErrCodeInvalidMode, "unknown visualization %q", "x"), 400, errors.ErrCodeInvalidMode, `unknown visualization "x"`},
		{"not found", errors.New(errors.ErrCodeNotFound, "dataset hg19"), 404, errors.ErrCodeNotFound, "dataset hg19"},
		{"network", errors.New(errors.ErrCodeNetwork, "mongo down"), 502, errors.ErrCodeNetwork, "mongo down"},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "no source"), 501, errors.ErrCodeUnsupported, "no source"},
		{"internal hides message", errors.New(errors.ErrCodeInternal, "disk path /secret"), 500, errors.ErrCodeInternal, "Internal Server Error"},
		{"plain error", fmt.Errorf("boom"), 500, "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := httptest.NewRecorder()
			WriteError(rec, log.New(&logs), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
			if gotLog := logs.Len() > 0; gotLog != (tt.wantStatus >= 500 && tt.wantStatus != 501) {
				t.Errorf("logged = %v for status %d", gotLog, tt.wantStatus)
			}
		})
	}
}

func TestETag(t *testing.T) {
	a := ETag([]byte("<svg/>"))
	if a != ETag([]byte("<svg/>")) {
		t.Error("ETag not deterministic")
	}
	if a == ETag([]byte("<svg></svg>")) {
		t.Error("different bodies share an ETag")
	}
	if len(a) != 18 || !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag = %s, want 16 quoted hex digits", a)
	}
}

func TestWriteArtifact(t *testing.T) {
	data := []byte("<svg></svg>")
	tag := ETag(data)

	tests := []struct {
		name       string
		method     string
		ifNone     string
		wantStatus int
		wantBody   string
	}{
		{"fresh", http.MethodGet, "", 200, "<svg></svg>"},
		{"head", http.MethodHead, "", 200, ""},
		{"matching tag", http.MethodGet, tag, 304, ""},
		{"weak match in list", http.MethodGet, `"other", W/` + tag, 304, ""},
		{"wildcard", http.MethodGet, "*", 304, ""},
		{"stale tag", http.MethodGet, `"0000000000000000"`, 200, "<svg></svg>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/karyotype.svg", nil)
			if tt.ifNone != "" {
				req.Header.Set("If-None-Match", tt.ifNone)
			}
			rec := httptest.NewRecorder()
			WriteArtifact(rec, req, "image/svg+xml", data, time.Hour)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
			if got := rec.Header().Get("ETag"); got != tag {
				t.Errorf("ETag = %q, want %q", got, tag)
			}
			if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
				t.Errorf("Cache-Control = %q", got)
			}
		})
	}
}

func TestWriteArtifactNoMaxAge(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteArtifact(rec, httptest.NewRequest(http.MethodGet, "/", nil), "text/html", []byte("x"), 0)
	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Errorf("Cache-Control = %q, want none", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html" {
		t.Errorf("Content-Type = %q", got)
	}
}
