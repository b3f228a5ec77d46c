package httputil

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/karyoview/karyoview/pkg/cache"
)

// ETag returns the strong entity tag of data.
func ETag(data []byte) string {
	return `"` + cache.Hash(data)[:16] + `"`
}

// WriteArtifact serves a rendered artifact. It answers 304 when the
// request's If-None-Match matches the artifact's tag. A positive maxAge sets
// Cache-Control.
func WriteArtifact(w http.ResponseWriter, r *http.Request, contentType string, data []byte, maxAge time.Duration) {
	tag := ETag(data)
	h := w.Header()
	h.Set("ETag", tag)
	if maxAge > 0 {
		h.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	}
	if matchesETag(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

// matchesETag reports whether an If-None-Match header lists tag, ignoring
// weak prefixes.
func matchesETag(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if part == "*" || part == tag {
			return true
		}
	}
	return false
}
