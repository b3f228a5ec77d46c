package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/surface"
)

// Panel is one mode of an HTML page.
type Panel struct {
	Requested karyotype.Mode // button the panel belongs to
	View      *karyotype.View
}

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title string
}

// WithTitle sets the page heading and <title>.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// RenderHTML writes a standalone page showing the first panel, with one
// button per panel. A panel whose mode fell back keeps its own button.
func RenderHTML(panels []Panel, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "Karyotype"}
	for _, opt := range opts {
		opt(&r)
	}
	title := html.EscapeString(r.title)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", title)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n</head>\n<body>\n", pageCSS)
	fmt.Fprintf(&buf, "  <h1>%s</h1>\n", title)

	buf.WriteString("  <div class=\"modes\">\n")
	for i, p := range panels {
		fmt.Fprintf(&buf, "    <button type=\"button\" data-mode=\"%s\"%s>%s</button>\n",
			p.Requested, activeClass(i), html.EscapeString(p.Requested.Label()))
	}
	buf.WriteString("  </div>\n")

	for i, p := range panels {
		fmt.Fprintf(&buf, "  <div data-mode=\"%s\" class=\"karyotype%s\">\n", p.Requested, activeSuffix(i))
		if p.View.State().FellBack() {
			fmt.Fprintf(&buf, "    <p class=\"note\">No %s data; showing %s.</p>\n",
				html.EscapeString(p.Requested.Label()), html.EscapeString(p.View.CurrentMode().Label()))
		}
		buf.Write(surface.Marshal(p.View.Root()))
		buf.WriteString("  </div>\n")
	}

	fmt.Fprintf(&buf, "  <script>%s\n  </script>\n</body>\n</html>\n", pageJS)
	return buf.Bytes()
}

func activeClass(i int) string {
	if i == 0 {
		return ` class="active"`
	}
	return ""
}

func activeSuffix(i int) string {
	if i == 0 {
		return " active"
	}
	return ""
}
