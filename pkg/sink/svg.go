package sink

import (
	"bytes"
	"fmt"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/surface"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	script bool
}

// WithScript embeds the tooltip script. Hit rectangles need precomputed
// bubble paths for it to show anything.
func WithScript() SVGOption { return func(r *svgRenderer) { r.script = true } }

// NewView draws ds on a fresh in-memory surface and switches it to mode. It
// returns the view and the effective mode.
func NewView(ds *karyotype.Dataset, mode karyotype.Mode, opts ...karyotype.Option) (*karyotype.View, karyotype.Mode, error) {
	doc := surface.NewTree()
	v, err := karyotype.Create(doc.CreateElement("", "div"), doc, ds, opts...)
	if err != nil {
		return nil, "", err
	}
	effective, err := v.SwitchVisualization(mode)
	if err != nil {
		return nil, "", err
	}
	return v, effective, nil
}

// RenderSVG serializes the live rendering of v.
func RenderSVG(v *karyotype.View, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := surface.Marshal(v.Root())
	if !r.script {
		return out
	}

	end := bytes.LastIndex(out, []byte("</svg>"))
	var buf bytes.Buffer
	buf.Write(out[:end])
	renderTooltipScript(&buf)
	buf.Write(out[end:])
	return buf.Bytes()
}

func renderTooltipScript(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", svgTooltipJS)
}
