package karyotype

// Unmapped is the fill used for anything without a palette entry.
const Unmapped = "white"

// GiesmaPalette maps staining color codes to fills.
var GiesmaPalette = [...]string{
	"#527280", // 0 acen
	"#ffffff", // 1 gneg
	"#c8c88c", // 2 gvar
	"#e6e6e6", // 3 gpos25
	"#c8c8c8", // 4 gpos33
	"#b4b4b4", // 5 gpos50
	"#8c8c8c", // 6 gpos66
	"#646464", // 7 gpos75
	"#323232", // 8 gpos100
	"#ffffff", // 9 n/a
	"#823c5a", // 10 stalk
}

// GiesmaNames are the stain names for each color code.
var GiesmaNames = [...]string{
	"acen", "gneg", "gvar", "gpos25", "gpos33", "gpos50",
	"gpos66", "gpos75", "gpos100", "n/a", "stalk",
}

// StainColor returns the fill for a staining color code.
func StainColor(code int) string {
	if code < 0 || code >= len(GiesmaPalette) {
		return Unmapped
	}
	return GiesmaPalette[code]
}

// DefaultLegendColors is the hit-count ramp; index 0 is reserved for zero.
var DefaultLegendColors = []string{
	"#fff",
	"#3288bd",
	"#66c2a5",
	"#abdda4",
	"#e6f598",
	"#fee08b",
	"#fdae61",
	"#f46d43",
	"#d53e4f",
}

// Stroke and fill constants of the glyph outline.
const (
	outlineStroke = "#95B3D7"
	capStyle      = "fill: white; stroke: #95B3D7;"
	legendStroke  = "#ddd"
)

// DefaultLegendTitle heads the legend panel.
const DefaultLegendTitle = "Hit Count (per Mb)"
